package history

import "strings"

// Severity enum
type Severity string

const (
	SeveritySafe     Severity = "SAFE"
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Labels the model may use for harmless content. Matched case-insensitively.
var safeLabels = map[string]struct{}{
	"normal": {},
	"safe":   {},
	"benign": {},
	"clean":  {},
	"none":   {},
}

// SeverityOf derives the severity tier from category and confidence.
// Safe categories map to SAFE regardless of confidence. Thresholds are
// half-open: a boundary value belongs to the higher tier (0.90 → CRITICAL).
func SeverityOf(category string, confidence float64) Severity {
	if _, ok := safeLabels[strings.ToLower(strings.TrimSpace(category))]; ok {
		return SeveritySafe
	}
	switch {
	case confidence >= 0.90:
		return SeverityCritical
	case confidence >= 0.75:
		return SeverityHigh
	case confidence >= 0.50:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// ValidSeverity reports whether s is one of the known tiers.
func ValidSeverity(s string) bool {
	switch Severity(s) {
	case SeveritySafe, SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}
