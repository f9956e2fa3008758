package middleware

import (
	"fmt"
	"strings"

	"github.com/bryanwahyu/darkwatch/internal/domain/classifier"
	"github.com/bryanwahyu/darkwatch/internal/domain/history"
)

// Input validation and sanitization utilities

// ValidateModelType checks if the model type is in the allowed list
func ValidateModelType(modelType string) error {
	if modelType == "" {
		return nil // Optional field, service picks its default
	}
	allowed := map[string]bool{
		"bert":       true,
		"distilbert": true,
		"roberta":    true,
		"openai":     true,
	}

	if !allowed[strings.ToLower(modelType)] {
		return fmt.Errorf("invalid model type: %s (allowed: bert, distilbert, roberta, openai)", modelType)
	}
	return nil
}

// ValidateSeverity checks a severity filter value; "all" passes through
func ValidateSeverity(severity string) error {
	if severity == "" || severity == history.FilterAll {
		return nil
	}
	if !history.ValidSeverity(severity) {
		return fmt.Errorf("invalid severity: %s (allowed: CRITICAL, HIGH, MEDIUM, LOW, SAFE)", severity)
	}
	return nil
}

// ValidateCategory checks a category filter value; "all" passes through
func ValidateCategory(category string) error {
	if category == "" || category == history.FilterAll {
		return nil
	}
	if !classifier.KnownCategory(category) {
		return fmt.Errorf("invalid category: %s", category)
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidatePage validates the 1-based page number
func ValidatePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}
