package intel

import (
	"crypto/md5"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// ThreatLevel enum
type ThreatLevel string

const (
	ThreatCritical  ThreatLevel = "CRITICAL"
	ThreatHigh      ThreatLevel = "HIGH"
	ThreatWatchlist ThreatLevel = "WATCHLIST"
	ThreatLow       ThreatLevel = "LOW"
)

// AlertPriority enum untuk alur kerja SOC
type AlertPriority string

const (
	PriorityImmediate AlertPriority = "IMMEDIATE"
	PriorityUrgent    AlertPriority = "URGENT"
	PriorityElevated  AlertPriority = "ELEVATED"
	PriorityRoutine   AlertPriority = "ROUTINE"
)

// Urgency score thresholds.
const (
	criticalThreshold  = 75
	highThreshold      = 50
	watchlistThreshold = 25
)

// Bounds on the retained alert buffer used for trend statistics.
const (
	maxRecentAlerts  = 1000
	trimRecentAlerts = 500
)

// VendorProfile tracks a seller identity derived from contact handles.
type VendorProfile struct {
	VendorID   string    `json:"vendor_id"`
	Contacts   []string  `json:"contact_methods"`
	FirstSeen  time.Time `json:"first_seen"`
	LastSeen   time.Time `json:"last_seen"`
	TotalPosts int       `json:"total_posts"`
	Reputation string    `json:"reputation_level"` // NEW | ACTIVE | ESTABLISHED
}

// Alert is the complete prioritized threat assessment.
type Alert struct {
	AlertID        string             `json:"alert_id"`
	Category       string             `json:"category"`
	Confidence     float64            `json:"confidence"`
	ThreatLevel    ThreatLevel        `json:"threat_level"`
	AlertPriority  AlertPriority      `json:"alert_priority"`
	RiskScore      float64            `json:"risk_score"`
	Keywords       []string           `json:"keywords"`
	Indicators     []string           `json:"indicators"`
	VendorID       string             `json:"vendor_id,omitempty"`
	VendorRep      string             `json:"vendor_reputation,omitempty"`
	VolumeTrend    string             `json:"volume_trend"` // INCREASING | STABLE | DECREASING
	SimilarCount   int                `json:"similar_count_24h"`
	Actions        []string           `json:"recommended_actions"`
	ResponseTime   string             `json:"suggested_response_time"`
	ScoreBreakdown map[string]float64 `json:"score_breakdown"`
	Timestamp      time.Time          `json:"timestamp"`
}

// AlertStats rekap alert 24 jam terakhir untuk dashboard
type AlertStats struct {
	Total24h      int            `json:"total_alerts_24h"`
	ByThreatLevel map[string]int `json:"by_threat_level"`
	ByPriority    map[string]int `json:"by_priority"`
	ActiveVendors int            `json:"active_vendors"`
	AvgRiskScore  float64        `json:"average_risk_score"`
}

// Prioritizer decides which content needs immediate attention.
// Safe for concurrent use by HTTP handlers.
type Prioritizer struct {
	mu       sync.Mutex
	vendors  map[string]*VendorProfile
	recent   []*Alert
	volume   map[string][]time.Time
	sequence int
}

func NewPrioritizer() *Prioritizer {
	return &Prioritizer{
		vendors: make(map[string]*VendorProfile),
		volume:  make(map[string][]time.Time),
	}
}

// Prioritize analyzes classified content and returns a complete threat alert.
func (p *Prioritizer) Prioritize(text, category string, confidence float64, keywords []string, now time.Time) *Alert {
	p.mu.Lock()
	defer p.mu.Unlock()

	density, found := keywordDensity(text, category)
	for _, kw := range keywords {
		if !containsString(found, kw) {
			found = append(found, kw)
		}
	}

	multiplier, indicators := highValueIndicators(text)
	vendor := p.trackVendor(text, now)
	trend, similar := p.volumeTrend(category, now)

	score, breakdown := urgencyScore(category, confidence, density, multiplier, vendor, trend)
	level := threatLevel(score, category)
	priority := alertPriority(level, trend, vendor)

	p.sequence++
	alert := &Alert{
		AlertID:        fmt.Sprintf("ALERT-%s-%04d", now.UTC().Format("20060102150405"), p.sequence),
		Category:       category,
		Confidence:     confidence,
		ThreatLevel:    level,
		AlertPriority:  priority,
		RiskScore:      score,
		Keywords:       found,
		Indicators:     indicators,
		VolumeTrend:    trend,
		SimilarCount:   similar,
		Actions:        recommendedActions(category, level, vendor, indicators),
		ResponseTime:   responseTime(priority),
		ScoreBreakdown: breakdown,
		Timestamp:      now,
	}
	if vendor != nil {
		alert.VendorID = vendor.VendorID
		alert.VendorRep = vendor.Reputation
	}

	p.recent = append(p.recent, alert)
	if len(p.recent) > maxRecentAlerts {
		p.recent = append([]*Alert(nil), p.recent[len(p.recent)-trimRecentAlerts:]...)
	}

	return alert
}

// DashboardStats returns alert counts for the last 24 hours.
func (p *Prioritizer) DashboardStats(now time.Time) *AlertStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	cutoff := now.Add(-24 * time.Hour)
	stats := &AlertStats{
		ByThreatLevel: map[string]int{"critical": 0, "high": 0, "watchlist": 0, "low": 0},
		ByPriority:    map[string]int{"immediate": 0, "urgent": 0, "elevated": 0, "routine": 0},
		ActiveVendors: len(p.vendors),
	}

	var sum float64
	for _, a := range p.recent {
		if !a.Timestamp.After(cutoff) {
			continue
		}
		stats.Total24h++
		sum += a.RiskScore
		stats.ByThreatLevel[strings.ToLower(string(a.ThreatLevel))]++
		stats.ByPriority[strings.ToLower(string(a.AlertPriority))]++
	}
	if stats.Total24h > 0 {
		stats.AvgRiskScore = sum / float64(stats.Total24h)
	}
	return stats
}

func keywordDensity(text, category string) (float64, []string) {
	lower := strings.ToLower(text)
	words := strings.Fields(lower)
	total := len(words)
	if total == 0 {
		total = 1
	}

	var found []string
	if kws, ok := SuspiciousKeywords[category]; ok {
		for _, kw := range kws {
			if strings.Contains(lower, strings.ToLower(kw)) {
				found = append(found, kw)
			}
		}
	}
	for cat, kws := range SuspiciousKeywords {
		if cat == category {
			continue
		}
		for _, kw := range kws {
			if strings.Contains(lower, strings.ToLower(kw)) && !containsString(found, kw) {
				found = append(found, kw)
			}
		}
	}

	density := float64(len(found)) / float64(total) * 10
	if density > 1.0 {
		density = 1.0
	}
	return density, found
}

func highValueIndicators(text string) (float64, []string) {
	lower := strings.ToLower(text)
	multiplier := 1.0
	var indicators []string
	// deterministic order biar output stabil
	keys := make([]string, 0, len(HighValueIndicators))
	for k := range HighValueIndicators {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, indicator := range keys {
		if strings.Contains(lower, indicator) {
			indicators = append(indicators, indicator)
			multiplier *= HighValueIndicators[indicator]
		}
	}
	if multiplier > 3.0 {
		multiplier = 3.0
	}
	return multiplier, indicators
}

func (p *Prioritizer) trackVendor(text string, now time.Time) *VendorProfile {
	lower := strings.ToLower(text)
	var contacts []string
	// iterate in stable order so vendor ids are reproducible
	types := make([]string, 0, len(contactPatterns))
	for t := range contactPatterns {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, contactType := range types {
		for _, match := range contactPatterns[contactType].FindAllString(lower, -1) {
			contacts = append(contacts, contactType+":"+match)
		}
	}
	if len(contacts) == 0 {
		return nil
	}

	sorted := append([]string(nil), contacts...)
	sort.Strings(sorted)
	sum := md5.Sum([]byte(strings.Join(sorted, "")))
	vendorID := fmt.Sprintf("%x", sum)[:12]

	profile, ok := p.vendors[vendorID]
	if ok {
		profile.LastSeen = now
		profile.TotalPosts++
	} else {
		profile = &VendorProfile{
			VendorID:   vendorID,
			Contacts:   contacts,
			FirstSeen:  now,
			LastSeen:   now,
			TotalPosts: 1,
		}
		p.vendors[vendorID] = profile
	}

	switch {
	case profile.TotalPosts > 10:
		profile.Reputation = "ESTABLISHED"
	case profile.TotalPosts > 3:
		profile.Reputation = "ACTIVE"
	default:
		profile.Reputation = "NEW"
	}
	return profile
}

func (p *Prioritizer) volumeTrend(category string, now time.Time) (string, int) {
	last24h := now.Add(-24 * time.Hour)
	last48h := now.Add(-48 * time.Hour)

	kept := p.volume[category][:0]
	for _, ts := range p.volume[category] {
		if ts.After(last48h) {
			kept = append(kept, ts)
		}
	}

	var recent, previous int
	for _, ts := range kept {
		if ts.After(last24h) {
			recent++
		} else {
			previous++
		}
	}
	p.volume[category] = append(kept, now)

	switch {
	case float64(recent) > float64(previous)*1.5:
		return "INCREASING", recent
	case float64(recent) < float64(previous)*0.5:
		return "DECREASING", recent
	default:
		return "STABLE", recent
	}
}

func urgencyScore(category string, confidence, density, multiplier float64, vendor *VendorProfile, trend string) (float64, map[string]float64) {
	breakdown := make(map[string]float64)

	severity, ok := CategorySeverity[category]
	if !ok {
		severity = 5
	}
	breakdown["category_severity"] = float64(severity) / 10 * 40
	breakdown["confidence"] = confidence * 20
	breakdown["keyword_density"] = density * 15

	indicatorScore := (multiplier - 1) * 10
	if indicatorScore > 15 {
		indicatorScore = 15
	}
	breakdown["high_value_indicators"] = indicatorScore

	var vendorScore float64
	if vendor != nil {
		switch vendor.Reputation {
		case "ESTABLISHED":
			vendorScore = 5
		case "ACTIVE":
			vendorScore = 3
		default:
			vendorScore = 1
		}
	}
	breakdown["vendor_reputation"] = vendorScore

	switch trend {
	case "INCREASING":
		breakdown["volume_trend"] = 5
	case "DECREASING":
		breakdown["volume_trend"] = 0
	default:
		breakdown["volume_trend"] = 2
	}

	var total float64
	for _, v := range breakdown {
		total += v
	}
	if total > 100 {
		total = 100
	}
	return total, breakdown
}

func threatLevel(score float64, category string) ThreatLevel {
	// weapons content gets escalated early
	if category == "Weapons Sales" && score >= highThreshold {
		return ThreatCritical
	}
	switch {
	case score >= criticalThreshold:
		return ThreatCritical
	case score >= highThreshold:
		return ThreatHigh
	case score >= watchlistThreshold:
		return ThreatWatchlist
	default:
		return ThreatLow
	}
}

func alertPriority(level ThreatLevel, trend string, vendor *VendorProfile) AlertPriority {
	if level == ThreatCritical {
		return PriorityImmediate
	}
	if level == ThreatHigh {
		if trend == "INCREASING" {
			return PriorityImmediate
		}
		return PriorityUrgent
	}
	if level == ThreatWatchlist {
		if vendor != nil && vendor.Reputation == "ESTABLISHED" {
			return PriorityUrgent
		}
		return PriorityElevated
	}
	return PriorityRoutine
}

var categoryActions = map[string][]string{
	"Weapons Sales": {
		"Escalate to law enforcement liaison",
		"Flag for priority investigation",
	},
	"Identity Theft": {
		"Check against known data breach indicators",
		"Monitor for related financial fraud activity",
	},
	"Hacking Services": {
		"Assess potential targets in critical infrastructure",
		"Check for 0-day vulnerability claims",
	},
	"Financial Fraud": {
		"Cross-reference with banking fraud indicators",
		"Check for money laundering patterns",
	},
	"Drug Sales": {
		"Check for fentanyl indicators (critical)",
		"Monitor shipping patterns",
	},
	"Fake Documents": {
		"Assess document types and jurisdictions",
		"Monitor for identity fraud patterns",
	},
}

func recommendedActions(category string, level ThreatLevel, vendor *VendorProfile, indicators []string) []string {
	var actions []string
	actions = append(actions, categoryActions[category]...)

	if level == ThreatCritical {
		actions = append([]string{"IMMEDIATE: Initiate real-time monitoring"}, actions...)
		actions = append(actions, "Generate incident report within 30 minutes")
	} else if level == ThreatHigh {
		actions = append(actions, "Schedule priority review within 1 hour")
	}

	if vendor != nil {
		if vendor.Reputation == "ESTABLISHED" {
			actions = append(actions, "High-priority vendor tracking: "+vendor.VendorID)
		}
		actions = append(actions, "Update vendor profile with new activity")
	}

	if containsString(indicators, "0day") || containsString(indicators, "zero-day") {
		actions = append([]string{"CRITICAL: Potential zero-day threat - immediate analysis required"}, actions...)
	}
	if containsString(indicators, "fentanyl") {
		actions = append([]string{"PRIORITY: Fentanyl indicator detected - escalate immediately"}, actions...)
	}
	if containsString(indicators, "ransomware") {
		actions = append(actions, "Check against known ransomware groups")
	}

	if len(actions) > 6 {
		actions = actions[:6]
	}
	return actions
}

func responseTime(priority AlertPriority) string {
	switch priority {
	case PriorityImmediate:
		return "Within 15 minutes"
	case PriorityUrgent:
		return "Within 1 hour"
	case PriorityElevated:
		return "Within 24 hours"
	default:
		return "Within 72 hours"
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
