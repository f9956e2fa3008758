package intel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPrioritizeWeaponsEscalation(t *testing.T) {
	p := NewPrioritizer()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	alert := p.Prioritize("glock 19 brand new, bulk orders welcome", "Weapons Sales", 0.85, []string{"glock"}, now)

	// weapons content crosses the critical line already at the high threshold
	require.GreaterOrEqual(t, alert.RiskScore, float64(highThreshold))
	require.Equal(t, ThreatCritical, alert.ThreatLevel)
	require.Equal(t, PriorityImmediate, alert.AlertPriority)
	require.Equal(t, "Within 15 minutes", alert.ResponseTime)
}

func TestPrioritizeHarmlessContentIsRoutine(t *testing.T) {
	p := NewPrioritizer()
	now := time.Now()

	alert := p.Prioritize("looking forward to the weekend hiking trip", "Normal", 0.3, nil, now)

	require.Equal(t, ThreatLow, alert.ThreatLevel)
	require.Equal(t, PriorityRoutine, alert.AlertPriority)
	require.Equal(t, "Within 72 hours", alert.ResponseTime)
}

func TestPrioritizeScoreBreakdownBounds(t *testing.T) {
	p := NewPrioritizer()
	alert := p.Prioritize("fullz with ssn and dob, bulk wholesale, escrow accepted", "Identity Theft", 0.95, nil, time.Now())

	b := alert.ScoreBreakdown
	require.InDelta(t, float64(CategorySeverity["Identity Theft"])/10*40, b["category_severity"], 0.001)
	require.InDelta(t, 0.95*20, b["confidence"], 0.001)
	require.LessOrEqual(t, b["keyword_density"], 15.0)
	require.LessOrEqual(t, b["high_value_indicators"], 15.0)
	require.LessOrEqual(t, b["vendor_reputation"], 5.0)
	require.LessOrEqual(t, b["volume_trend"], 5.0)
	require.LessOrEqual(t, alert.RiskScore, 100.0)

	var sum float64
	for _, v := range b {
		sum += v
	}
	require.InDelta(t, sum, alert.RiskScore, 0.001)
}

func TestPrioritizeAlertIDSequence(t *testing.T) {
	p := NewPrioritizer()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	a := p.Prioritize("text one", "Normal", 0.2, nil, now)
	b := p.Prioritize("text two", "Normal", 0.2, nil, now)

	require.Equal(t, "ALERT-20260310120000-0001", a.AlertID)
	require.Equal(t, "ALERT-20260310120000-0002", b.AlertID)
}

func TestVendorTracking(t *testing.T) {
	p := NewPrioritizer()
	now := time.Now()
	text := "fresh cc dumps, contact @vendor_handle for prices"

	first := p.Prioritize(text, "Financial Fraud", 0.8, nil, now)
	require.NotEmpty(t, first.VendorID)
	require.Len(t, first.VendorID, 12)
	require.Equal(t, "NEW", first.VendorRep)

	// same contact handle keeps the same vendor id
	var last *Alert
	for i := 0; i < 4; i++ {
		last = p.Prioritize(text, "Financial Fraud", 0.8, nil, now)
	}
	require.Equal(t, first.VendorID, last.VendorID)
	require.Equal(t, "ACTIVE", last.VendorRep)

	for i := 0; i < 7; i++ {
		last = p.Prioritize(text, "Financial Fraud", 0.8, nil, now)
	}
	require.Equal(t, "ESTABLISHED", last.VendorRep)
}

func TestVendorAbsentWithoutContacts(t *testing.T) {
	p := NewPrioritizer()
	alert := p.Prioritize("no contact details in this text", "Drug Sales", 0.8, nil, time.Now())
	require.Empty(t, alert.VendorID)
	require.Empty(t, alert.VendorRep)
}

func TestRecommendedActionsCapped(t *testing.T) {
	p := NewPrioritizer()
	alert := p.Prioritize("zero-day exploit ransomware, contact @seller, bulk escrow", "Hacking Services", 0.97, nil, time.Now())

	require.NotEmpty(t, alert.Actions)
	require.LessOrEqual(t, len(alert.Actions), 6)
}

func TestDashboardStatsWindow(t *testing.T) {
	p := NewPrioritizer()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	p.Prioritize("glock for sale", "Weapons Sales", 0.9, nil, now.Add(-48*time.Hour))
	p.Prioritize("glock for sale", "Weapons Sales", 0.9, nil, now.Add(-time.Hour))
	p.Prioritize("weekend plans", "Normal", 0.2, nil, now.Add(-time.Hour))

	stats := p.DashboardStats(now)

	require.Equal(t, 2, stats.Total24h)
	require.Equal(t, 1, stats.ByThreatLevel["critical"])
	require.Equal(t, 1, stats.ByThreatLevel["low"])
	require.Greater(t, stats.AvgRiskScore, 0.0)
}

func TestDashboardStatsEmpty(t *testing.T) {
	p := NewPrioritizer()
	stats := p.DashboardStats(time.Now())

	require.Zero(t, stats.Total24h)
	require.Zero(t, stats.AvgRiskScore)
	require.Zero(t, stats.ActiveVendors)
}

func TestRecentAlertBufferTrimmed(t *testing.T) {
	p := NewPrioritizer()
	now := time.Now()

	for i := 0; i < maxRecentAlerts+1; i++ {
		p.Prioritize("weekend plans", "Normal", 0.1, nil, now)
	}

	require.Len(t, p.recent, trimRecentAlerts)
}
