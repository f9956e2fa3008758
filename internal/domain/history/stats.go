package history

import "time"

// TrendDays is the window of the daily trend, today included.
const TrendDays = 7

// RecentAlertLimit caps the recent-alerts list on the dashboard.
const RecentAlertLimit = 10

// TrendPoint is one calendar day in the dashboard trend.
type TrendPoint struct {
	Date    string `json:"date"`
	Total   int    `json:"total"`
	Threats int    `json:"threats"`
}

// DashboardStats rekap siap tampil untuk dashboard
type DashboardStats struct {
	Total                int            `json:"total"`
	Today                int            `json:"today"`
	Threats              int            `json:"threats"`
	Critical             int            `json:"critical"`
	High                 int            `json:"high"`
	Safe                 int            `json:"safe"`
	CategoryDistribution map[string]int `json:"categoryDistribution"`
	DailyTrend           []TrendPoint   `json:"dailyTrend"`
	RecentAlerts         []*Record      `json:"recentAlerts"`
}

// CalculateStats computes dashboard statistics from the full record list.
// Recomputed on demand, never maintained incrementally. Day boundaries use
// the local midnight of now. With zero records all counts are zero but the
// trend still has TrendDays entries so chart components get a stable shape.
func CalculateStats(records []*Record, now time.Time) *DashboardStats {
	stats := &DashboardStats{
		Total:                len(records),
		CategoryDistribution: make(map[string]int),
		DailyTrend:           make([]TrendPoint, 0, TrendDays),
		RecentAlerts:         make([]*Record, 0, RecentAlertLimit),
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	for _, r := range records {
		stats.CategoryDistribution[r.Category]++
		d := r.Date.In(now.Location())
		if !d.Before(dayStart) && d.Before(dayEnd) {
			stats.Today++
		}
		switch r.Severity {
		case SeveritySafe:
			stats.Safe++
		case SeverityCritical:
			stats.Critical++
		case SeverityHigh:
			stats.High++
		}
		if r.Severity != SeveritySafe {
			stats.Threats++
			if len(stats.RecentAlerts) < RecentAlertLimit {
				stats.RecentAlerts = append(stats.RecentAlerts, r.Clone())
			}
		}
	}

	// trend 7 hari, paling lama dulu
	for i := TrendDays - 1; i >= 0; i-- {
		start := dayStart.AddDate(0, 0, -i)
		end := start.AddDate(0, 0, 1)
		point := TrendPoint{Date: start.Format("2006-01-02")}
		for _, r := range records {
			d := r.Date.In(now.Location())
			if !d.Before(start) && d.Before(end) {
				point.Total++
				if r.Severity != SeveritySafe {
					point.Threats++
				}
			}
		}
		stats.DailyTrend = append(stats.DailyTrend, point)
	}

	return stats
}
