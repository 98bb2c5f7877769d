// Package stats derives dashboard aggregates from the history cache.
// Everything here is a pure function of the entry slice: nothing is
// cached, so results can never go stale relative to the cache.
package stats

import (
	"github.com/fraudguard/fraudguard/internal/domain"
)

// Tiers is the exact partition of history entries by risk level.
// Fraud + High + Medium + Low + Safe always equals Total.
type Tiers struct {
	Total  int
	Fraud  int
	High   int
	Medium int
	Low    int
	Safe   int
}

// CountTiers partitions entries into the five risk tiers.
func CountTiers(entries []domain.HistoryEntry) Tiers {
	t := Tiers{Total: len(entries)}
	for _, e := range entries {
		switch e.RiskLevel {
		case domain.Fraud:
			t.Fraud++
		case domain.HighRisk:
			t.High++
		case domain.MediumRisk:
			t.Medium++
		case domain.LowRisk:
			t.Low++
		default:
			// Risk Free, plus any entry without a level.
			t.Safe++
		}
	}
	return t
}

// RecentAlerts returns the n most recent Fraud / High Risk entries,
// newest first. The cache is chronological ascending, so this is the last
// n of the filtered subsequence, reversed. Fewer than n exist: all of
// them.
func RecentAlerts(entries []domain.HistoryEntry, n int) []domain.HistoryEntry {
	var hot []domain.HistoryEntry
	for _, e := range entries {
		if e.RiskLevel == domain.Fraud || e.RiskLevel == domain.HighRisk {
			hot = append(hot, e)
		}
	}
	if len(hot) > n {
		hot = hot[len(hot)-n:]
	}

	out := make([]domain.HistoryEntry, 0, len(hot))
	for i := len(hot) - 1; i >= 0; i-- {
		out = append(out, hot[i])
	}
	return out
}

// GeoPoint is one plotted transaction location.
type GeoPoint struct {
	Long  float64
	Lat   float64
	Fraud bool
}

// GeoPoints projects entries onto (longitude, latitude) points tagged by
// is_fraud. Entries missing either coordinate are silently excluded; a
// partial coordinate is never plotted.
func GeoPoints(entries []domain.HistoryEntry) []GeoPoint {
	pts := make([]GeoPoint, 0, len(entries))
	for _, e := range entries {
		if e.Lat == nil || e.Long == nil {
			continue
		}
		pts = append(pts, GeoPoint{Long: *e.Long, Lat: *e.Lat, Fraud: e.IsFraud})
	}
	return pts
}

// ClampPercent converts a risk score to the progress-bar width percentage,
// clamped to [5, 100] so even a near-zero score renders a visible sliver.
// Display width only; the categorical badge always comes from risk_level.
func ClampPercent(score float64) float64 {
	pct := score * 100
	if pct < 5 {
		return 5
	}
	if pct > 100 {
		return 100
	}
	return pct
}
