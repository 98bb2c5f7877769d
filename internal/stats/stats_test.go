package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fraudguard/fraudguard/internal/domain"
)

func entry(level domain.RiskLevel) domain.HistoryEntry {
	return domain.HistoryEntry{RiskLevel: level, IsFraud: level == domain.Fraud}
}

func TestCountTiers_PartitionSumsToTotal(t *testing.T) {
	entries := []domain.HistoryEntry{
		entry(domain.RiskFree),
		entry(domain.LowRisk),
		entry(domain.LowRisk),
		entry(domain.MediumRisk),
		entry(domain.HighRisk),
		entry(domain.Fraud),
		entry(domain.Fraud),
		entry(""), // legacy entry without a level counts as safe
	}

	tiers := CountTiers(entries)

	assert.Equal(t, len(entries), tiers.Total)
	assert.Equal(t, 2, tiers.Fraud)
	assert.Equal(t, 1, tiers.High)
	assert.Equal(t, 1, tiers.Medium)
	assert.Equal(t, 2, tiers.Low)
	assert.Equal(t, 2, tiers.Safe)
	assert.Equal(t, tiers.Total, tiers.Fraud+tiers.High+tiers.Medium+tiers.Low+tiers.Safe)
}

func TestCountTiers_Empty(t *testing.T) {
	tiers := CountTiers(nil)
	assert.Equal(t, Tiers{}, tiers)
}

func TestRecentAlerts_LastFiveReversed(t *testing.T) {
	var entries []domain.HistoryEntry
	for i := 0; i < 10; i++ {
		e := entry(domain.Fraud)
		e.ID = string(rune('a' + i))
		entries = append(entries, e)
		entries = append(entries, entry(domain.RiskFree))
	}

	alerts := RecentAlerts(entries, 5)

	assert.Len(t, alerts, 5)
	// Newest first: the last five fraud entries were f..j.
	assert.Equal(t, "j", alerts[0].ID)
	assert.Equal(t, "i", alerts[1].ID)
	assert.Equal(t, "f", alerts[4].ID)
}

func TestRecentAlerts_FewerThanLimit(t *testing.T) {
	entries := []domain.HistoryEntry{
		entry(domain.HighRisk),
		entry(domain.LowRisk),
		entry(domain.Fraud),
	}

	alerts := RecentAlerts(entries, 5)

	assert.Len(t, alerts, 2)
	assert.Equal(t, domain.Fraud, alerts[0].RiskLevel)
	assert.Equal(t, domain.HighRisk, alerts[1].RiskLevel)
}

func TestRecentAlerts_Empty(t *testing.T) {
	assert.Empty(t, RecentAlerts(nil, 5))
}

func TestGeoPoints_SkipsMissingCoordinates(t *testing.T) {
	lat := 40.7128
	long := -74.0060

	entries := []domain.HistoryEntry{
		{Lat: &lat, Long: &long, IsFraud: true},
		{Lat: &lat, Long: nil},
		{Lat: nil, Long: &long},
		{Lat: nil, Long: nil},
		{Lat: &lat, Long: &long},
	}

	pts := GeoPoints(entries)

	assert.Len(t, pts, 2)
	assert.True(t, pts[0].Fraud)
	assert.Equal(t, -74.0060, pts[0].Long)
	assert.Equal(t, 40.7128, pts[0].Lat)
	assert.False(t, pts[1].Fraud)
}

func TestGeoPoints_Empty(t *testing.T) {
	assert.Empty(t, GeoPoints(nil))
}

func TestClampPercent(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  float64
	}{
		{name: "zero clamps to floor", score: 0, want: 5},
		{name: "tiny clamps to floor", score: 0.01, want: 5},
		{name: "mid passes through", score: 0.92, want: 92},
		{name: "full scale", score: 1.0, want: 100},
		{name: "overshoot clamps to ceiling", score: 1.2, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ClampPercent(tt.score), 1e-9)
		})
	}
}
