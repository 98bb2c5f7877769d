package assistant

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/fraudguard/fraudguard/internal/domain"
)

type listerStub struct {
	entries []domain.HistoryEntry
	err     error
}

func (s *listerStub) List() ([]domain.HistoryEntry, error) {
	return s.entries, s.err
}

func newResponder(entries []domain.HistoryEntry) *Responder {
	return NewResponder(&listerStub{entries: entries}, zerolog.Nop())
}

func TestRespondKeywordRouting(t *testing.T) {
	r := newResponder(nil)

	tests := []struct {
		name     string
		query    string
		contains string
	}{
		{"why flagged", "Why was this flagged?", "flagged because"},
		{"how it works", "Tell me how it works", "weighted risk"},
		{"block advice", "Should I block the card?", "blocking the card"},
		{"default help", "what is the weather", "I can help you"},
		{"case insensitive", "WHY WAS THIS FLAGGED", "flagged because"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, r.Respond(tt.query), tt.contains)
		})
	}
}

func TestRespondStats(t *testing.T) {
	r := newResponder([]domain.HistoryEntry{
		{Merchant: "a", Amt: 100, RiskLevel: domain.Fraud},
		{Merchant: "b", Amt: 200, RiskLevel: domain.RiskFree},
		{Merchant: "c", Amt: 300, RiskLevel: domain.LowRisk},
	})

	reply := r.Respond("show stats")
	assert.Contains(t, reply, "3 transactions")
	assert.Contains(t, reply, "1 were detected")
	assert.Contains(t, reply, "$200.00")
}

func TestRespondStatsEmptyHistory(t *testing.T) {
	r := newResponder(nil)
	assert.Contains(t, r.Respond("stats"), "not analyzed any transactions")
}

func TestRespondTopMerchants(t *testing.T) {
	r := newResponder([]domain.HistoryEntry{
		{Merchant: "shady_shop", RiskLevel: domain.Fraud},
		{Merchant: "shady_shop", RiskLevel: domain.HighRisk},
		{Merchant: "corner_store", RiskLevel: domain.HighRisk},
		{Merchant: "safe_mart", RiskLevel: domain.RiskFree},
	})

	reply := r.Respond("top merchants")
	assert.Contains(t, reply, "shady_shop (2)")
	assert.Contains(t, reply, "corner_store (1)")
	assert.NotContains(t, reply, "safe_mart")
}

func TestRespondTopMerchantsNoneFlagged(t *testing.T) {
	r := newResponder([]domain.HistoryEntry{
		{Merchant: "safe_mart", RiskLevel: domain.RiskFree},
	})
	assert.Contains(t, r.Respond("top merchants"), "No high-risk merchants")
}

func TestRespondHistoryErrorDegradesToHelp(t *testing.T) {
	r := NewResponder(&listerStub{err: errors.New("db closed")}, zerolog.Nop())
	assert.Contains(t, r.Respond("stats"), "I can help you")
}
