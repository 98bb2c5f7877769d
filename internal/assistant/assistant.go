// Package assistant answers free-text operator queries about the scored
// transaction history. Keyword-routed canned responses; stateless per
// call — no conversation context is kept server-side.
package assistant

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/fraudguard/fraudguard/internal/domain"
)

// Lister provides the scored transaction history.
type Lister interface {
	List() ([]domain.HistoryEntry, error)
}

// Responder answers operator queries.
type Responder struct {
	history Lister
	log     zerolog.Logger
}

// NewResponder creates an assistant responder.
func NewResponder(history Lister, log zerolog.Logger) *Responder {
	return &Responder{
		history: history,
		log:     log.With().Str("component", "assistant").Logger(),
	}
}

const defaultReply = "I can help you with analyzing fraud patterns, explaining predictions, or showing statistics. Try asking 'Why was this flagged?' or 'Show stats'."

// Respond routes a query to the matching canned answer. A history read
// failure degrades to the default help text rather than erroring the
// chat turn.
func (r *Responder) Respond(query string) string {
	q := strings.ToLower(query)

	switch {
	case strings.Contains(q, "why") && strings.Contains(q, "flagged"):
		return "This transaction was flagged because of a high transaction amount combined with an unusual location distance from your typical spending area. The model identified these as the strongest contributing factors."

	case strings.Contains(q, "how many fraud") || strings.Contains(q, "stats"):
		return r.statsReply()

	case strings.Contains(q, "top") && strings.Contains(q, "merchants"):
		return r.topMerchantsReply()

	case strings.Contains(q, "how it works"):
		return "I score each transaction with a weighted risk heuristic over the amount, the distance between the user and merchant locations, and the merchant's history. Scores above 95% are treated as confirmed fraud."

	case strings.Contains(q, "block"):
		return "If you suspect fraud, I recommend blocking the card immediately. I have already auto-blocked cards for transactions confirmed as Fraud (>95% risk)."
	}

	return defaultReply
}

func (r *Responder) statsReply() string {
	entries, err := r.history.List()
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to load history for stats reply")
		return defaultReply
	}
	if len(entries) == 0 {
		return "I have not analyzed any transactions in this session yet."
	}

	fraudCount := 0
	amounts := make([]float64, 0, len(entries))
	for _, e := range entries {
		if e.RiskLevel == domain.Fraud {
			fraudCount++
		}
		amounts = append(amounts, e.Amt)
	}

	mean, std := stat.MeanStdDev(amounts, nil)
	if len(amounts) < 2 {
		std = 0
	}

	return fmt.Sprintf(
		"I have analyzed %d transactions in this session. %d were detected as potential fraud. The average amount was $%.2f (stddev $%.2f).",
		len(entries), fraudCount, mean, std,
	)
}

func (r *Responder) topMerchantsReply() string {
	entries, err := r.history.List()
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to load history for merchants reply")
		return defaultReply
	}

	counts := make(map[string]int)
	for _, e := range entries {
		if e.RiskLevel == domain.HighRisk || e.RiskLevel == domain.Fraud {
			counts[e.Merchant]++
		}
	}
	if len(counts) == 0 {
		return "No high-risk merchants detected yet."
	}

	type merchantCount struct {
		name  string
		count int
	}
	ranked := make([]merchantCount, 0, len(counts))
	for name, count := range counts {
		ranked = append(ranked, merchantCount{name, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].name < ranked[j].name
	})
	if len(ranked) > 10 {
		ranked = ranked[:10]
	}

	parts := make([]string, 0, len(ranked))
	for _, mc := range ranked {
		parts = append(parts, fmt.Sprintf("%s (%d)", mc.name, mc.count))
	}
	return "Top merchants with high risk flags: " + strings.Join(parts, ", ")
}
