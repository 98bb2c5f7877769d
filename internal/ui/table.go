package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/fraudguard/fraudguard/internal/domain"
	"github.com/fraudguard/fraudguard/internal/theme"
)

func newHistoryTable() table.Model {
	t := theme.Default

	columns := []table.Column{
		{Title: "Time", Width: 19},
		{Title: "Merchant", Width: 24},
		{Title: "Category", Width: 14},
		{Title: "Amount", Width: 10},
		{Title: "Score", Width: 7},
		{Title: "Verdict", Width: 12},
		{Title: "Action", Width: 26},
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Bold(true).
		Foreground(t.Subtext)
	styles.Selected = styles.Selected.
		Foreground(t.Text).
		Background(t.Overlay).
		Bold(false)

	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	tbl.SetStyles(styles)
	return tbl
}

// historyRows renders the cache newest first.
func historyRows(entries []domain.HistoryEntry) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		action := e.ActionTaken
		if action == "" {
			action = domain.ActionNone
		}
		rows = append(rows, table.Row{
			e.TransDateTransTime,
			e.Merchant,
			string(e.Category),
			fmt.Sprintf("$%.2f", e.Amt),
			fmt.Sprintf("%.0f%%", e.RiskScore*100),
			string(displayLevel(e)),
			action,
		})
	}
	return rows
}

// displayLevel is the badge shown for an entry. Entries recorded before
// tiered verdicts existed have no risk_level; those fall back to the
// binary is_fraud flag. Display only — nothing else ever re-derives a
// level.
func displayLevel(e domain.HistoryEntry) domain.RiskLevel {
	if e.RiskLevel != "" {
		return e.RiskLevel
	}
	if e.IsFraud {
		return domain.Fraud
	}
	return domain.RiskFree
}
