package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	figure "github.com/common-nighthawk/go-figure"

	"github.com/fraudguard/fraudguard/internal/domain"
	"github.com/fraudguard/fraudguard/internal/stats"
	"github.com/fraudguard/fraudguard/internal/theme"
)

var tabTitles = map[tab]string{
	tabDashboard: "1 Dashboard",
	tabAnalyze:   "2 Analyze",
	tabHistory:   "3 History",
}

func (m Model) View() string {
	if !m.ready {
		return "\n  Loading..."
	}

	t := theme.Default
	pad := lipgloss.NewStyle().Padding(0, 2)

	var body string
	switch {
	case m.chatOpen:
		body = m.viewChat()
	case m.activeTab == tabDashboard:
		body = m.viewDashboard()
	case m.activeTab == tabAnalyze:
		body = m.viewAnalyze()
	case m.activeTab == tabHistory:
		body = m.viewHistory()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		pad.Render(m.viewHeader()),
		"",
		pad.Render(body),
		"",
		pad.Render(m.viewFooter()),
	)

	if m.notice != "" {
		content = m.viewNotice()
	}

	page := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Background(t.Base)

	return page.Render(content)
}

func (m Model) viewHeader() string {
	t := theme.Default

	banner := figure.NewFigure("FraudGuard", "", true).String()
	banner = strings.TrimRight(banner, "\n")
	bannerBlock := theme.GradientText(banner, t.Primary, t.Accent)

	status := lipgloss.NewStyle().Foreground(t.Error).Render("● offline " + m.apiURL)
	if m.connected {
		status = lipgloss.NewStyle().Foreground(t.Success).Render("● connected " + m.apiURL)
	}

	active := lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Primary).
		Padding(0, 1).
		Bold(true)
	inactive := lipgloss.NewStyle().
		Foreground(t.Muted).
		Padding(0, 1)

	var tabs []string
	for tb := tabDashboard; tb <= tabHistory; tb++ {
		style := inactive
		if tb == m.activeTab {
			style = active
		}
		tabs = append(tabs, style.Render(tabTitles[tb]))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		bannerBlock,
		status,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
	)
}

func (m Model) viewFooter() string {
	t := theme.Default
	help := "tab switch · ctrl+a assistant · ctrl+c quit"
	switch {
	case m.chatOpen:
		help = "enter ask · esc close"
	case m.activeTab == tabAnalyze:
		help = "↑/↓ field · ←/→ option · enter analyze · ctrl+g random · tab switch"
	case m.activeTab == tabHistory:
		help = "↑/↓ select · r refresh · d report · tab switch"
	}
	return lipgloss.NewStyle().Foreground(t.Muted).Render(help)
}

// Dashboard

func (m Model) viewDashboard() string {
	t := theme.Default

	tiers := stats.CountTiers(m.entries)
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Analyzed", tiers.Total, t.Info),
		statCard("Fraud", tiers.Fraud, t.Error),
		statCard("High", tiers.High, t.Accent),
		statCard("Medium", tiers.Medium, t.Warning),
		statCard("Low", tiers.Low, t.Info),
		statCard("Safe", tiers.Safe, t.Success),
	)

	sections := []string{cards, "", m.viewAlerts()}

	chartWidth := m.width - 8
	if chartWidth > 70 {
		chartWidth = 70
	}
	var cur *stats.GeoPoint
	if m.verdict != nil {
		cur = &stats.GeoPoint{Long: m.lastRecord.Long, Lat: m.lastRecord.Lat, Fraud: m.verdict.IsFraud}
	}
	if chart := RenderGeoChart(stats.GeoPoints(m.entries), cur, chartWidth, 14); chart != "" {
		title := lipgloss.NewStyle().Foreground(t.Subtext).Bold(true).Render("Transaction Map")
		sections = append(sections, "", title, chart)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func statCard(label string, value int, color lipgloss.Color) string {
	t := theme.Default
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 2).
		MarginRight(1).
		Render(lipgloss.JoinVertical(lipgloss.Center,
			lipgloss.NewStyle().Foreground(color).Bold(true).Render(fmt.Sprintf("%d", value)),
			lipgloss.NewStyle().Foreground(t.Muted).Render(label),
		))
}

func (m Model) viewAlerts() string {
	t := theme.Default

	title := lipgloss.NewStyle().Foreground(t.Subtext).Bold(true).Render("Recent Alerts")
	alerts := stats.RecentAlerts(m.entries, 5)
	if len(alerts) == 0 {
		empty := lipgloss.NewStyle().Foreground(t.Muted).Render("No high-risk transactions yet.")
		return lipgloss.JoinVertical(lipgloss.Left, title, empty)
	}

	lines := []string{title}
	for _, e := range alerts {
		badge := lipgloss.NewStyle().
			Foreground(t.Base).
			Background(t.RiskColor(e.RiskLevel)).
			Padding(0, 1).
			Render(string(e.RiskLevel))
		line := fmt.Sprintf("%s  %-24s $%8.2f  ", e.TransDateTransTime, e.Merchant, e.Amt)
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Text).Render(line)+badge)
	}
	return strings.Join(lines, "\n")
}

// Analyze

func (m Model) viewAnalyze() string {
	formBlock := m.viewForm()
	verdictBlock := m.viewVerdict()
	return lipgloss.JoinHorizontal(lipgloss.Top, formBlock, "    ", verdictBlock)
}

func (m Model) viewForm() string {
	t := theme.Default

	labelStyle := lipgloss.NewStyle().Foreground(t.Muted).Width(20)
	focusedLabel := labelStyle.Foreground(t.Accent)

	var lines []string
	for field := fieldMerchant; field < fieldCount; field++ {
		label := labelStyle
		if field == m.form.focused {
			label = focusedLabel
		}

		var value string
		switch field {
		case fieldCategory:
			value = selectorValue(string(domain.Categories[m.form.categoryIdx]), field == m.form.focused)
		case fieldGender:
			value = selectorValue(domain.Genders[m.form.genderIdx], field == m.form.focused)
		default:
			value = m.form.inputs[field].View()
		}

		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, label.Render(fieldLabels[field]), value))
	}

	submit := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render("enter → analyze")
	if m.analyzing {
		submit = lipgloss.NewStyle().Foreground(t.Muted).Render("analyzing...")
	}
	lines = append(lines, "", submit)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
}

func selectorValue(val string, focused bool) string {
	t := theme.Default
	style := lipgloss.NewStyle().Foreground(t.Text)
	if focused {
		style = style.Foreground(t.Accent)
		return style.Render("‹ " + val + " ›")
	}
	return style.Render("  " + val)
}

func (m Model) viewVerdict() string {
	t := theme.Default

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(1, 2).
		Width(44)

	if m.verdict == nil {
		return box.Render(lipgloss.NewStyle().Foreground(t.Muted).Render(
			"No analysis yet.\n\nFill in the transaction and press enter,\nor ctrl+g for a random one."))
	}

	v := *m.verdict
	color := t.RiskColor(v.RiskLevel)

	badge := lipgloss.NewStyle().
		Foreground(t.Base).
		Background(color).
		Padding(0, 2).
		Bold(true).
		Render(string(v.RiskLevel))

	bar := renderRiskBar(v.RiskScore, 38, color)
	score := lipgloss.NewStyle().Foreground(color).Bold(true).
		Render(fmt.Sprintf("%.1f%% risk", v.RiskScore*100))
	details := lipgloss.NewStyle().Foreground(t.Subtext).Render(v.Details)

	lines := []string{badge, "", bar, score, "", details}
	if v.ActionTaken != "" && v.ActionTaken != domain.ActionNone {
		lines = append(lines, "",
			lipgloss.NewStyle().Foreground(t.Warning).Bold(true).Render("Action: "+v.ActionTaken))
	}

	return box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderRiskBar renders the verdict score as a left-anchored bar. Width
// comes from the clamped percentage, so even a near-zero score shows a
// sliver and the badge never contradicts an empty bar.
func renderRiskBar(score float64, width int, color lipgloss.Color) string {
	t := theme.Default

	filled := int(stats.ClampPercent(score) / 100 * float64(width))
	if filled < 1 {
		filled = 1
	}
	if filled > width {
		filled = width
	}

	fill := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	rest := lipgloss.NewStyle().Foreground(t.Overlay).Render(strings.Repeat("░", width-filled))
	return fill + rest
}

// History

func (m Model) viewHistory() string {
	t := theme.Default

	if len(m.entries) == 0 {
		return lipgloss.NewStyle().Foreground(t.Muted).Render(
			"No transactions analyzed yet. Press r to refresh.")
	}

	sections := []string{m.historyTable.View()}
	if m.downloadStatus != "" {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(t.Info).Render(m.downloadStatus))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Chat overlay

func (m Model) viewChat() string {
	t := theme.Default

	title := lipgloss.NewStyle().Foreground(t.Subtext).Bold(true).Render("Fraud Assistant")
	lines := []string{title, ""}

	turns := m.transcript
	if len(turns) > 12 {
		turns = turns[len(turns)-12:]
	}
	if len(turns) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Muted).Render(
			"Ask about flagged transactions, stats, or risky merchants."))
	}
	for _, turn := range turns {
		prefix := lipgloss.NewStyle().Foreground(t.Info).Render("assistant ")
		style := lipgloss.NewStyle().Foreground(t.Text)
		if turn.fromUser {
			prefix = lipgloss.NewStyle().Foreground(t.Accent).Render("you       ")
		}
		lines = append(lines, prefix+style.Render(turn.text))
	}
	if m.chatWaiting {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Muted).Render("assistant is thinking..."))
	}

	lines = append(lines, "", m.chatInput.View())

	width := m.width - 8
	if width > 90 {
		width = 90
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Width(width).
		Render(strings.Join(lines, "\n"))
}

// Blocking notice

func (m Model) viewNotice() string {
	t := theme.Default

	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Error).
		Padding(1, 3).
		Render(lipgloss.JoinVertical(lipgloss.Center,
			lipgloss.NewStyle().Foreground(t.Error).Bold(true).Render(m.notice),
			"",
			lipgloss.NewStyle().Foreground(t.Muted).Render("press enter or esc to dismiss"),
		))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
