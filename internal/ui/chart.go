package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fraudguard/fraudguard/internal/stats"
	"github.com/fraudguard/fraudguard/internal/theme"
)

// Continental US bounding box. Points outside are clamped onto the edge
// rather than dropped, so off-map coordinates stay visible.
const (
	mapLatMin  = 24.0
	mapLatMax  = 50.0
	mapLongMin = -125.0
	mapLongMax = -65.0
)

// RenderGeoChart plots transaction locations on a character grid:
// longitude on x, latitude on y. Fraudulent points render in the error
// color, clean ones in success; cur marks the transaction currently in
// the analyze form.
func RenderGeoChart(points []stats.GeoPoint, cur *stats.GeoPoint, width, height int) string {
	if width < 10 || height < 4 {
		return ""
	}

	t := theme.Default

	type cell struct {
		ch    rune
		color lipgloss.Color
	}
	grid := make([][]cell, height)
	for y := range grid {
		grid[y] = make([]cell, width)
		for x := range grid[y] {
			grid[y][x] = cell{ch: '·', color: t.Overlay}
		}
	}

	plot := func(p stats.GeoPoint, ch rune, color lipgloss.Color) {
		x := int((clampRange(p.Long, mapLongMin, mapLongMax) - mapLongMin) / (mapLongMax - mapLongMin) * float64(width-1))
		// Latitude grows northward, rows grow downward.
		y := int((mapLatMax - clampRange(p.Lat, mapLatMin, mapLatMax)) / (mapLatMax - mapLatMin) * float64(height-1))
		grid[y][x] = cell{ch: ch, color: color}
	}

	for _, p := range points {
		color := t.Success
		if p.Fraud {
			color = t.Error
		}
		plot(p, '●', color)
	}
	// Current marker last so it always wins the cell.
	if cur != nil {
		plot(*cur, '✖', t.Accent)
	}

	rows := make([]string, height)
	for y := range grid {
		var sb strings.Builder
		for _, c := range grid[y] {
			sb.WriteString(lipgloss.NewStyle().Foreground(c.color).Render(string(c.ch)))
		}
		rows[y] = sb.String()
	}
	return strings.Join(rows, "\n")
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
