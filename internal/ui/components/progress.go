package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/ui/theme"
)

// ProgressBar is a static horizontal bar with an optional label.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
	Fill        color.Color
}

// NewProgressBar creates a progress bar filled with the secondary colour.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
		Fill:        theme.Secondary,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  ")
	}

	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // "  100%"
	}
	barWidth := max(p.Width-lipgloss.Width(b.String())-percentWidth, 4)

	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)
	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}

	b.WriteString(lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)))
	b.WriteString(lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled)))

	if p.ShowPercent {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100))))
	}
	return b.String()
}

// BoxChart renders one labelled bar per Leitner box, scaled to the
// fullest box.
func BoxChart(counts []int, width int) string {
	peak := 0
	for _, n := range counts {
		peak = max(peak, n)
	}
	lines := make([]string, 0, len(counts))
	for i, n := range counts {
		pct := 0.0
		if peak > 0 {
			pct = float64(n) / float64(peak)
		}
		bar := NewProgressBar(fmt.Sprintf("box %d %3d", i, n), pct, false, width)
		if i == len(counts)-1 {
			bar.Fill = theme.Primary
		}
		lines = append(lines, bar.View())
	}
	return strings.Join(lines, "\n")
}
