package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/ui/components"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/ui/theme"
)

const titleFull = `███████╗██████╗ ███████╗██╗     ██╗     ██████╗ ███████╗███████╗
██╔════╝██╔══██╗██╔════╝██║     ██║     ██╔══██╗██╔════╝██╔════╝
███████╗██████╔╝█████╗  ██║     ██║     ██████╔╝█████╗  █████╗
╚════██║██╔═══╝ ██╔══╝  ██║     ██║     ██╔══██╗██╔══╝  ██╔══╝
███████║██║     ███████╗███████╗███████╗██████╔╝███████╗███████╗
╚══════╝╚═╝     ╚══════╝╚══════╝╚══════╝╚═════╝ ╚══════╝╚══════╝`

const titleCompact = "S · P · E · L · L · B · E · E"

// fullTitleWidth is the width the block title needs.
const fullTitleWidth = 66

// contentWidth returns the uniform inner width shared by every section.
func contentWidth(frameWidth int, compact bool) int {
	limit := 56
	if !compact {
		limit = fullTitleWidth
	}
	return min(max(frameWidth-6, 20), limit)
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	text := titleFull
	if compact {
		text = titleCompact
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(style.Render(text))
}

// dashboard is what the stats bar shows.
type dashboard struct {
	level    int
	shields  int
	due      int
	mastered int
	words    int
	boxes    []int
}

// renderStatsBar renders the learner dashboard in a double-bordered box.
func renderStatsBar(d dashboard, cw int, compact bool) string {
	levelStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	shieldStyle := lipgloss.NewStyle().Foreground(theme.Shield).Bold(true)
	masteredStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	dueStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		stats = strings.Join([]string{
			levelStyle.Render(fmt.Sprintf("L%d", d.level)),
			shieldStyle.Render(fmt.Sprintf("🛡%d", d.shields)),
			masteredStyle.Render(fmt.Sprintf("★%d", d.mastered)),
			dueText(d.due, true, dueStyle, dimStyle),
		}, " ")
	} else {
		stats = strings.Join([]string{
			levelStyle.Render(fmt.Sprintf("LEVEL %d", d.level)),
			shieldStyle.Render(fmt.Sprintf("🛡 %d", d.shields)),
			masteredStyle.Render(fmt.Sprintf("★ %d/%d MASTERED", d.mastered, d.words)),
			dueText(d.due, false, dueStyle, dimStyle),
		}, "  ")
		if d.words > 0 {
			stats += "\n" + components.BoxChart(d.boxes, cw-6)
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func dueText(due int, compact bool, active, dim lipgloss.Style) string {
	switch {
	case due == 0 && compact:
		return dim.Render("⚡0")
	case due == 0:
		return dim.Render("⚡ NONE DUE")
	case compact:
		return active.Render(fmt.Sprintf("⚡%d", due))
	}
	return active.Render(fmt.Sprintf("⚡ %d DUE", due))
}

func renderMascotBox(cw int, art string) string {
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(art)
}

// renderCabinetFrame wraps content in the double-bordered cabinet,
// centred in the given area.
func renderCabinetFrame(content string, width, height int) string {
	return theme.Cabinet.
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
