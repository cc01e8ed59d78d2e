package components

import (
	"charm.land/lipgloss/v2"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/ui/theme"
)

// OptionKeys are the arrow labels of the three option cards, left to right.
var OptionKeys = []string{"←", "↓", "→"}

// OptionRow renders the answer options side by side. After an answer,
// correct is the right option's index and chosen the picked one (-1 for
// none); both are -1 while the item is open.
type OptionRow struct {
	Options []string
	Correct int
	Chosen  int
}

// NewOptionRow returns an open option row.
func NewOptionRow(options []string) OptionRow {
	return OptionRow{Options: options, Correct: -1, Chosen: -1}
}

// Reveal marks the row answered.
func (r OptionRow) Reveal(correct, chosen int) OptionRow {
	r.Correct = correct
	r.Chosen = chosen
	return r
}

// View renders the row within width.
func (r OptionRow) View(width int) string {
	if len(r.Options) == 0 {
		return ""
	}
	cardWidth := max(min((width-4)/len(r.Options)-2, 24), 10)

	cards := make([]string, 0, len(r.Options))
	for i, opt := range r.Options {
		key := ""
		if i < len(OptionKeys) {
			key = OptionKeys[i]
		}
		style := theme.OptionIdle
		switch {
		case r.Correct < 0:
		case i == r.Correct:
			style = theme.OptionRight
		case i == r.Chosen:
			style = theme.OptionWrong
		default:
			style = theme.OptionFaded
		}
		cards = append(cards, style.Width(cardWidth).Render(opt+"\n"+theme.Hint.Render(key)))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, row)
}
