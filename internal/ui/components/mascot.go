package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/game"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/ui/theme"
)

const beeIdle = ` \ /
(o o)
 >▽<
 /█\`

const beeSuccess = ` \ /
(^ ^)
 >◡<
 /█\`

const beeFail = ` \ /
(o o)
 >︵<
 /█\`

const beeStreak = `\ ★ /
(★ ★)
 >◡<
 /█\`

const beeStruggling = ` \ /
(- -)
 >~<  ;
 /█\`

const beeComeback = ` \ /
(> <)
 >◡< !
 /█\`

// Mascot renders the bee for a mood.
func Mascot(mood game.Mood) string {
	art, fg := beeIdle, color.Color(theme.Primary)
	switch mood {
	case game.MoodSuccess:
		art, fg = beeSuccess, theme.Success
	case game.MoodFail:
		art, fg = beeFail, theme.Error
	case game.MoodStreak:
		art, fg = beeStreak, theme.Primary
	case game.MoodStruggling:
		art, fg = beeStruggling, theme.Accent
	case game.MoodComeback:
		art, fg = beeComeback, theme.Secondary
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
