// Package summary shows the result of a finished session.
package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/router"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/screen"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/session"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/ui/components"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/ui/layout"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/ui/theme"
)

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary session.Summary
	again   func() screen.Screen
}

var (
	_ screen.Screen          = (*SummaryScreen)(nil)
	_ screen.KeyHintProvider = (*SummaryScreen)(nil)
	_ screen.HeaderProvider  = (*SummaryScreen)(nil)
)

// New creates a SummaryScreen. again, when set, builds the screen that
// "play again" replaces this one with.
func New(summary session.Summary, again func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{summary: summary, again: again}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) HeaderStats() layout.HeaderStats {
	return layout.HeaderStats{
		Score:   s.summary.Score,
		Streak:  s.summary.BestStreak,
		Shields: s.summary.Shields,
	}
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Home"}}
	if s.again != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Play again"})
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, router.Pop()
		case "r":
			if s.again != nil {
				return s, router.Replace(s.again())
			}
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	cw := min(width-4, 56)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render(headline(sum)))
	b.WriteString("\n\n")

	b.WriteString(theme.Subtitle.Width(cw).Render(fmt.Sprintf("Time %s", formatDuration(sum.Duration))))
	b.WriteString("\n\n")

	b.WriteString(row(cw, "Score", fmt.Sprintf("%d", sum.Score), sum.NewHighScore))
	b.WriteString(row(cw, "Best streak", fmt.Sprintf("%d", sum.BestStreak), sum.NewBestStreak))
	b.WriteString(row(cw, "Answered", fmt.Sprintf("%d/%d correct", sum.Correct, sum.Answered), false))
	b.WriteString(row(cw, "Level", levelText(sum), sum.LevelDelta() > 0))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("Accuracy", sum.Accuracy, true, cw).View())
	b.WriteString("\n")

	if sum.ShieldAwarded {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Shield).Bold(true).Width(cw).Align(lipgloss.Center).
			Render(fmt.Sprintf("🛡 Daily set done! You earned a shield (%d total)", sum.Shields)))
		b.WriteString("\n")
	}

	return layout.Center(theme.Card.Render(b.String()), width, height)
}

func headline(sum session.Summary) string {
	switch {
	case sum.Answered == 0:
		return "See you next time!"
	case sum.SetCompleted:
		return "Set complete!"
	case sum.Accuracy >= 0.9:
		return "Amazing spelling!"
	default:
		return "Session complete!"
	}
}

func row(width int, label, value string, highlight bool) string {
	left := theme.Hint.Render(label)
	style := theme.Body
	if highlight {
		style = theme.Milestone
		value += "  ★ new"
	}
	right := style.Render(value)
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right + "\n"
}

func levelText(sum session.Summary) string {
	if sum.LevelDelta() == 0 {
		return fmt.Sprintf("%d", sum.EndLevel)
	}
	return fmt.Sprintf("%d → %d", sum.StartLevel, sum.EndLevel)
}

func formatDuration(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
