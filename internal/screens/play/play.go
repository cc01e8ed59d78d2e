// Package play is the game screen: it starts a session, turns arrow keys
// into swipes and hands over to the summary when the session ends.
package play

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/game"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/router"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/screen"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/screens/summary"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/session"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/ui/components"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/ui/layout"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/ui/theme"
)

// PlayScreen runs one session.
type PlayScreen struct {
	svc    *session.Service
	opts   session.Options
	logger *slog.Logger

	bar    progress.Model
	chosen int
	errMsg string
	ended  bool
}

var (
	_ screen.Screen          = (*PlayScreen)(nil)
	_ screen.KeyHintProvider = (*PlayScreen)(nil)
	_ screen.HeaderProvider  = (*PlayScreen)(nil)
	_ screen.BackHandler     = (*PlayScreen)(nil)
)

// New creates a play screen. The session starts in Init.
func New(svc *session.Service, opts session.Options) *PlayScreen {
	return &PlayScreen{
		svc:    svc,
		opts:   opts,
		logger: slog.Default(),
		bar: progress.New(
			progress.WithColors(theme.Primary, theme.Error),
			progress.WithoutPercentage(),
			progress.WithWidth(40),
		),
		chosen: -1,
	}
}

func (s *PlayScreen) Init() tea.Cmd {
	if err := s.svc.Start(context.Background(), s.opts); err != nil {
		s.errMsg = err.Error()
	}
	return nil
}

// Options returns the session options the screen starts with.
func (s *PlayScreen) Options() session.Options {
	return s.opts
}

func (s *PlayScreen) Title() string {
	return s.svc.CategoryName(s.opts.Category)
}

func (s *PlayScreen) HandlesBack() bool {
	return !s.ended && s.errMsg == ""
}

func (s *PlayScreen) HeaderStats() layout.HeaderStats {
	hs := layout.HeaderStats{Shields: s.svc.Profile().Shields}
	if eng := s.svc.Engine(); eng != nil {
		st := eng.State()
		hs.Score = st.Score
		hs.Streak = st.Streak
	}
	return hs
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	eng := s.svc.Engine()
	switch {
	case eng == nil:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case eng.Paused():
		return []layout.KeyHint{
			{Key: "P", Description: "Resume"},
			{Key: "Esc", Description: "End"},
		}
	case eng.AwaitingDismiss():
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "End"},
		}
	}
	return []layout.KeyHint{
		{Key: "← ↓ →", Description: "Answer"},
		{Key: "↑", Description: "Skip"},
		{Key: "P", Description: "Pause"},
		{Key: "Esc", Description: "End"},
	}
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	eng := s.svc.Engine()
	if eng == nil || s.ended {
		if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
			return s, router.Pop()
		}
		return s, nil
	}

	switch msg := msg.(type) {
	case screen.TimerFiredMsg:
		if !eng.State().Frozen {
			s.chosen = -1
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			if eng.Head() == nil && eng.State().TotalAnswered == 0 {
				s.ended = true
				if _, err := s.svc.End(context.Background()); err != nil {
					s.logger.Warn("end session", "error", err)
				}
				return s, router.Pop()
			}
			return s, s.finish()
		case "p":
			if eng.Paused() {
				eng.Resume()
			} else {
				eng.Pause()
			}
			return s, nil
		case "enter", "space":
			eng.DismissWrongAnswer()
			s.chosen = -1
		case "left", "h":
			s.swipe(game.Left)
		case "down", "j":
			s.swipe(game.Down)
		case "right", "l":
			s.swipe(game.Right)
		case "up", "k":
			s.swipe(game.Up)
		}
	}

	if eng.DailyComplete() {
		return s, s.finish()
	}
	return s, nil
}

func (s *PlayScreen) swipe(dir game.Direction) {
	eng := s.svc.Engine()
	if eng.State().Frozen || eng.Paused() {
		return
	}
	s.chosen = dir.OptionIndex()
	s.svc.Swipe(dir)
}

// finish ends the session and replaces this screen with the summary.
func (s *PlayScreen) finish() tea.Cmd {
	s.ended = true
	sum, err := s.svc.End(context.Background())
	if err != nil {
		s.logger.Warn("end session", "error", err)
	}
	opts := s.opts
	svc := s.svc
	again := func() screen.Screen { return New(svc, opts) }
	return router.Replace(summary.New(sum, again))
}

func (s *PlayScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Center(theme.Incorrect.Render("Can't start: "+s.errMsg)+"\n\n"+
			theme.Hint.Render("Esc to go back"), width, height)
	}
	eng := s.svc.Engine()
	if eng == nil {
		return ""
	}
	head := eng.Head()
	if head == nil {
		return layout.Center(emptyMessage(s.opts.Category)+"\n\n"+theme.Hint.Render("Esc to go back"), width, height)
	}

	st := eng.State()
	var sections []string

	sections = append(sections, components.Mascot(st.ChalkState))
	sections = append(sections, s.statusLine(eng, st))

	if eng.Config().TimedMode > 0 {
		s.bar.SetWidth(min(width-8, 50))
		sections = append(sections, s.bar.ViewAs(1-eng.TimerProgress()))
	}

	sections = append(sections, theme.Prompt.Width(min(width-4, 60)).Render(head.Prompt))

	row := components.NewOptionRow(head.Options)
	if st.Frozen && st.Flash != game.FlashNone {
		correct := correctIndex(*head)
		row = row.Reveal(correct, s.chosen)
	}
	sections = append(sections, row.View(width))
	sections = append(sections, feedbackLine(eng, st))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if eng.Paused() {
		content = lipgloss.JoinVertical(lipgloss.Center, theme.Milestone.Render("PAUSED"), "", content)
	}
	return layout.Center(content, width, height)
}

func (s *PlayScreen) statusLine(eng *game.Engine, st game.SessionState) string {
	parts := []string{fmt.Sprintf("level %d", eng.Level())}
	if eng.IsFinite() {
		left := len(eng.Buffer())
		parts = append(parts, fmt.Sprintf("%d left", left))
	}
	if st.TotalAnswered > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d right", st.TotalCorrect, st.TotalAnswered))
	}
	if eng.HardMode() {
		parts = append(parts, "hard")
	}
	return theme.Hint.Render(strings.Join(parts, " · "))
}

func feedbackLine(eng *game.Engine, st game.SessionState) string {
	var parts []string
	switch st.Flash {
	case game.FlashCorrect:
		parts = append(parts, theme.Correct.Render("Correct!"))
		if st.SpeedBonus {
			parts = append(parts, theme.Milestone.Render("⚡ fast"))
		}
	case game.FlashWrong:
		switch {
		case st.ShieldBroken:
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.Shield).Bold(true).Render("🛡 Shield saved your streak"))
		case st.TotalAnswered == 0:
			parts = append(parts, theme.Incorrect.Render("Not quite. Try again!"))
		default:
			parts = append(parts, theme.Incorrect.Render("Not quite."))
		}
		if eng.AwaitingDismiss() {
			parts = append(parts, theme.Hint.Render("Enter to continue"))
		}
	}
	if st.Milestone != "" {
		parts = append(parts, theme.Milestone.Render("★ "+st.Milestone))
	}
	return strings.Join(parts, "   ")
}

func correctIndex(it game.Item) int {
	for i := range it.Options {
		if it.IsCorrect(i) {
			return i
		}
	}
	return -1
}

func emptyMessage(category string) string {
	switch category {
	case game.CategoryReview:
		return theme.Body.Render("No words are due for review. Nice work!")
	case game.CategoryHardest:
		return theme.Body.Render("Play a few rounds first so we know which words are tricky.")
	}
	return theme.Body.Render("There are no words to play here.")
}
