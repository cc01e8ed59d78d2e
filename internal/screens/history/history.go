package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/router"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/screen"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/store"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/ui/layout"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/ui/theme"
)

// Limit is the number of sessions listed.
const Limit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionSummary
	Err      error
}

// HistoryScreen lists past sessions.
type HistoryScreen struct {
	events   store.EventRepo
	names    func(category string) string
	sessions []store.SessionSummary
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen. names turns a category key into its
// display name; nil shows keys as-is.
func New(events store.EventRepo, names func(string) string) *HistoryScreen {
	if names == nil {
		names = func(c string) string { return c }
	}
	return &HistoryScreen{
		events:   events,
		names:    names,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		sessions, err := s.events.RecentSessions(context.Background(), Limit)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Recent Sessions"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.Pop()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter", "space":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.errMsg != "":
		return centered.Foreground(theme.Error).Render("\n\nError: " + s.errMsg)
	case !s.loaded:
		return centered.Foreground(theme.TextDim).Render("\n\n  Loading sessions...")
	case len(s.sessions) == 0:
		return centered.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Go spell something!")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, sess := range s.sessions {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}

		line := fmt.Sprintf("%s%s  %-14s %4d pts  %s",
			prefix, sess.Timestamp.Format("Jan 02 15:04"), s.names(sess.Category),
			sess.Score, accuracy(sess))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, details(sess)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func accuracy(sess store.SessionSummary) string {
	if sess.QuestionsServed == 0 {
		return "  -"
	}
	return fmt.Sprintf("%3.0f%%", float64(sess.CorrectAnswers)/float64(sess.QuestionsServed)*100)
}

func details(sess store.SessionSummary) string {
	parts := []string{
		fmt.Sprintf("%d/%d correct", sess.CorrectAnswers, sess.QuestionsServed),
		fmt.Sprintf("best streak %d", sess.BestStreak),
		fmt.Sprintf("%d:%02d", sess.DurationSecs/60, sess.DurationSecs%60),
	}
	if sess.HardMode {
		parts = append(parts, "hard mode")
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
		Render("    " + strings.Join(parts, " · "))
}
