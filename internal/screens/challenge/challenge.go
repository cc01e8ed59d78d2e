// Package challenge asks for a challenge code and starts the shared set it
// names. Two players entering the same code get the same words.
package challenge

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/game"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/router"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/screen"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/screens/play"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/session"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/ui/components"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/ui/layout"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/ui/theme"
)

// MaxCodeLen caps a challenge code.
const MaxCodeLen = 24

// ChallengeScreen reads a challenge code.
type ChallengeScreen struct {
	svc   *session.Service
	opts  session.Options
	input components.CodeInput
}

var (
	_ screen.Screen          = (*ChallengeScreen)(nil)
	_ screen.KeyHintProvider = (*ChallengeScreen)(nil)
)

// New creates a ChallengeScreen. opts carries the mode toggles; its
// category and code are filled in on submit.
func New(svc *session.Service, opts session.Options) *ChallengeScreen {
	return &ChallengeScreen{
		svc:   svc,
		opts:  opts,
		input: components.NewCodeInput("e.g. friday-bees", MaxCodeLen),
	}
}

func (s *ChallengeScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ChallengeScreen) Title() string {
	return "Challenge"
}

func (s *ChallengeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

// Code returns the code typed so far.
func (s *ChallengeScreen) Code() string {
	return s.input.Value()
}

func (s *ChallengeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			return s, router.Pop()
		case "enter":
			code := s.Code()
			if code == "" {
				return s, nil
			}
			opts := s.opts
			opts.Category = game.CategoryChallenge
			opts.Challenge = code
			return s, router.Replace(play.New(s.svc, opts))
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ChallengeScreen) View(width, height int) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render("Enter a challenge code"),
		"",
		theme.Subtitle.Render("Everyone with the same code spells the same words."),
		"",
		s.input.View(),
	)
	return layout.Center(theme.Card.Render(body), width, height)
}
