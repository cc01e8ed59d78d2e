// Package app is the root Bubble Tea model: it frames the active screen,
// routes keys and runs engine timer callbacks on the event loop.
package app

import (
	"context"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/router"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/screen"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/screens/home"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/screens/play"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/session"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/store"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/timerpool"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/ui/layout"
)

// Options wires the app.
type Options struct {
	Service *session.Service
	Events  store.EventRepo
	// Clock must be the clock the service was built with.
	Clock *timerpool.LoopClock
	Home  home.Options
	// Start, when set, opens straight into a session.
	Start *session.Options
}

// timerFiredMsg carries an expired engine timer callback.
type timerFiredMsg struct {
	fn func()
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	svc    *session.Service
	clock  *timerpool.LoopClock
	start  *session.Options
	width  int
	height int
}

// New creates the root model with the home screen at the bottom of the stack.
func New(opts Options) AppModel {
	return AppModel{
		router: router.New(home.New(opts.Service, opts.Events, opts.Home)),
		svc:    opts.Service,
		clock:  opts.Clock,
		start:  opts.Start,
	}
}

// waitForTimer blocks until the clock posts a callback.
func waitForTimer(clock *timerpool.LoopClock) tea.Cmd {
	if clock == nil {
		return nil
	}
	return func() tea.Msg {
		fn, ok := <-clock.C()
		if !ok {
			return nil
		}
		return timerFiredMsg{fn: fn}
	}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForTimer(m.clock), m.router.Active().Init()}
	if m.start != nil {
		cmds = append(cmds, router.Push(play.New(m.svc, *m.start)))
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case timerFiredMsg:
		msg.fn()
		cmd := m.router.Update(screen.TimerFiredMsg{})
		return m, tea.Batch(cmd, waitForTimer(m.clock))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok && bh.HandlesBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// headerStats shows the active screen's counters, or the profile's records.
func (m AppModel) headerStats() layout.HeaderStats {
	if hp, ok := m.router.Active().(screen.HeaderProvider); ok {
		return hp.HeaderStats()
	}
	if m.svc == nil {
		return layout.HeaderStats{}
	}
	p := m.svc.Profile()
	return layout.HeaderStats{
		Score:      p.HighScore,
		ScoreLabel: "best",
		Streak:     p.BestStreak,
		Shields:    p.Shields,
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the framed screen for the current terminal size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.headerStats(), m.width)

	var hints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		hints = kp.KeyHints()
	} else if m.router.Depth() > 1 {
		hints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits. A session
// still running at exit is ended so its progress is saved.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithContext(ctx))
	_, err := p.Run()

	if opts.Clock != nil {
		opts.Clock.Close()
	}
	if opts.Service != nil && opts.Service.Active() {
		if _, endErr := opts.Service.End(context.Background()); endErr != nil {
			slog.Warn("end session on exit", "error", endErr)
		}
	}
	if err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
