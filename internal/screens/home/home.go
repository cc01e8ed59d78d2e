// Package home is the main menu: category picker, mode toggles and the
// learner dashboard.
package home

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/game"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/router"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/screen"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/screens/challenge"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/screens/history"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/screens/play"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/session"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/store"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/ui/components"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/ui/layout"
)

// Options are the initial toggle states.
type Options struct {
	Hard bool
	// Timed starts with the countdown on.
	Timed bool
	// TimedLimit is the per-item limit used when Timed is on.
	TimedLimit time.Duration
}

// HomeScreen is the main menu.
type HomeScreen struct {
	svc    *session.Service
	events store.EventRepo
	opts   Options
	menu   components.Menu
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
)

// New creates a HomeScreen.
func New(svc *session.Service, events store.EventRepo, opts Options) *HomeScreen {
	if opts.TimedLimit <= 0 {
		opts.TimedLimit = 10 * time.Second
	}
	h := &HomeScreen{svc: svc, events: events, opts: opts}
	h.menu = components.NewMenu(h.items())
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// sessionOptions returns the options for a new session in category.
func (h *HomeScreen) sessionOptions(category string) session.Options {
	o := session.Options{Category: category, Hard: h.opts.Hard}
	if h.opts.Timed {
		o.Timed = h.opts.TimedLimit
	}
	return o
}

// items builds the menu from the current profile and review queue.
func (h *HomeScreen) items() []components.MenuItem {
	due := len(h.svc.ReviewQueue(0))

	items := []components.MenuItem{h.playItem("")}
	for _, cat := range h.svc.Categories() {
		item := h.playItem(cat)
		switch cat {
		case game.CategoryDaily:
			if h.svc.DailyDone() {
				item.Detail = "done ✓"
			}
		case game.CategoryReview:
			item.Detail = fmt.Sprintf("%d due", due)
		}
		items = append(items, item)
	}

	items = append(items,
		components.MenuItem{Label: "Challenge a friend…", Action: func() tea.Cmd {
			return router.Push(challenge.New(h.svc, h.sessionOptions(game.CategoryChallenge)))
		}},
		components.MenuItem{Label: "Hard mode", Detail: onOff(h.opts.Hard), Action: func() tea.Cmd {
			h.opts.Hard = !h.opts.Hard
			return nil
		}},
		components.MenuItem{Label: "Timed", Detail: onOff(h.opts.Timed), Action: func() tea.Cmd {
			h.opts.Timed = !h.opts.Timed
			return nil
		}},
		components.MenuItem{Label: "Recent sessions", Action: func() tea.Cmd {
			return router.Push(history.New(h.events, h.svc.CategoryName))
		}},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)
	return items
}

func (h *HomeScreen) playItem(category string) components.MenuItem {
	return components.MenuItem{
		Label: h.svc.CategoryName(category),
		Action: func() tea.Cmd {
			return router.Push(play.New(h.svc, h.sessionOptions(category)))
		},
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// refresh rebuilds the menu, keeping the cursor.
func (h *HomeScreen) refresh() {
	sel := h.menu.Selected
	h.menu = components.NewMenu(h.items())
	h.menu.Select(sel)
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	h.refresh()
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	// Toggles change the labels.
	h.refresh()
	return h, cmd
}

func (h *HomeScreen) dashboard() dashboard {
	sched := h.svc.Scheduler()
	boxes := sched.BoxCounts()
	return dashboard{
		level:    h.svc.Profile().Level,
		shields:  h.svc.Profile().Shields,
		due:      len(h.svc.ReviewQueue(0)),
		mastered: sched.MasteredCount(),
		words:    sched.Len(),
		boxes:    boxes[:],
	}
}

func (h *HomeScreen) View(width, height int) string {
	d := h.dashboard()
	content := h.render(d, width, layout.IsCompactWidth(width))
	// Cabinet border takes two rows.
	if lipgloss.Height(content) > height-2 {
		content = h.render(d, width, true)
	}
	return renderCabinetFrame(content, width, height)
}

func (h *HomeScreen) render(d dashboard, width int, compact bool) string {
	cw := contentWidth(width, compact)
	sections := []string{renderTitle(cw, compact)}
	if !compact {
		mood := game.MoodIdle
		if h.svc.DailyDone() {
			mood = game.MoodStreak
		}
		sections = append(sections, renderMascotBox(cw, components.Mascot(mood)))
	}
	sections = append(sections, renderStatsBar(d, cw, compact), h.menu.View(min(cw, 40)))
	return strings.Join(sections, "\n\n")
}
