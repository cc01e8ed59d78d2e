// Package screen defines what the router stacks and the app frames.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// HeaderProvider is implemented by screens that show live counters in the
// header instead of the profile's records.
type HeaderProvider interface {
	HeaderStats() layout.HeaderStats
}

// BackHandler is implemented by screens that handle Esc themselves rather
// than being popped by the app.
type BackHandler interface {
	HandlesBack() bool
}

// TimerFiredMsg is delivered to the active screen after an engine timer
// callback has run on the event loop.
type TimerFiredMsg struct{}
