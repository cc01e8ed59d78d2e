package components

import (
	"strings"
	"unicode"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// CodeInput wraps bubbles/textinput for short lowercase codes such as a
// challenge id. Only letters, digits and dashes are accepted.
type CodeInput struct {
	Model textinput.Model
}

// NewCodeInput creates a focused code input.
func NewCodeInput(placeholder string, limit int) CodeInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	if limit > 0 {
		ti.CharLimit = limit
		ti.SetWidth(limit + 1)
	}
	return CodeInput{Model: ti}
}

// Init focuses the input.
func (c *CodeInput) Init() tea.Cmd {
	return c.Model.Focus()
}

// Update filters key presses before handing them to the text input.
func (c CodeInput) Update(msg tea.Msg) (CodeInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		if r := []rune(kmsg.Text); len(r) == 1 && !codeRune(r[0]) {
			return c, nil
		}
	}
	var cmd tea.Cmd
	c.Model, cmd = c.Model.Update(msg)
	return c, cmd
}

func codeRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-'
}

// View renders the input.
func (c CodeInput) View() string {
	return c.Model.View()
}

// Value returns the trimmed, lowercased input.
func (c CodeInput) Value() string {
	return strings.ToLower(strings.TrimSpace(c.Model.Value()))
}
