package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput is a thin wrapper over bubbles/textinput used for the
// history filter. It owns focus and the character limit; styling stays
// with the screen that renders it.
type TextInput struct {
	Model textinput.Model
}

// NewTextInput builds a focused input. limit caps the entry length;
// zero means unlimited.
func NewTextInput(placeholder string, limit int) TextInput {
	m := textinput.New()
	m.Placeholder = placeholder
	if limit > 0 {
		m.CharLimit = limit
	}
	m.Focus()
	return TextInput{Model: m}
}

// Init starts the cursor blink.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update forwards messages to the inner model.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the input.
func (t TextInput) View() string {
	return t.Model.View()
}

// Value returns the current text.
func (t TextInput) Value() string {
	return t.Model.Value()
}
