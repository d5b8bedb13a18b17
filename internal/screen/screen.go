// Package screen declares what the router needs from a screen. The
// concrete screens (home, quiz, summary, history) live under
// internal/screens.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/carpick/carpick/internal/ui/layout"
)

// Screen is one full-window view in the quiz app.
type Screen interface {
	// Init runs once when the screen becomes active.
	Init() tea.Cmd

	// Update handles a message and returns the screen to keep showing.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area. Header and footer are drawn by the
	// app around it.
	View(width, height int) string

	// Title names the screen in the header bar.
	Title() string
}

// KeyHintProvider lets a screen put its own bindings in the footer
// instead of the default set.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// ScoreProvider is an optional interface for screens that carry a live
// session score, surfaced in the header.
type ScoreProvider interface {
	SessionScore() (correct int, accuracy float64)
}
