package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/carpick/carpick/internal/ui/theme"
)

// ProgressBar is the session accuracy bar on the summary screen: a
// solid fill over a dim track, no text.
type ProgressBar struct {
	Percent float64
	Width   int
}

// NewProgressBar builds a bar at the given fraction [0, 1] and width
// in cells.
func NewProgressBar(percent float64, width int) ProgressBar {
	return ProgressBar{Percent: percent, Width: width}
}

// View renders the bar.
func (p ProgressBar) View() string {
	width := p.Width
	if width < 4 {
		width = 4
	}

	filled := int(float64(width) * p.Percent)
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	fill := lipgloss.NewStyle().
		Background(theme.Secondary).
		Render(strings.Repeat(" ", filled))
	track := lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", width-filled))

	return fill + track
}
