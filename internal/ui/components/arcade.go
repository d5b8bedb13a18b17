package components

import (
	"charm.land/lipgloss/v2"

	"github.com/carpick/carpick/internal/ui/theme"
)

// The home screen is drawn as an arcade cabinet: a double-bordered
// frame around stacked boxes that all share one content width so their
// edges line up.

var (
	cabinetStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(theme.Primary).
			Align(lipgloss.Center, lipgloss.Center)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Align(lipgloss.Center).
			Padding(1, 2)

	arcadeButtonOn = lipgloss.NewStyle().
			Align(lipgloss.Center).
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.ArcadeYellow).
			Padding(0, 1)

	arcadeButtonOff = lipgloss.NewStyle().
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1)
)

// ContentWidth converts the frame width to the shared inner width.
// Cabinet border eats 2 cells and inner padding 4; the result is
// clamped to [20, 60] so narrow terminals stay usable and wide ones
// don't stretch the boxes.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 60)
}

// CabinetFrame draws the outer cabinet and centers content inside the
// full width x height area.
func CabinetFrame(content string, width, height int) string {
	return cabinetStyle.Width(width - 2).Height(height - 2).Render(content)
}

// ArcadeCard draws one rounded box at the shared content width.
func ArcadeCard(content string, cw int) string {
	return cardStyle.Width(cw - 2).Render(content)
}

// ArcadeButton draws a menu entry; the selected one lights up yellow
// with a chevron.
func ArcadeButton(label string, selected bool, width int) string {
	if selected {
		return arcadeButtonOn.Width(width).Render("▸ " + label)
	}
	return arcadeButtonOff.Width(width).Render(label)
}
