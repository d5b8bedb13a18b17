package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/carpick/carpick/internal/ui/components"
	"github.com/carpick/carpick/internal/ui/theme"
)

// Block-letter title (same art as welcome/banner.go).
const arcadeTitleFull = `  ██████╗ █████╗ ██████╗ ██████╗ ██╗ ██████╗██╗  ██╗
 ██╔════╝██╔══██╗██╔══██╗██╔══██╗██║██╔════╝██║ ██╔╝
 ██║     ███████║██████╔╝██████╔╝██║██║     █████╔╝
 ██║     ██╔══██║██╔══██╗██╔═══╝ ██║██║     ██╔═██╗
 ╚██████╗██║  ██║██║  ██║██║     ██║╚██████╗██║  ██╗
  ╚═════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝     ╚═╝ ╚═════╝╚═╝  ╚═╝`

const arcadeTitleCompact = "C · A · R · P · I · C · K"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	if compact {
		return lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(style.Render(arcadeTitleCompact))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(arcadeTitleFull))
}

// renderStatsBar renders the dashboard stats in a bordered box matching content width.
func renderStatsBar(rounds int, accuracy float64, cars, cw int, compact bool) string {
	roundStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	carStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	hitStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			roundStyle.Render(fmt.Sprintf("★%d", rounds)),
			accuracyText(rounds, accuracy, true, hitStyle, dimStyle),
			carStyle.Render(fmt.Sprintf("◈%d", cars)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			roundStyle.Render(fmt.Sprintf("★ %d ROUNDS", rounds)),
			accuracyText(rounds, accuracy, false, hitStyle, dimStyle),
			carStyle.Render(fmt.Sprintf("◈ %d CARS", cars)),
		)
	}

	// Wrap in a double-border box at the same content width
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func accuracyText(rounds int, accuracy float64, compact bool, active, dim lipgloss.Style) string {
	if rounds == 0 {
		if compact {
			return dim.Render("✔–")
		}
		return dim.Render("✔ NO ROUNDS YET")
	}
	if compact {
		return active.Render(fmt.Sprintf("✔%.0f%%", accuracy*100))
	}
	return active.Render(fmt.Sprintf("✔ %.0f%% HIT RATE", accuracy*100))
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	disabledBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, label := range items {
		if disabled[i] {
			buttons = append(buttons, disabledBtn.Render(label))
		} else {
			buttons = append(buttons, components.ArcadeButton(label, i == selected, buttonWidth))
		}
	}
	block := strings.Join(buttons, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for very small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		if disabled[i] {
			line = lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("   " + label)
		} else if i == selected {
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}
	block := strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderGarageNote renders a warning when the index is too small for a round.
func renderGarageNote(distinct, need, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("⚠ Need %d distinct cars to play (found %d). Add photos and run: carpick index build", need, distinct))
}

// renderFactsNote renders a dim hint when no LLM provider is configured.
func renderFactsNote(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render("Set an LLM API key to unlock car facts (see carpick --help)")
}

// renderUpdateNote renders a dim one-line update notification.
func renderUpdateNote(latestVersion string, cw int) string {
	text := fmt.Sprintf("New version %s available", latestVersion)
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}

