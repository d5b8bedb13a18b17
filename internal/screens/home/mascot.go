package home

import (
	"charm.land/lipgloss/v2"

	"github.com/carpick/carpick/internal/ui/theme"
)

// MascotVariant selects which garage car art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default amber
	MascotCelebrating                      // Gold, star grille after a hot streak
	MascotAlert                            // Red, exclamation when the garage is short on cars
)

const carIdle = `   ▄▄▄▄▄▄▄▄▄▄
 ▄█▀ ▄▄▄▄▄ ▀█▄▄▄
 █   █   █     █
 █▄▄▄█▄▄▄█▄▄▄▄▄█
   ◉        ◉`

const carCelebrating = ` ★ ▄▄▄▄▄▄▄▄▄▄ ★
 ▄█▀ ▄▄▄▄▄ ▀█▄▄▄
 █   █ ★ █     █
 █▄▄▄█▄▄▄█▄▄▄▄▄█
   ◉        ◉`

const carAlert = `   ▄▄▄▄▄▄▄▄▄▄
 ▄█▀ ▄▄▄▄▄ ▀█▄▄▄  !
 █   █   █     █
 █▄▄▄█▄▄▄█▄▄▄▄▄█
   ◉        ◉`

// RenderMascot returns the car art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg = theme.Primary

	switch v {
	case MascotCelebrating:
		art = carCelebrating
		fg = theme.ArcadeYellow
	case MascotAlert:
		art = carAlert
		fg = theme.Accent
	default:
		art = carIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
