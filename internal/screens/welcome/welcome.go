// Package welcome plays the splash animation: the car rolls in, the
// headlights flash, then the CARPICK banner drops with the tagline.
// Any key hands off to the home screen.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/carpick/carpick/internal/router"
	"github.com/carpick/carpick/internal/screen"
	"github.com/carpick/carpick/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond  // headlights start flashing
	phase2End    = 1500 * time.Millisecond // banner and tagline appear
	totalDur     = 4500 * time.Millisecond
)

const mascotArt = `        ▄▄▄▄▄▄▄▄▄▄▄▄
    ▄▄▄█▀  ▄▄▄▄▄▄  ▀█▄▄▄▄
   █▀      █    █       ▀█
   █▄▄▄▄▄▄▄█▄▄▄▄█▄▄▄▄▄▄▄▄█
      ▄██▄          ▄██▄
      ▀██▀          ▀██▀`

// flashFrames alternate on either side of the car.
var flashFrames = []string{"✦", "･"}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// WelcomeScreen runs the splash until a keypress swaps in the home
// screen. The home screen is built lazily so its Init fires on entry.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{homeFactory: homeFactory}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return tick() }

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		// Ticks never stop (the flashes keep alternating) but elapsed
		// caps at the end of the choreography.
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		// Any key skips straight past whatever is left of the animation.
		return w, w.transition()
	}

	return w, nil
}

// transition builds the home screen and asks the router to swap it in.
// Idempotent: a second keypress does nothing.
func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	home := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: home}
	}
}

// headlights decorates the car art with alternating flashes on rows 0,
// 3, and 5.
func (w *WelcomeScreen) headlights(art string) string {
	flash := flashFrames[w.tickCount%len(flashFrames)]
	left := lipgloss.NewStyle().Foreground(theme.Accent).Render(flash)
	right := lipgloss.NewStyle().Foreground(theme.Secondary).Render(flash)

	lines := strings.Split(art, "\n")
	for i, row := range []int{0, 3, 5} {
		if row >= len(lines) {
			break
		}
		if i%2 == 0 {
			lines[row] = left + "  " + lines[row] + "  " + right
		} else {
			lines[row] = right + "  " + lines[row] + "  " + left
		}
	}
	return strings.Join(lines, "\n")
}

func (w *WelcomeScreen) View(width, height int) string {
	car := lipgloss.NewStyle().Foreground(theme.Primary).Render(mascotArt)
	if w.elapsed >= phase1End {
		car = w.headlights(car)
	}

	sections := []string{car}

	if w.elapsed >= phase2End {
		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Name that car!")
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to start")

		sections = append(sections, "", RenderBanner(width), "", tagline, "", hint)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n"))
}
