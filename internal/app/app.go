// Package app assembles the Bubble Tea program: the screen router plus
// the shared header/footer frame around whatever screen is active.
package app

import (
	"fmt"
	"math/rand"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/carpick/carpick/internal/catalog"
	"github.com/carpick/carpick/internal/facts"
	"github.com/carpick/carpick/internal/router"
	"github.com/carpick/carpick/internal/screen"
	"github.com/carpick/carpick/internal/screens/home"
	"github.com/carpick/carpick/internal/screens/welcome"
	"github.com/carpick/carpick/internal/store"
	"github.com/carpick/carpick/internal/ui/layout"
)

// Options carries everything the screens need. EventRepo and
// FactsService may be nil; the game degrades to play-only.
type Options struct {
	DataDir      string
	Index        *catalog.Index
	EventRepo    store.EventRepo
	FactsService *facts.Service
	RNG          *rand.Rand
	Strict       bool
	Version      string
	SkipWelcome  bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates an AppModel opening on the welcome splash, or
// straight on the home screen when the splash is skipped.
func newAppModel(opts Options) AppModel {
	homeFactory := func() screen.Screen {
		return home.New(opts.DataDir, opts.Index, opts.EventRepo,
			opts.FactsService, opts.RNG, opts.Strict, opts.Version)
	}

	var first screen.Screen
	if opts.SkipWelcome {
		first = homeFactory()
	} else {
		first = welcome.New(homeFactory)
	}

	return AppModel{
		router: router.New(first),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Esc stays with the screens: the quiz turns it into a quit
		// confirmation rather than an unconditional pop.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()

	title := ""
	if active != nil {
		title = active.Title()
	}

	score := 0
	accuracy := 0.0
	if sp, ok := active.(screen.ScoreProvider); ok {
		score, accuracy = sp.SessionScore()
	}

	header := layout.RenderHeader(title, score, accuracy, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// footerHints asks the active screen first, then falls back to stack
// position defaults.
func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			return hints
		}
	}

	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
