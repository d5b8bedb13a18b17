package home

import (
	"context"
	"math/rand"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/carpick/carpick/internal/catalog"
	"github.com/carpick/carpick/internal/facts"
	"github.com/carpick/carpick/internal/quiz"
	"github.com/carpick/carpick/internal/router"
	"github.com/carpick/carpick/internal/screen"
	"github.com/carpick/carpick/internal/screens/history"
	"github.com/carpick/carpick/internal/screens/placeholder"
	quizscreen "github.com/carpick/carpick/internal/screens/quiz"
	"github.com/carpick/carpick/internal/selfupdate"
	"github.com/carpick/carpick/internal/store"
	"github.com/carpick/carpick/internal/ui/components"
)

// updateCheckMsg carries the result of the async release check.
type updateCheckMsg struct {
	latest string
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu          components.Menu
	menuLabels    []string
	disabled      map[int]bool
	rounds        int
	accuracy      float64
	cars          int
	canPlay       bool
	factsOn       bool
	version       string
	latestVersion string
	mascotVariant MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(dataDir string, ix *catalog.Index, eventRepo store.EventRepo, factsService *facts.Service, rng *rand.Rand, strict bool, version string) *HomeScreen {
	var stats store.LifetimeStats
	if eventRepo != nil {
		stats, _ = eventRepo.LifetimeStats(context.Background())
	}

	var distinct int
	if ix != nil {
		distinct = ix.DistinctTriples()
	}
	canPlay := distinct >= quiz.NumChoices

	mascotVariant := MascotIdle
	if !canPlay {
		mascotVariant = MascotAlert
	} else if stats.Rounds >= 10 && stats.Accuracy() >= 0.8 {
		mascotVariant = MascotCelebrating
	}

	menuLabels := []string{"START QUIZ", "HISTORY", "EXIT GAME"}
	disabled := make(map[int]bool)
	if !canPlay {
		disabled[0] = true
	}

	items := []components.MenuItem{
		{Label: menuLabels[0], Disabled: !canPlay, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: quizscreen.New(dataDir, ix, eventRepo, factsService, rng, strict),
				}
			}
		}},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			if eventRepo == nil {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: placeholder.New("History")}
				}
			}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(eventRepo)}
			}
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:          components.NewMenu(items),
		menuLabels:    menuLabels,
		disabled:      disabled,
		rounds:        stats.Rounds,
		accuracy:      stats.Accuracy(),
		cars:          distinct,
		canPlay:       canPlay,
		factsOn:       factsService != nil,
		version:       version,
		mascotVariant: mascotVariant,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.version == "" || h.version == "(devel)" {
		return nil
	}
	version := h.version
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		checker := selfupdate.NewChecker(selfupdate.WithTimeout(3 * time.Second))
		result, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
		if err != nil || !result.UpdateAvailable {
			return updateCheckMsg{}
		}
		return updateCheckMsg{latest: result.LatestVersion}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(updateCheckMsg); ok {
		h.latestVersion = m.latest
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	// All sections share a uniform content width so they line up.
	cw := components.ContentWidth(width)

	var sections []string

	// 1. Title
	sections = append(sections, renderTitle(cw, compact))

	// 2. Mascot (full mode only)
	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant, cw))
	}

	// 3. Stats bar (double-bordered, same width)
	sections = append(sections, renderStatsBar(
		h.rounds, h.accuracy, h.cars, cw, compact))

	// 4. Menu (same width box)
	if compact {
		sections = append(sections, renderArcadeMenuCompact(
			h.menuLabels, h.menu.Selected, cw, h.disabled))
	} else {
		sections = append(sections, renderArcadeMenu(
			h.menuLabels, h.menu.Selected, cw, h.disabled))
	}

	// 5. Status notes
	var notes []string
	if !h.canPlay {
		notes = append(notes, renderGarageNote(h.cars, quiz.NumChoices, cw))
	}
	if !h.factsOn {
		notes = append(notes, renderFactsNote(cw))
	}
	if h.latestVersion != "" {
		notes = append(notes, renderUpdateNote(h.latestVersion, cw))
	}
	if len(notes) > 0 {
		sections = append(sections, strings.Join(notes, "\n"))
	}

	content := strings.Join(sections, "\n\n")

	// Wrap in cabinet frame, centered in the full area
	return components.CabinetFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
