package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/carpick/carpick/internal/router"
	"github.com/carpick/carpick/internal/screen"
	"github.com/carpick/carpick/internal/ui/components"
	"github.com/carpick/carpick/internal/ui/theme"
)

// PlaceholderScreen stands in for home menu entries that aren't built
// yet. Esc pops back.
type PlaceholderScreen struct {
	title string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

func New(title string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return p, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	card := components.ArcadeCard(
		lipgloss.NewStyle().
			Foreground(theme.Text).
			Render("╌╌ Coming Soon ╌╌\n\nThis feature is being built.\nCheck back later!"),
		components.ContentWidth(width))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
