package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/carpick/carpick/internal/router"
	"github.com/carpick/carpick/internal/screen"
	"github.com/carpick/carpick/internal/store"
	"github.com/carpick/carpick/internal/ui/components"
	"github.com/carpick/carpick/internal/ui/layout"
	"github.com/carpick/carpick/internal/ui/theme"
)

type historyLoadedMsg struct {
	Sessions []store.SessionRow
	Answers  map[string][]store.AnswerRow // sessionID -> answers
	Err      error
}

// HistoryScreen displays past sessions with their per-round results.
// Pressing / filters sessions by the cars that came up in them.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionRow
	answers   map[string][]store.AnswerRow
	selected  int
	expanded  map[string]bool
	filter    components.TextInput
	filtering bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[string]bool),
		filter:    components.NewTextInput("make or model", 24),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		sessions, err := s.eventRepo.RecentSessions(ctx, 50)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		// Load recent answers and group by session.
		allAnswers, err := s.eventRepo.RecentAnswers(ctx, 0)
		if err != nil {
			return historyLoadedMsg{Sessions: sessions, Answers: make(map[string][]store.AnswerRow)}
		}

		answersBySession := make(map[string][]store.AnswerRow)
		for _, a := range allAnswers {
			answersBySession[a.SessionID] = append(answersBySession[a.SessionID], a)
		}

		return historyLoadedMsg{Sessions: sessions, Answers: answersBySession}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.filtering {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Clear filter"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "/", Description: "Filter"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.answers = msg.Answers
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		if s.filtering {
			switch msg.String() {
			case "enter":
				s.filtering = false
				s.selected = 0
				return s, nil
			case "esc":
				s.filtering = false
				s.filter.Model.SetValue("")
				s.selected = 0
				return s, nil
			}
			var cmd tea.Cmd
			s.filter, cmd = s.filter.Update(msg)
			return s, cmd
		}

		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "/":
			s.filtering = true
			return s, s.filter.Init()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.visible())-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			visible := s.visible()
			if s.selected < len(visible) {
				id := visible[s.selected].SessionID
				s.expanded[id] = !s.expanded[id]
			}
			return s, nil
		}
	}
	return s, nil
}

// visible returns the sessions matching the current filter. A session
// matches when any of its recorded cars matches on make or model.
func (s *HistoryScreen) visible() []store.SessionRow {
	query := strings.ToLower(strings.TrimSpace(s.filter.Value()))
	if query == "" {
		return s.sessions
	}

	var out []store.SessionRow
	for _, sess := range s.sessions {
		for _, a := range s.answers[sess.SessionID] {
			if strings.Contains(strings.ToLower(a.Make), query) ||
				strings.Contains(strings.ToLower(a.Model), query) {
				out = append(out, sess)
				break
			}
		}
	}
	return out
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Start a quiz!")
	}

	var b strings.Builder
	b.WriteString("\n")

	if s.filtering || s.filter.Value() != "" {
		prompt := lipgloss.NewStyle().Foreground(theme.Secondary).Render("Filter: ") +
			s.filter.View()
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, prompt))
		b.WriteString("\n\n")
	}

	visible := s.visible()
	if len(visible) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render(fmt.Sprintf("No sessions featured %q", s.filter.Value()))))
		return b.String()
	}

	for i, sess := range visible {
		dateStr := sess.Timestamp.Format("Jan 02, 2006")
		mins := int(sess.DurationSecs) / 60
		secs := int(sess.DurationSecs) % 60
		durationStr := fmt.Sprintf("%d:%02d", mins, secs)

		var accuracy float64
		if sess.RoundsPlayed > 0 {
			accuracy = float64(sess.CorrectAnswers) / float64(sess.RoundsPlayed) * 100
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %d rounds  %.0f%% accuracy",
			prefix, dateStr, durationStr, sess.RoundsPlayed, accuracy)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		// Show expanded per-round results.
		if s.expanded[sess.SessionID] {
			rounds := s.answers[sess.SessionID]
			if len(rounds) == 0 {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
						Render("    No recorded rounds")))
				b.WriteString("\n")
			} else {
				for _, a := range rounds {
					mark := "✗"
					markColor := theme.Error
					if a.Correct {
						mark = "✓"
						markColor = theme.Success
					}
					roundLine := fmt.Sprintf("    %s %s %s %d  (%.1fs)",
						lipgloss.NewStyle().Foreground(markColor).Render(mark),
						a.Make, a.Model, a.Year, float64(a.TimeMs)/1000)
					b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
						lipgloss.NewStyle().Foreground(theme.Text).Render(roundLine)))
					b.WriteString("\n")
				}
			}
		}
	}

	return b.String()
}
