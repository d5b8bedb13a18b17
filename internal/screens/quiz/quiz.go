// Package quiz hosts the interactive round loop: photo up top, ten
// choices below, feedback with an optional car fact in between.
package quiz

import (
	"context"
	"math/rand"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/carpick/carpick/internal/catalog"
	"github.com/carpick/carpick/internal/facts"
	engine "github.com/carpick/carpick/internal/quiz"
	"github.com/carpick/carpick/internal/router"
	"github.com/carpick/carpick/internal/screen"
	"github.com/carpick/carpick/internal/session"
	"github.com/carpick/carpick/internal/store"
	"github.com/carpick/carpick/internal/ui/components"
	"github.com/carpick/carpick/internal/ui/layout"
)

const (
	factPollInterval = 150 * time.Millisecond
	factPollMax      = 40 // give up on a fact after ~6s
)

// photo art budget in terminal cells
const (
	photoCols = 56
	photoRows = 12
)

// QuizScreen implements screen.Screen for an active quiz session.
type QuizScreen struct {
	dataDir   string
	index     *catalog.Index
	eventRepo store.EventRepo
	factsSvc  *facts.Service

	generator *engine.Generator
	evaluator engine.Evaluator
	tracker   *session.Tracker

	roundStart time.Time

	round      *engine.Round
	choices    components.MultiChoice
	photoArt   string
	fact       *facts.Fact
	factTicks  int
	loading    bool
	showingFb  bool
	quitPrompt bool
	errMsg     string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.ScoreProvider = (*QuizScreen)(nil)

// New creates a QuizScreen with injected dependencies. The event repo and
// facts service may be nil; play works without persistence or trivia.
func New(dataDir string, ix *catalog.Index, eventRepo store.EventRepo, factsSvc *facts.Service, rng *rand.Rand, strict bool) *QuizScreen {
	return &QuizScreen{
		dataDir:   dataDir,
		index:     ix,
		eventRepo: eventRepo,
		factsSvc:  factsSvc,
		generator: engine.NewGenerator(rng),
		evaluator: engine.Evaluator{Strict: strict},
		tracker:   session.NewTracker(),
		loading:   true,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	s.appendSessionEvent("started")
	return s.nextRound()
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// SessionScore reports the running tally for the header.
func (s *QuizScreen) SessionScore() (int, float64) {
	return s.tracker.Score, s.tracker.Accuracy()
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.quitPrompt {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.showingFb {
		return []layout.KeyHint{
			{Key: "any key", Description: "Next round"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "A-J/0-9", Description: "Pick"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case roundReadyMsg:
		return s.handleRoundReady(msg)

	case photoReadyMsg:
		if s.round != nil && msg.RoundID == s.round.ID && msg.Err == nil {
			s.photoArt = msg.Art
		}
		return s, nil

	case factTickMsg:
		return s.handleFactTick()

	case quizEndMsg:
		return s.handleQuizEnd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *QuizScreen) handleRoundReady(msg roundReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		s.loading = false
		return s, nil
	}

	s.round = msg.Round
	s.roundStart = time.Now()
	s.loading = false
	s.showingFb = false
	s.fact = nil
	s.factTicks = 0
	s.photoArt = ""

	labels := make([]string, len(msg.Round.Choices))
	for i, c := range msg.Round.Choices {
		labels[i] = c.Label()
	}
	s.choices = components.NewMultiChoice("Which car is this?", labels, msg.Round.TargetIndex())

	return s, s.loadPhoto(msg.Round)
}

func (s *QuizScreen) handleFactTick() (screen.Screen, tea.Cmd) {
	if !s.showingFb || s.fact != nil || s.factsSvc == nil {
		return s, nil
	}
	if fact, ok := s.factsSvc.ConsumeFact(); ok {
		s.fact = fact
		return s, nil
	}
	s.factTicks++
	if s.factTicks >= factPollMax {
		return s, nil
	}
	return s, factPollCmd()
}

func (s *QuizScreen) handleQuizEnd() (screen.Screen, tea.Cmd) {
	summary := session.BuildSummary(s.tracker)

	s.appendSessionEvent("completed")

	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: newSummaryScreenAdapter(summary),
		}
	}
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state. Any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	// Quit confirmation dialog.
	if s.quitPrompt {
		switch key {
		case "y", "Y":
			s.quitPrompt = false
			return s, func() tea.Msg { return quizEndMsg{} }
		case "n", "N", "esc":
			s.quitPrompt = false
			return s, nil
		}
		return s, nil
	}

	// Feedback overlay. Esc quits, anything else starts the next round.
	if s.showingFb {
		if key == "esc" {
			s.quitPrompt = true
			return s, nil
		}
		s.loading = true
		return s, s.nextRound()
	}

	if s.loading || s.round == nil {
		return s, nil
	}

	if key == "esc" {
		s.quitPrompt = true
		return s, nil
	}

	// Forward everything else to the choice list.
	var cmd tea.Cmd
	s.choices, cmd = s.choices.Update(msg)
	if s.choices.Submitted {
		return s.recordAnswer()
	}
	return s, cmd
}

// recordAnswer evaluates the submitted choice and moves to feedback.
func (s *QuizScreen) recordAnswer() (screen.Screen, tea.Cmd) {
	chosen := s.round.Choices[s.choices.ChosenIndex]
	correct, err := s.evaluator.Evaluate(s.round, chosen)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	s.tracker.RecordOutcome(s.round, chosen, correct)
	s.appendAnswerEvent(chosen, correct)

	s.showingFb = true

	if s.factsSvc != nil {
		target := s.round.Target
		s.factsSvc.RequestFact(context.Background(), facts.FactInput{
			Make:  target.Make,
			Model: target.Model,
			Year:  target.Year,
		})
		s.factTicks = 0
		return s, factPollCmd()
	}
	return s, nil
}

// nextRound generates the next round asynchronously.
func (s *QuizScreen) nextRound() tea.Cmd {
	ix := s.index
	gen := s.generator
	return func() tea.Msg {
		round, err := gen.Round(ix)
		if err != nil {
			return roundReadyMsg{Err: err}
		}
		return roundReadyMsg{Round: round}
	}
}

// loadPhoto renders the round's photo to half-block art off the UI loop.
func (s *QuizScreen) loadPhoto(round *engine.Round) tea.Cmd {
	path := filepath.Join(s.dataDir, filepath.FromSlash(round.Target.ImagePath))
	return func() tea.Msg {
		art, err := renderPhoto(path, photoCols, photoRows)
		return photoReadyMsg{RoundID: round.ID, Art: art, Err: err}
	}
}

func (s *QuizScreen) appendSessionEvent(action string) {
	if s.eventRepo == nil {
		return
	}
	_ = s.eventRepo.AppendSession(context.Background(), store.SessionEventData{
		SessionID:      s.tracker.ID,
		Action:         action,
		RoundsPlayed:   s.tracker.RoundsPlayed,
		CorrectAnswers: s.tracker.Score,
		DurationSecs:   time.Since(s.tracker.StartedAt).Seconds(),
	})
}

func (s *QuizScreen) appendAnswerEvent(chosen catalog.Record, correct bool) {
	if s.eventRepo == nil {
		return
	}
	target := s.round.Target
	_ = s.eventRepo.AppendAnswer(context.Background(), store.AnswerEventData{
		SessionID:  s.tracker.ID,
		RoundID:    s.round.ID,
		ImagePath:  target.ImagePath,
		Make:       target.Make,
		Model:      target.Model,
		Year:       target.Year,
		ChosenPath: chosen.ImagePath,
		Correct:    correct,
		TimeMs:     time.Since(s.roundStart).Milliseconds(),
	})
}

func factPollCmd() tea.Cmd {
	return tea.Tick(factPollInterval, func(t time.Time) tea.Msg {
		return factTickMsg(t)
	})
}
