package server

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/carpick/carpick/internal/catalog"
	"github.com/carpick/carpick/internal/quiz"
	"github.com/carpick/carpick/internal/session"
)

var (
	// ErrRoundExpired means the submitted round is not the session's
	// active round, or was already answered.
	ErrRoundExpired = errors.New("round expired or already answered")

	// ErrChoiceOutOfRange means the choice index does not address one
	// of the round's presented options.
	ErrChoiceOutOfRange = errors.New("choice index out of range")
)

// GameSession is one API client's quiz run: a tracker plus the single
// active round. All methods are safe for concurrent use.
type GameSession struct {
	tracker *session.Tracker
	gen     *quiz.Generator
	eval    quiz.Evaluator

	mu       sync.Mutex
	current  *quiz.Round
	answered bool
}

// ID returns the session identifier.
func (g *GameSession) ID() string {
	return g.tracker.ID
}

// NewRound generates the session's next round from the given index and
// makes it the active round.
func (g *GameSession) NewRound(ix *catalog.Index) (*quiz.Round, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	r, err := g.gen.Round(ix)
	if err != nil {
		return nil, err
	}
	g.current = r
	g.answered = false
	return r, nil
}

// CurrentRoundID returns the active round's ID, or "" when none.
func (g *GameSession) CurrentRoundID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current == nil {
		return ""
	}
	return g.current.ID
}

// AnswerResult describes one evaluated answer together with the
// session's updated score.
type AnswerResult struct {
	Correct  bool
	Target   catalog.Record
	Chosen   catalog.Record
	Score    int
	Rounds   int
	Accuracy float64
}

// Answer evaluates choiceIndex against the active round and records the
// outcome. A round can be answered exactly once.
func (g *GameSession) Answer(roundID string, choiceIndex int) (AnswerResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.current == nil || g.current.ID != roundID || g.answered {
		return AnswerResult{}, ErrRoundExpired
	}
	if choiceIndex < 0 || choiceIndex >= len(g.current.Choices) {
		return AnswerResult{}, ErrChoiceOutOfRange
	}

	chosen := g.current.Choices[choiceIndex]
	correct, err := g.eval.Evaluate(g.current, chosen)
	if err != nil {
		return AnswerResult{}, err
	}

	g.tracker.RecordOutcome(g.current, chosen, correct)
	g.answered = true

	return AnswerResult{
		Correct:  correct,
		Target:   g.current.Target,
		Chosen:   chosen,
		Score:    g.tracker.Score,
		Rounds:   g.tracker.RoundsPlayed,
		Accuracy: g.tracker.Accuracy(),
	}, nil
}

// RoundImage returns the target record for an active round, for serving
// the photo. Available before and after answering.
func (g *GameSession) RoundImage(roundID string) (catalog.Record, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current == nil || g.current.ID != roundID {
		return catalog.Record{}, false
	}
	return g.current.Target, true
}

// AnsweredTarget returns the target record for a round that has already
// been answered. Facts are gated on this so the answer can't be fished
// out of the fact endpoint mid-round.
func (g *GameSession) AnsweredTarget(roundID string) (catalog.Record, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current == nil || g.current.ID != roundID || !g.answered {
		return catalog.Record{}, false
	}
	return g.current.Target, true
}

// Tracker exposes the underlying tracker for summaries.
func (g *GameSession) Tracker() *session.Tracker {
	return g.tracker
}

// SessionRegistry tracks live API sessions and maps active rounds back
// to their owning session.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*GameSession
	rounds   map[string]*GameSession
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*GameSession),
		rounds:   make(map[string]*GameSession),
	}
}

// Create starts a new session. rng may be nil for a time-seeded
// generator; tests pass a fixed seed.
func (r *SessionRegistry) Create(rng *rand.Rand, strict bool) *GameSession {
	g := &GameSession{
		tracker: session.NewTracker(),
		gen:     quiz.NewGenerator(rng),
		eval:    quiz.Evaluator{Strict: strict},
	}

	r.mu.Lock()
	r.sessions[g.ID()] = g
	r.mu.Unlock()
	return g
}

// Get returns the session with the given ID.
func (r *SessionRegistry) Get(id string) (*GameSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.sessions[id]
	return g, ok
}

// ByRound returns the session owning the given active round.
func (r *SessionRegistry) ByRound(roundID string) (*GameSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.rounds[roundID]
	return g, ok
}

// TrackRound records that roundID now belongs to session g, dropping
// the session's previous round mapping.
func (r *SessionRegistry) TrackRound(g *GameSession, oldRoundID, roundID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if oldRoundID != "" {
		delete(r.rounds, oldRoundID)
	}
	r.rounds[roundID] = g
}

// End removes a session and its round mappings, returning it for a
// final summary.
func (r *SessionRegistry) End(id string) (*GameSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	delete(r.sessions, id)
	for roundID, owner := range r.rounds {
		if owner == g {
			delete(r.rounds, roundID)
		}
	}
	return g, true
}
