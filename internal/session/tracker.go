package session

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/carpick/carpick/internal/catalog"
	"github.com/carpick/carpick/internal/quiz"
)

// HistoryLimit bounds the retained round outcomes. Once full, recording
// evicts the oldest entry first.
const HistoryLimit = 25

// Outcome is one evaluated round as the tracker remembers it.
type Outcome struct {
	// RoundID ties the outcome back to the generated round.
	RoundID string

	// Target is the record the round asked for.
	Target catalog.Record

	// Chosen is the record the player submitted.
	Chosen catalog.Record

	// Correct is the evaluator's verdict.
	Correct bool

	// At is when the outcome was recorded.
	At time.Time
}

// MakeResult aggregates results for one manufacturer across the session.
type MakeResult struct {
	Make    string
	Rounds  int
	Correct int
}

// Tracker accumulates score, accuracy, and bounded history for one play
// session. It is exclusively owned by that session and holds no locks;
// anything serving sessions concurrently must guard access itself. State
// dies with the session — there is no cross-session persistence here.
type Tracker struct {
	// ID identifies the session in logs and the event store.
	ID string

	// StartedAt is when the session began.
	StartedAt time.Time

	// Score counts correct answers.
	Score int

	// RoundsPlayed counts evaluated rounds.
	RoundsPlayed int

	history []Outcome
	perMake map[string]*MakeResult
}

// NewTracker creates an empty tracker for a new session.
func NewTracker() *Tracker {
	return &Tracker{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		perMake:   make(map[string]*MakeResult),
	}
}

// RecordOutcome applies one evaluated round: score +1 iff correct, rounds
// +1, and the outcome appended to history with FIFO eviction beyond
// HistoryLimit.
func (t *Tracker) RecordOutcome(round *quiz.Round, chosen catalog.Record, correct bool) {
	t.RoundsPlayed++
	if correct {
		t.Score++
	}

	t.history = append(t.history, Outcome{
		RoundID: round.ID,
		Target:  round.Target,
		Chosen:  chosen,
		Correct: correct,
		At:      time.Now(),
	})
	if len(t.history) > HistoryLimit {
		t.history = t.history[len(t.history)-HistoryLimit:]
	}

	mr, ok := t.perMake[round.Target.Make]
	if !ok {
		mr = &MakeResult{Make: round.Target.Make}
		t.perMake[round.Target.Make] = mr
	}
	mr.Rounds++
	if correct {
		mr.Correct++
	}
}

// Accuracy returns score/roundsPlayed, or 0 before any round is played.
func (t *Tracker) Accuracy() float64 {
	if t.RoundsPlayed == 0 {
		return 0
	}
	return float64(t.Score) / float64(t.RoundsPlayed)
}

// History returns the retained outcomes, oldest first. The slice is a copy;
// callers may keep or mutate it freely.
func (t *Tracker) History() []Outcome {
	return append([]Outcome(nil), t.history...)
}

// MakeResults returns per-manufacturer aggregates sorted by make name.
func (t *Tracker) MakeResults() []MakeResult {
	out := make([]MakeResult, 0, len(t.perMake))
	for _, mr := range t.perMake {
		out = append(out, *mr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Make < out[j].Make })
	return out
}
