package quiz

import (
	"time"

	engine "github.com/carpick/carpick/internal/quiz"
)

// roundReadyMsg is sent when the next round has been generated.
type roundReadyMsg struct {
	Round *engine.Round
	Err   error
}

// photoReadyMsg carries the rendered photo art for a round. The round ID
// guards against art arriving after the player has already moved on.
type photoReadyMsg struct {
	RoundID string
	Art     string
	Err     error
}

// factTickMsg polls the fact service while feedback is showing.
type factTickMsg time.Time

// quizEndMsg is sent to trigger the session end flow.
type quizEndMsg struct{}
