package session

import "time"

// Summary holds the data displayed on the end-of-session summary screen.
type Summary struct {
	SessionID   string
	Duration    time.Duration
	Rounds      int
	Correct     int
	Accuracy    float64
	MakeResults []MakeResult
}

// BuildSummary snapshots a tracker for rendering.
func BuildSummary(t *Tracker) *Summary {
	return &Summary{
		SessionID:   t.ID,
		Duration:    time.Since(t.StartedAt),
		Rounds:      t.RoundsPlayed,
		Correct:     t.Score,
		Accuracy:    t.Accuracy(),
		MakeResults: t.MakeResults(),
	}
}
