package store

import (
	"context"
	"time"
)

// AnswerEventData captures a single answered round.
type AnswerEventData struct {
	SessionID  string
	RoundID    string
	ImagePath  string
	Make       string
	Model      string
	Year       int
	ChosenPath string
	Correct    bool
	TimeMs     int64
}

// SessionEventData captures a session lifecycle transition.
type SessionEventData struct {
	SessionID      string
	Action         string // "started", "completed", "abandoned"
	RoundsPlayed   int
	CorrectAnswers int
	DurationSecs   float64
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LifetimeStats aggregates every answer ever recorded.
type LifetimeStats struct {
	Rounds   int
	Correct  int
	Sessions int
}

// Accuracy returns the lifetime hit rate, or 0 before any round.
func (s LifetimeStats) Accuracy() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Rounds)
}

// MakeStats aggregates answers for one manufacturer.
type MakeStats struct {
	Make    string
	Rounds  int
	Correct int
}

// CarStats aggregates answers for one make/model/year triple.
type CarStats struct {
	Make    string
	Model   string
	Year    int
	Rounds  int
	Correct int
}

// SessionRow is one recorded session lifecycle event.
type SessionRow struct {
	SessionID      string
	Action         string
	RoundsPlayed   int
	CorrectAnswers int
	DurationSecs   float64
	Timestamp      time.Time
}

// AnswerRow is one recorded answer with its target car.
type AnswerRow struct {
	Sequence  int64
	Timestamp time.Time
	SessionID string
	RoundID   string
	Make      string
	Model     string
	Year      int
	Correct   bool
	TimeMs    int64
}

// LLMRequestRow is one recorded LLM call, with its row ID for inspection.
type LLMRequestRow struct {
	ID           int64
	Sequence     int64
	Timestamp    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMUsageStats aggregates LLM calls per provider/model/purpose.
type LLMUsageStats struct {
	Provider     string
	Model        string
	Purpose      string
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendAnswer records an answered round.
	AppendAnswer(ctx context.Context, data AnswerEventData) error

	// AppendSession records a session lifecycle event.
	AppendSession(ctx context.Context, data SessionEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// LifetimeStats returns totals across all recorded answers.
	LifetimeStats(ctx context.Context) (LifetimeStats, error)

	// MakeBreakdown returns per-make answer totals, most played first.
	MakeBreakdown(ctx context.Context) ([]MakeStats, error)

	// HardestCars returns per-car totals ordered by worst accuracy,
	// limited to cars answered at least twice.
	HardestCars(ctx context.Context, limit int) ([]CarStats, error)

	// RecentSessions returns the newest completed-session events.
	RecentSessions(ctx context.Context, limit int) ([]SessionRow, error)

	// RecentAnswers returns the newest answers. A limit of 0 or less
	// returns everything.
	RecentAnswers(ctx context.Context, limit int) ([]AnswerRow, error)

	// LLMRequests returns the newest LLM request events.
	LLMRequests(ctx context.Context, limit int) ([]LLMRequestRow, error)

	// LLMRequestByID returns one LLM request event, or nil if absent.
	LLMRequestByID(ctx context.Context, id int64) (*LLMRequestRow, error)

	// LLMUsage returns aggregate LLM usage grouped by provider, model
	// and purpose.
	LLMUsage(ctx context.Context) ([]LLMUsageStats, error)
}
