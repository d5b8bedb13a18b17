package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"answer_events", "session_events", "llm_request_events", "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestSequenceSpansEventTypes(t *testing.T) {
	s := openTestStore(t)
	repo := s.Events()
	ctx := context.Background()

	if err := repo.AppendAnswer(ctx, AnswerEventData{SessionID: "s1", RoundID: "r1", Make: "Acura"}); err != nil {
		t.Fatalf("append answer: %v", err)
	}
	if err := repo.AppendSession(ctx, SessionEventData{SessionID: "s1", Action: "completed"}); err != nil {
		t.Fatalf("append session: %v", err)
	}

	var answerSeq, sessionSeq int64
	if err := s.DB().QueryRow("SELECT sequence FROM answer_events").Scan(&answerSeq); err != nil {
		t.Fatal(err)
	}
	if err := s.DB().QueryRow("SELECT sequence FROM session_events").Scan(&sessionSeq); err != nil {
		t.Fatal(err)
	}
	if sessionSeq <= answerSeq {
		t.Errorf("session sequence %d should follow answer sequence %d", sessionSeq, answerSeq)
	}
}

func TestAnswerStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.Events()
	ctx := context.Background()

	answers := []AnswerEventData{
		{SessionID: "s1", RoundID: "r1", Make: "Acura", Model: "ILX", Year: 2013, Correct: true},
		{SessionID: "s1", RoundID: "r2", Make: "Acura", Model: "ILX", Year: 2013, Correct: false},
		{SessionID: "s1", RoundID: "r3", Make: "BMW", Model: "M3", Year: 2020, Correct: true},
		{SessionID: "s2", RoundID: "r4", Make: "Acura", Model: "TLX", Year: 2021, Correct: true},
	}
	for i, a := range answers {
		if err := repo.AppendAnswer(ctx, a); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	stats, err := repo.LifetimeStats(ctx)
	if err != nil {
		t.Fatalf("lifetime stats: %v", err)
	}
	if stats.Rounds != 4 || stats.Correct != 3 || stats.Sessions != 2 {
		t.Errorf("stats = %+v, want 4 rounds, 3 correct, 2 sessions", stats)
	}
	if got := stats.Accuracy(); got != 0.75 {
		t.Errorf("accuracy = %v, want 0.75", got)
	}

	makes, err := repo.MakeBreakdown(ctx)
	if err != nil {
		t.Fatalf("make breakdown: %v", err)
	}
	if len(makes) != 2 {
		t.Fatalf("got %d makes, want 2", len(makes))
	}
	if makes[0].Make != "Acura" || makes[0].Rounds != 3 || makes[0].Correct != 2 {
		t.Errorf("makes[0] = %+v, want Acura 3/2", makes[0])
	}
	if makes[1].Make != "BMW" || makes[1].Rounds != 1 {
		t.Errorf("makes[1] = %+v, want BMW 1", makes[1])
	}
}

func TestRecentAnswers(t *testing.T) {
	s := openTestStore(t)
	repo := s.Events()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := repo.AppendAnswer(ctx, AnswerEventData{
			SessionID: "s1",
			RoundID:   fmt.Sprintf("r%d", i),
			Make:      "Mazda",
			Model:     "Miata",
			Year:      1999,
			Correct:   i%2 == 0,
			TimeMs:    int64(1000 + i),
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	got, err := repo.RecentAnswers(ctx, 3)
	if err != nil {
		t.Fatalf("recent answers: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d answers, want 3", len(got))
	}
	if got[0].RoundID != "r4" || got[2].RoundID != "r2" {
		t.Errorf("order = %s..%s, want r4..r2", got[0].RoundID, got[2].RoundID)
	}
	if got[0].Make != "Mazda" || got[0].TimeMs != 1004 {
		t.Errorf("row = %+v, want Mazda with 1004ms", got[0])
	}

	all, err := repo.RecentAnswers(ctx, 0)
	if err != nil {
		t.Fatalf("all answers: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("got %d answers, want all 5", len(all))
	}
}

func TestLifetimeStatsEmpty(t *testing.T) {
	s := openTestStore(t)
	stats, err := s.Events().LifetimeStats(context.Background())
	if err != nil {
		t.Fatalf("lifetime stats: %v", err)
	}
	if stats.Rounds != 0 || stats.Accuracy() != 0 {
		t.Errorf("empty stats = %+v, want zeros", stats)
	}
}

func TestHardestCars(t *testing.T) {
	s := openTestStore(t)
	repo := s.Events()
	ctx := context.Background()

	// ILX answered 3 times with 1 hit, M3 twice with 2 hits,
	// TLX once (excluded by the min-rounds filter).
	seed := []AnswerEventData{
		{SessionID: "s1", Make: "Acura", Model: "ILX", Year: 2013, Correct: false},
		{SessionID: "s1", Make: "Acura", Model: "ILX", Year: 2013, Correct: true},
		{SessionID: "s1", Make: "Acura", Model: "ILX", Year: 2013, Correct: false},
		{SessionID: "s1", Make: "BMW", Model: "M3", Year: 2020, Correct: true},
		{SessionID: "s1", Make: "BMW", Model: "M3", Year: 2020, Correct: true},
		{SessionID: "s1", Make: "Acura", Model: "TLX", Year: 2021, Correct: false},
	}
	for i, a := range seed {
		a.RoundID = fmt.Sprintf("r%d", i)
		if err := repo.AppendAnswer(ctx, a); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	cars, err := repo.HardestCars(ctx, 10)
	if err != nil {
		t.Fatalf("hardest cars: %v", err)
	}
	if len(cars) != 2 {
		t.Fatalf("got %d cars, want 2", len(cars))
	}
	if cars[0].Model != "ILX" {
		t.Errorf("hardest = %+v, want ILX first", cars[0])
	}
	if cars[1].Model != "M3" {
		t.Errorf("second = %+v, want M3", cars[1])
	}
}

func TestRecentSessions(t *testing.T) {
	s := openTestStore(t)
	repo := s.Events()
	ctx := context.Background()

	if err := repo.AppendSession(ctx, SessionEventData{SessionID: "s1", Action: "started"}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		err := repo.AppendSession(ctx, SessionEventData{
			SessionID:      fmt.Sprintf("s%d", i+1),
			Action:         "completed",
			RoundsPlayed:   i + 1,
			CorrectAnswers: i,
			DurationSecs:   12.5,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	sessions, err := repo.RecentSessions(ctx, 2)
	if err != nil {
		t.Fatalf("recent sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
	// Newest first, "started" rows excluded.
	if sessions[0].SessionID != "s3" || sessions[1].SessionID != "s2" {
		t.Errorf("order = %s, %s, want s3, s2", sessions[0].SessionID, sessions[1].SessionID)
	}
	if sessions[0].RoundsPlayed != 3 {
		t.Errorf("RoundsPlayed = %d, want 3", sessions[0].RoundsPlayed)
	}
}

func TestLLMRequestRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.Events()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "anthropic",
		Model:        "claude-sonnet-4-5",
		Purpose:      "car_fact",
		InputTokens:  120,
		OutputTokens: 80,
		LatencyMs:    950,
		Success:      true,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	err = repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "anthropic",
		Model:        "claude-sonnet-4-5",
		Purpose:      "car_fact",
		LatencyMs:    20,
		Success:      false,
		ErrorMessage: "rate limited",
	})
	if err != nil {
		t.Fatalf("append failure: %v", err)
	}

	reqs, err := repo.LLMRequests(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(reqs) != 2 {
		t.Fatalf("got %d requests, want 2", len(reqs))
	}
	if reqs[0].Success {
		t.Error("newest request should be the failure")
	}

	got, err := repo.LLMRequestByID(ctx, reqs[1].ID)
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if got == nil || got.InputTokens != 120 || got.OutputTokens != 80 {
		t.Errorf("by id = %+v, want the successful request", got)
	}

	missing, err := repo.LLMRequestByID(ctx, 9999)
	if err != nil {
		t.Fatalf("by missing id: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing id, got %+v", missing)
	}

	usage, err := repo.LLMUsage(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 1 {
		t.Fatalf("got %d usage rows, want 1", len(usage))
	}
	u := usage[0]
	if u.Requests != 2 || u.Failures != 1 || u.InputTokens != 120 || u.OutputTokens != 80 {
		t.Errorf("usage = %+v, want 2 requests, 1 failure, 120/80 tokens", u)
	}
}

func TestDefaultDBPathEnvOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom.db")
	t.Setenv("CARPICK_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default db path: %v", err)
	}
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}
