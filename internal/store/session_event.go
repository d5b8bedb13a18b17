package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendSession(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO session_events
			(sequence, timestamp, session_id, action, rounds_played, correct_answers, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UTC(), data.SessionID, data.Action,
		data.RoundsPlayed, data.CorrectAnswers, data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, limit int) ([]SessionRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT session_id, action, rounds_played, correct_answers, duration_secs, timestamp
		 FROM session_events
		 WHERE action != 'started'
		 ORDER BY sequence DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRow
	for rows.Next() {
		var s SessionRow
		if err := rows.Scan(&s.SessionID, &s.Action, &s.RoundsPlayed, &s.CorrectAnswers, &s.DurationSecs, &s.Timestamp); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
