package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO answer_events
			(sequence, timestamp, session_id, round_id, image_path, make, model, year, chosen_path, correct, time_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UTC(), data.SessionID, data.RoundID, data.ImagePath,
		data.Make, data.Model, data.Year, data.ChosenPath, data.Correct, data.TimeMs,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) LifetimeStats(ctx context.Context) (LifetimeStats, error) {
	var stats LifetimeStats
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(correct), 0), COUNT(DISTINCT session_id) FROM answer_events`,
	).Scan(&stats.Rounds, &stats.Correct, &stats.Sessions)
	if err != nil {
		return LifetimeStats{}, fmt.Errorf("query lifetime stats: %w", err)
	}
	return stats, nil
}

func (r *eventRepo) RecentAnswers(ctx context.Context, limit int) ([]AnswerRow, error) {
	q := `SELECT sequence, timestamp, session_id, round_id, make, model, year, correct, time_ms
	      FROM answer_events
	      ORDER BY sequence DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query recent answers: %w", err)
	}
	defer rows.Close()

	var out []AnswerRow
	for rows.Next() {
		var a AnswerRow
		if err := rows.Scan(&a.Sequence, &a.Timestamp, &a.SessionID, &a.RoundID,
			&a.Make, &a.Model, &a.Year, &a.Correct, &a.TimeMs); err != nil {
			return nil, fmt.Errorf("scan recent answers: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *eventRepo) MakeBreakdown(ctx context.Context) ([]MakeStats, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT make, COUNT(*), COALESCE(SUM(correct), 0)
		 FROM answer_events
		 GROUP BY make
		 ORDER BY COUNT(*) DESC, make ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query make breakdown: %w", err)
	}
	defer rows.Close()

	var out []MakeStats
	for rows.Next() {
		var m MakeStats
		if err := rows.Scan(&m.Make, &m.Rounds, &m.Correct); err != nil {
			return nil, fmt.Errorf("scan make breakdown: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *eventRepo) HardestCars(ctx context.Context, limit int) ([]CarStats, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT make, model, year, COUNT(*) AS n, COALESCE(SUM(correct), 0) AS hits
		 FROM answer_events
		 GROUP BY make, model, year
		 HAVING n >= 2
		 ORDER BY CAST(hits AS REAL) / n ASC, n DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query hardest cars: %w", err)
	}
	defer rows.Close()

	var out []CarStats
	for rows.Next() {
		var c CarStats
		if err := rows.Scan(&c.Make, &c.Model, &c.Year, &c.Rounds, &c.Correct); err != nil {
			return nil, fmt.Errorf("scan hardest cars: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
