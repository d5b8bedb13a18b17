package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// eventRepo implements EventRepo backed by raw SQL and the global
// sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO llm_request_events
			(sequence, timestamp, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, request_body, response_body)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UTC(), data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage,
		data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

const llmRequestColumns = `id, sequence, timestamp, provider, model, purpose,
	input_tokens, output_tokens, latency_ms, success, error_message, request_body, response_body`

func scanLLMRequest(row interface{ Scan(...any) error }) (LLMRequestRow, error) {
	var r LLMRequestRow
	err := row.Scan(&r.ID, &r.Sequence, &r.Timestamp, &r.Provider, &r.Model, &r.Purpose,
		&r.InputTokens, &r.OutputTokens, &r.LatencyMs, &r.Success, &r.ErrorMessage,
		&r.RequestBody, &r.ResponseBody)
	return r, err
}

func (r *eventRepo) LLMRequests(ctx context.Context, limit int) ([]LLMRequestRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+llmRequestColumns+` FROM llm_request_events ORDER BY sequence DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query LLM requests: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestRow
	for rows.Next() {
		req, err := scanLLMRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan LLM request: %w", err)
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMRequestByID(ctx context.Context, id int64) (*LLMRequestRow, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+llmRequestColumns+` FROM llm_request_events WHERE id = ?`, id,
	)
	req, err := scanLLMRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query LLM request %d: %w", id, err)
	}
	return &req, nil
}

func (r *eventRepo) LLMUsage(ctx context.Context) ([]LLMUsageStats, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT provider, model, purpose, COUNT(*),
			COALESCE(SUM(success = 0), 0),
			COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0)
		 FROM llm_request_events
		 GROUP BY provider, model, purpose
		 ORDER BY COUNT(*) DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage: %w", err)
	}
	defer rows.Close()

	var out []LLMUsageStats
	for rows.Next() {
		var u LLMUsageStats
		if err := rows.Scan(&u.Provider, &u.Model, &u.Purpose, &u.Requests, &u.Failures, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan LLM usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
