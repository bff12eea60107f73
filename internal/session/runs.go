package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// runTimeLayout is fixed-width so ORDER BY on the text column is
// chronological.
const runTimeLayout = "2006-01-02T15:04:05.000000000Z"

// Run is one recorded generation attempt.
type Run struct {
	ID         string
	Step       string
	StartedAt  time.Time
	DurationMs int64
	Success    bool
	Error      string
}

func (s *SQLiteStore) RecordRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO generation_runs (id, step, started_at, duration_ms, success, error)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Step, run.StartedAt.UTC().Format(runTimeLayout), run.DurationMs, run.Success, run.Error,
	)
	if err != nil {
		return fmt.Errorf("recording generation run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *SQLiteStore) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, step, started_at, duration_ms, success, error
		 FROM generation_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying generation runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started string
		if err := rows.Scan(&r.ID, &r.Step, &started, &r.DurationMs, &r.Success, &r.Error); err != nil {
			return nil, fmt.Errorf("scanning generation run: %w", err)
		}
		r.StartedAt, err = time.Parse(runTimeLayout, started)
		if err != nil {
			return nil, fmt.Errorf("parsing run timestamp: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
