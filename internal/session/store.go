package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/calplan/internal/db"
	"github.com/alexanderramin/calplan/internal/domain"
)

// Store persists session state.
type Store interface {
	Load(ctx context.Context) (*State, error)
	// SaveContext replaces the context and discards the generated batch.
	SaveContext(ctx context.Context, pc *domain.ProfessionalContext) error
	SaveConstraints(ctx context.Context, sc *domain.SchedulingConstraints) error
	SaveBatch(ctx context.Context, b *domain.Batch) error
	Reset(ctx context.Context) error

	RecordRun(ctx context.Context, run Run) error
	RecentRuns(ctx context.Context, limit int) ([]Run, error)
}

// SQLiteStore implements Store on the session_snapshots table.
type SQLiteStore struct {
	db  db.DBTX
	uow db.UnitOfWork
	now func() time.Time
}

// NewSQLiteStore creates a store. uow provides multi-write transactions.
func NewSQLiteStore(conn db.DBTX, uow db.UnitOfWork) *SQLiteStore {
	return &SQLiteStore{db: conn, uow: uow, now: time.Now}
}

// NewSQLiteStoreFromDB is a convenience for the common single-handle case.
func NewSQLiteStoreFromDB(database *sql.DB) *SQLiteStore {
	return NewSQLiteStore(database, db.NewSQLiteUnitOfWork(database))
}

func (s *SQLiteStore) Load(ctx context.Context) (*State, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, payload FROM session_snapshots`)
	if err != nil {
		return nil, fmt.Errorf("querying session snapshots: %w", err)
	}
	defer rows.Close()

	payloads := make(map[string]string)
	for rows.Next() {
		var key, payload string
		if err := rows.Scan(&key, &payload); err != nil {
			return nil, fmt.Errorf("scanning session snapshot: %w", err)
		}
		payloads[key] = payload
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session snapshots: %w", err)
	}

	st := &State{}
	if p, ok := payloads[KeyContext]; ok {
		st.Context = decode[domain.ProfessionalContext](st, KeyContext, p)
	}
	if p, ok := payloads[KeyConstraints]; ok {
		st.Constraints = decode[domain.SchedulingConstraints](st, KeyConstraints, p)
	}
	if p, ok := payloads[KeyBatch]; ok {
		st.Batch = decode[domain.Batch](st, KeyBatch, p)
	}
	return st, nil
}

// decode leaves the field nil and marks it broken when the payload does
// not parse.
func decode[T any](st *State, key, payload string) *T {
	var v T
	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		st.markBroken(key, err)
		return nil
	}
	return &v
}

func (s *SQLiteStore) SaveContext(ctx context.Context, pc *domain.ProfessionalContext) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := s.put(ctx, tx, KeyContext, pc); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM session_snapshots WHERE key = ?`, KeyBatch); err != nil {
			return fmt.Errorf("discarding stale calendar: %w", err)
		}
		return nil
	})
}

func (s *SQLiteStore) SaveConstraints(ctx context.Context, sc *domain.SchedulingConstraints) error {
	return s.put(ctx, s.db, KeyConstraints, sc)
}

func (s *SQLiteStore) SaveBatch(ctx context.Context, b *domain.Batch) error {
	return s.put(ctx, s.db, KeyBatch, b)
}

func (s *SQLiteStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session_snapshots`); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) put(ctx context.Context, q db.DBTX, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	_, err = q.ExecContext(ctx,
		`INSERT INTO session_snapshots (key, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		key, string(payload), s.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}
