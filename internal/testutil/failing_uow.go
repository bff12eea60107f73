package testutil

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/calplan/internal/db"
)

// FailOnNthExecUoW is a UnitOfWork whose transactions fail the Nth
// ExecContext call (1-based) with Err. Reads pass through. It lets store
// tests prove that a multi-write save is rolled back as a whole.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingTx{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

type failingTx struct {
	db.DBTX
	execs  int
	failOn int
	err    error
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.execs++
	if f.execs == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
