package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/cadence/internal/db"
)

// FaultyUoW is a test UoW that injects Err into the Nth ExecContext or the
// Nth QueryContext call of every transaction it opens. Counts start at 1
// and restart per transaction; zero disables that kind of fault.
// QueryRowContext is never failed.
type FaultyUoW struct {
	DB          *sql.DB
	FailOnExec  int32
	FailOnQuery int32
	Err         error

	txs atomic.Int32
}

// Transactions reports how many transactions were opened.
func (u *FaultyUoW) Transactions() int {
	return int(u.txs.Load())
}

func (u *FaultyUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	u.txs.Add(1)
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &faultyTx{DBTX: tx, failExec: u.FailOnExec, failQuery: u.FailOnQuery, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type faultyTx struct {
	db.DBTX
	execs     atomic.Int32
	queries   atomic.Int32
	failExec  int32
	failQuery int32
	err       error
}

func (f *faultyTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if n := f.execs.Add(1); n == f.failExec {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

func (f *faultyTx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if n := f.queries.Add(1); n == f.failQuery {
		return nil, f.err
	}
	return f.DBTX.QueryContext(ctx, query, args...)
}

// FlakyUoW fails the first Failures transactions with Err before delegating
// to UoW.
type FlakyUoW struct {
	UoW      db.UnitOfWork
	Failures int32
	Err      error

	calls atomic.Int32
}

func (u *FlakyUoW) Calls() int {
	return int(u.calls.Load())
}

func (u *FlakyUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	if n := u.calls.Add(1); n <= u.Failures {
		return u.Err
	}
	return u.UoW.WithinTx(ctx, fn)
}
