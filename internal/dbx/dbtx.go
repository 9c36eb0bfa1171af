// Package dbx holds the small database plumbing shared by every repository:
// the DBTX interface that lets a repository run against either a plain
// connection or an open transaction, and WithTx, which brackets a function
// in begin/commit/rollback.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the common surface of *sql.DB and *sql.Tx that repositories use.
// Binding repositories to DBTX instead of *sql.DB is what lets a service run
// several of them inside one transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs work inside a transaction. The transaction commits only when
// work returns nil; an error or a panic rolls back, and panics propagate to
// the caller.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, work func(ctx context.Context, tx DBTX) error) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := work(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
