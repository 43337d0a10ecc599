package store

import (
	"context"
	"database/sql"
)

// DBTX is the common subset of *sql.DB and *sql.Tx the stores execute
// queries against. A store built on a plain connection and the same store
// handed a transaction via WithTx run identical code paths.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
