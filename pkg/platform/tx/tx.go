// Package tx carries an open SQL transaction through context so stores join
// it transparently, and provides runners that open one.
package tx

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type ctxKey struct{}

var txKey = ctxKey{}

// WithTx stores a SQL transaction in context for downstream store usage.
func WithTx(ctx context.Context, tx *sqlx.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts a SQL transaction from context if present.
func From(ctx context.Context) (*sqlx.Tx, bool) {
	tx, ok := ctx.Value(txKey).(*sqlx.Tx)
	return tx, ok
}

// Runner executes fn inside a transactional boundary. Stores called with the
// ctx passed to fn participate in that boundary.
type Runner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Execer is the subset of *sqlx.DB and *sqlx.Tx that stores use.
type Execer interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

// Conn returns the transaction in ctx, or db when none is open.
func Conn(ctx context.Context, db *sqlx.DB) Execer {
	if tx, ok := From(ctx); ok {
		return tx
	}
	return db
}
