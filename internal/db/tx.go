package db

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context) error

// TxManager scopes a unit of work: everything fn does through repositories is
// committed together or rolled back together.
type TxManager interface {
	WithTransaction(ctx context.Context, fn TransactionFn) error
}

type txKey struct{}

// ContextWithTx stores tx in ctx for repositories to pick up
func ContextWithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext returns the transaction stored by ContextWithTx
func TxFromContext(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok
}
