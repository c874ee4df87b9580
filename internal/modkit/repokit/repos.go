// Package repokit carries the shared plumbing repository implementations use
package repokit

import (
	"context"

	"prospector/internal/platform/store"
)

// Queryer is the minimal read/write surface a SQL repo needs
type Queryer = store.RowQuerier

// RowQuerier aliases Queryer for callers naming it that way
type RowQuerier = store.RowQuerier

// TxRunner runs a function inside a transaction
type TxRunner = store.TxRunner

type (
	// Rows is a query result set
	Rows = store.Rows

	// Row is a single-row result
	Row = store.Row

	// CommandTag reports the outcome of a write
	CommandTag = store.CommandTag
)

// WithTx runs fn under tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}

// PG passes a RowQuerier through without touching a driver import
func PG(_ context.Context, q store.RowQuerier) store.RowQuerier { return q }

// TX passes a TxRunner through the same way
func TX(_ context.Context, tx store.TxRunner) store.TxRunner { return tx }
