package mocks

import (
	"context"

	"github.com/phrazzld/digitalshop-api/internal/store"
)

// MockTransactor runs the function directly with a nil *sql.Tx. Pair it with
// the in-memory stores, whose WithTx ignores the transaction.
type MockTransactor struct {
	RunInTxFn func(ctx context.Context, fn store.TxFn) error

	// Calls counts RunInTx invocations.
	Calls int
}

// RunInTx calls fn once and returns its error.
func (m *MockTransactor) RunInTx(ctx context.Context, fn store.TxFn) error {
	m.Calls++
	if m.RunInTxFn != nil {
		return m.RunInTxFn(ctx, fn)
	}
	return fn(ctx, nil)
}
