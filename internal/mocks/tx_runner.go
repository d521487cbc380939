package mocks

import (
	"context"

	"github.com/parceldesk/parceldesk-api/internal/store"
)

// MockTxRunner implements store.TxRunner without a real database. By
// default the function runs immediately with a nil transaction; the
// store mocks ignore WithTx, so that is enough for unit tests.
type MockTxRunner struct {
	RunFn func(ctx context.Context, fn store.TxFn) error
}

var _ store.TxRunner = (*MockTxRunner)(nil)

func (m *MockTxRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	if m.RunFn != nil {
		return m.RunFn(ctx, fn)
	}
	return fn(ctx, nil)
}
