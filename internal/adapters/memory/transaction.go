package memory

import (
	"context"
	"sync"

	"github.com/rafaelleal24/stockledger/internal/core/port"
)

type txKey struct{}

// TransactionManager serialises units of work with a single mutex. Nested
// calls on the same context run inline instead of deadlocking.
type TransactionManager struct {
	mu sync.Mutex
}

func NewTransactionManager() port.TransactionManager {
	return &TransactionManager{}
}

func (tm *TransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	return fn(context.WithValue(ctx, txKey{}, true))
}
