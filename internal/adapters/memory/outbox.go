package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/rafaelleal24/stockledger/internal/adapters/outbox"
)

// OutboxRepository keeps pending events in insertion order.
type OutboxRepository struct {
	mu      sync.Mutex
	entries []outbox.Entry
	nextID  int
}

func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{nextID: 1}
}

var _ outbox.Repository = (*OutboxRepository)(nil)

func (r *OutboxRepository) Insert(_ context.Context, entry outbox.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = strconv.Itoa(r.nextID)
	r.nextID++
	entry.EventData = append([]byte(nil), entry.EventData...)
	r.entries = append(r.entries, entry)
	return nil
}

func (r *OutboxRepository) FetchPending(_ context.Context, limit int) ([]outbox.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	pending := make([]outbox.Entry, n)
	copy(pending, r.entries[:n])
	return pending, nil
}

func (r *OutboxRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, entry := range r.entries {
		if entry.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

// Len reports how many events are waiting to be relayed.
func (r *OutboxRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
