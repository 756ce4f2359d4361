package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rafaelleal24/stockledger/internal/core/domain"
	"github.com/rafaelleal24/stockledger/internal/core/port"
)

type Entry struct {
	ID         string
	EventName  string
	EntityName string
	EventData  []byte
}

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
type Repository interface {
	Insert(ctx context.Context, entry Entry) error
	FetchPending(ctx context.Context, limit int) ([]Entry, error)
	Delete(ctx context.Context, id string) error
}

// Recorder stores ledger events in the outbox until the Handler relays them.
type Recorder struct {
	outbox Repository
}

func NewRecorder(outbox Repository) *Recorder {
	return &Recorder{outbox: outbox}
}

var _ port.EventSink = (*Recorder)(nil)

func (r *Recorder) Record(ctx context.Context, event domain.Event) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.GetName(), err)
	}

	return r.outbox.Insert(ctx, Entry{
		EventName:  event.GetName(),
		EntityName: event.GetEntityName(),
		EventData:  eventData,
	})
}
