package port

import (
	"context"

	"github.com/rafaelleal24/stockledger/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// EventSink receives ledger events after the state change they describe has been applied.
type EventSink interface {
	Record(ctx context.Context, event domain.Event) error
}
