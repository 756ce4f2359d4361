package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rafaelleal24/stockledger/internal/core/domain"
	"github.com/rafaelleal24/stockledger/internal/core/logger"
	"github.com/rafaelleal24/stockledger/internal/core/port"
)

// EventObserver is notified of every recorded ledger event.
type EventObserver func(ctx context.Context, event domain.Event)

type subscription struct {
	id       int
	observer EventObserver
}

// EventFanout forwards events to durable sinks (the outbox) and then to in-process observers.
type EventFanout struct {
	mu            sync.RWMutex
	sinks         []port.EventSink
	subscriptions []subscription
	nextID        int
}

func NewEventFanout(sinks ...port.EventSink) *EventFanout {
	return &EventFanout{sinks: sinks}
}

var _ port.EventSink = (*EventFanout)(nil)

// Subscribe registers an observer and returns the function that removes it.
func (f *EventFanout) Subscribe(observer EventObserver) func() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	id := f.nextID
	f.subscriptions = append(f.subscriptions, subscription{id: id, observer: observer})

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, s := range f.subscriptions {
			if s.id == id {
				f.subscriptions = append(f.subscriptions[:i], f.subscriptions[i+1:]...)
				return
			}
		}
	}
}

func (f *EventFanout) Record(ctx context.Context, event domain.Event) error {
	f.mu.RLock()
	sinks := f.sinks
	subscriptions := append([]subscription(nil), f.subscriptions...)
	f.mu.RUnlock()

	var errs []error
	for _, sink := range sinks {
		if err := sink.Record(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	for _, s := range subscriptions {
		s.observer(ctx, event)
	}

	return errors.Join(errs...)
}

// recordEvent never fails the caller: the state change it describes is already applied.
func recordEvent(ctx context.Context, events port.EventSink, event domain.Event) {
	if events == nil {
		return
	}
	if err := events.Record(ctx, event); err != nil {
		logger.Error(ctx, "event: record failed", err, map[string]any{
			"event_name":  event.GetName(),
			"entity_name": event.GetEntityName(),
		})
	}
}
