package memory

import (
	"context"

	"github.com/burenotti/sportstats/internal/adapter/storage"
	"github.com/burenotti/sportstats/internal/domain"
	"github.com/burenotti/sportstats/internal/domain/event"
)

type EventStorage struct {
	storage.EventTracker
	store *Store
	tx    *Tx
}

func (s *EventStorage) Add(ctx context.Context, e *event.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.state.events[e.EventID]; ok {
		return event.ErrEventExists
	}

	s.tx.touchEvent(e.EventID)
	s.store.state.events[e.EventID] = newEventRecord(e)
	s.MarkSeen(e)
	return nil
}

func (s *EventStorage) GetByID(ctx context.Context, eventID string) (*event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	r, ok := s.store.state.events[eventID]
	if !ok {
		return nil, event.ErrEventNotFound
	}
	return r.toDomain(), nil
}

// DeleteAll also drops the statistics of the removed events.
func (s *EventStorage) DeleteAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	s.tx.touchAll(false, true, true)
	clear(s.store.state.events)
	clear(s.store.state.statistics)
	return nil
}

func (s *EventStorage) CollectEvents() []domain.Event {
	return s.EventTracker.CollectEvents()
}

func (s *EventStorage) Close() error {
	s.Clear()
	return nil
}
