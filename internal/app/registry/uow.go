package registry

import (
	"context"
	"errors"

	"github.com/burenotti/sportstats/internal/adapter/storage"
	athletestorage "github.com/burenotti/sportstats/internal/adapter/storage/athletes"
	eventstorage "github.com/burenotti/sportstats/internal/adapter/storage/events"
	"github.com/burenotti/sportstats/internal/adapter/storage/memory"
	statisticstorage "github.com/burenotti/sportstats/internal/adapter/storage/statistics"
	"github.com/burenotti/sportstats/internal/app/unitofwork"
	"github.com/burenotti/sportstats/internal/domain"
	"github.com/burenotti/sportstats/internal/domain/athlete"
	"github.com/burenotti/sportstats/internal/domain/event"
	"github.com/burenotti/sportstats/internal/domain/statistic"
)

type AthleteStorage interface {
	Add(ctx context.Context, a *athlete.Athlete) error
	GetByID(ctx context.Context, athleteID string) (*athlete.Athlete, error)
	Persist(ctx context.Context, a *athlete.Athlete) error
	DeleteAll(ctx context.Context) error
	CollectEvents() []domain.Event
	Close() error
}

type EventStorage interface {
	Add(ctx context.Context, e *event.Event) error
	GetByID(ctx context.Context, eventID string) (*event.Event, error)
	DeleteAll(ctx context.Context) error
	CollectEvents() []domain.Event
	Close() error
}

type StatisticStorage interface {
	Add(ctx context.Context, s *statistic.Statistic) error
	Find(ctx context.Context, f statistic.Filter) ([]statistic.Entry, error)
	DeleteAll(ctx context.Context) error
	CollectEvents() []domain.Event
	Close() error
}

type Tx interface {
	Commit() error
	Rollback() error
}

type AtomicContext struct {
	ctx              context.Context
	tx               Tx
	AthleteStorage   AthleteStorage
	EventStorage     EventStorage
	StatisticStorage StatisticStorage
}

func (a *AtomicContext) Context() context.Context {
	return a.ctx
}

func (a *AtomicContext) Commit() error {
	return a.tx.Commit()
}

func (a *AtomicContext) Rollback() error {
	return a.tx.Rollback()
}

func (a *AtomicContext) Close() (err error) {
	if closeErr := a.AthleteStorage.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}

	if closeErr := a.EventStorage.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}

	if closeErr := a.StatisticStorage.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}

	if err != nil {
		err = errors.Join(errors.New("failed to close storage"), err)
	}

	return err
}

func (a *AtomicContext) CollectEvents() []domain.Event {
	athleteEvents := a.AthleteStorage.CollectEvents()
	eventEvents := a.EventStorage.CollectEvents()
	statisticEvents := a.StatisticStorage.CollectEvents()

	events := make([]domain.Event, 0, len(athleteEvents)+len(eventEvents)+len(statisticEvents))
	events = append(events, athleteEvents...)
	events = append(events, eventEvents...)
	events = append(events, statisticEvents...)
	return events
}

// NewPostgresContext binds every storage of the unit of work to one SQL
// transaction.
func NewPostgresContext(db *storage.DB) unitofwork.Begin[*AtomicContext] {
	return func(ctx context.Context) (*AtomicContext, error) {
		tx, err := db.Begin(ctx)
		if err != nil {
			return nil, err
		}

		return &AtomicContext{
			ctx:              ctx,
			tx:               tx,
			AthleteStorage:   athletestorage.NewPostgresStorage(tx),
			EventStorage:     eventstorage.NewPostgresStorage(tx),
			StatisticStorage: statisticstorage.NewPostgresStorage(tx),
		}, nil
	}
}

func NewMemoryContext(store *memory.Store) unitofwork.Begin[*AtomicContext] {
	return func(ctx context.Context) (*AtomicContext, error) {
		tx, err := store.Begin(ctx)
		if err != nil {
			return nil, err
		}

		return &AtomicContext{
			ctx:              ctx,
			tx:               tx,
			AthleteStorage:   tx.Athletes(),
			EventStorage:     tx.Events(),
			StatisticStorage: tx.Statistics(),
		}, nil
	}
}
