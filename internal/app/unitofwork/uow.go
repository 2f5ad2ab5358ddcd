package unitofwork

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/burenotti/sportstats/internal/domain"
)

var (
	ErrRollback = errors.New("rollback")
)

type AtomicContext interface {
	Context() context.Context
	Commit() error
	Rollback() error
	Close() error
	CollectEvents() []domain.Event
}

type MessageBus interface {
	PublishEvents(events ...domain.Event) error
}

// Begin opens a transaction and returns the atomic context bound to it.
type Begin[T AtomicContext] func(ctx context.Context) (T, error)

type UnitOfWork[T AtomicContext] struct {
	begin  Begin[T]
	msgBus MessageBus
	logger *slog.Logger
}

func New[T AtomicContext](
	begin Begin[T],
	msgBus MessageBus,
	logger *slog.Logger,
) *UnitOfWork[T] {
	return &UnitOfWork[T]{
		begin:  begin,
		msgBus: msgBus,
		logger: logger,
	}
}

// Atomic runs do inside a transaction. do is expected to call Commit on
// success; any error rolls the transaction back. Domain events are published
// only after do succeeds.
func (uow *UnitOfWork[T]) Atomic(
	ctx context.Context,
	do func(T) error,
) (err error) {
	txCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	atomicCtx, err := uow.begin(txCtx)
	if err != nil {
		return stateRollbackError(err)
	}

	defer func() {
		if closeErr := atomicCtx.Close(); closeErr != nil {
			uow.logger.Warn("failed to close atomic context", "error", closeErr)
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			if err := atomicCtx.Rollback(); err != nil {
				uow.logger.Error("failed to rollback transaction", "error", err)
			}
			panic(r)
		}
	}()

	if err := do(atomicCtx); err != nil {
		if err := atomicCtx.Rollback(); err != nil {
			uow.logger.Error("failed to rollback transaction", "error", err)
		}
		return stateRollbackError(err)
	}

	if err := uow.msgBus.PublishEvents(atomicCtx.CollectEvents()...); err != nil {
		uow.logger.Error("failed to publish events", "error", err)
		return err
	}

	return nil
}

func stateRollbackError(err error) error {
	return errors.Join(fmt.Errorf("state rollback: %w", err), ErrRollback)
}
