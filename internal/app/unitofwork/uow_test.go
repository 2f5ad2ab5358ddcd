package unitofwork

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/burenotti/sportstats/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct{}

func (testEvent) Type() string           { return "test.happened" }
func (testEvent) PublishedAt() time.Time { return time.Time{} }

type fakeContext struct {
	ctx        context.Context
	committed  bool
	rolledBack bool
	closed     bool
	events     []domain.Event
}

func (f *fakeContext) Context() context.Context { return f.ctx }
func (f *fakeContext) Commit() error            { f.committed = true; return nil }
func (f *fakeContext) Rollback() error          { f.rolledBack = true; return nil }
func (f *fakeContext) Close() error             { f.closed = true; return nil }
func (f *fakeContext) CollectEvents() []domain.Event {
	events := f.events
	f.events = nil
	return events
}

type recordingBus struct {
	published []domain.Event
	err       error
}

func (b *recordingBus) PublishEvents(events ...domain.Event) error {
	b.published = append(b.published, events...)
	return b.err
}

func newUoW(fc *fakeContext, bus MessageBus) *UnitOfWork[*fakeContext] {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New[*fakeContext](func(ctx context.Context) (*fakeContext, error) {
		fc.ctx = ctx
		return fc, nil
	}, bus, logger)
}

func TestAtomicCommitPublishesEvents(t *testing.T) {
	fc := &fakeContext{events: []domain.Event{testEvent{}}}
	bus := &recordingBus{}

	err := newUoW(fc, bus).Atomic(context.Background(), func(c *fakeContext) error {
		require.NotNil(t, c.Context())
		return c.Commit()
	})

	require.NoError(t, err)
	assert.True(t, fc.committed)
	assert.False(t, fc.rolledBack)
	assert.True(t, fc.closed)
	assert.Len(t, bus.published, 1)
}

func TestAtomicRollsBackOnError(t *testing.T) {
	fc := &fakeContext{events: []domain.Event{testEvent{}}}
	bus := &recordingBus{}
	boom := errors.New("boom")

	err := newUoW(fc, bus).Atomic(context.Background(), func(c *fakeContext) error {
		return boom
	})

	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, err, ErrRollback)
	assert.True(t, fc.rolledBack)
	assert.False(t, fc.committed)
	assert.Empty(t, bus.published)
}

func TestAtomicRollsBackOnPanic(t *testing.T) {
	fc := &fakeContext{}

	assert.PanicsWithValue(t, "kaboom", func() {
		_ = newUoW(fc, &recordingBus{}).Atomic(context.Background(), func(c *fakeContext) error {
			panic("kaboom")
		})
	})
	assert.True(t, fc.rolledBack)
	assert.True(t, fc.closed)
}

func TestAtomicBeginFailure(t *testing.T) {
	boom := errors.New("no connection")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uow := New[*fakeContext](func(ctx context.Context) (*fakeContext, error) {
		return nil, boom
	}, &recordingBus{}, logger)

	called := false
	err := uow.Atomic(context.Background(), func(c *fakeContext) error {
		called = true
		return nil
	})

	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, err, ErrRollback)
	assert.False(t, called)
}

func TestAtomicReportsPublishFailure(t *testing.T) {
	fc := &fakeContext{events: []domain.Event{testEvent{}}}
	busErr := errors.New("bus down")

	err := newUoW(fc, &recordingBus{err: busErr}).Atomic(context.Background(), func(c *fakeContext) error {
		return c.Commit()
	})

	require.ErrorIs(t, err, busErr)
	assert.True(t, fc.committed)
}
