package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/burenotti/sportstats/internal/domain"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/leporo/sqlf"
)

var (
	ErrInternal = errors.New("internal storage error")
)

//go:embed schema.sql
var schema string

type DBContext interface {
	Begin(ctx context.Context) (DBContext, error)
	Commit() error
	Rollback() error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type DB struct {
	*sql.DB
}

// Open connects through the pgx database/sql driver and switches sqlf to
// PostgreSQL placeholders.
func Open(ctx context.Context, dsn string) (*DB, error) {
	sqlf.SetDialect(sqlf.PostgreSQL)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, InternalError(err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, InternalError(err)
	}

	return &DB{DB: db}, nil
}

// EnsureSchema creates the tables when they are missing. It never alters
// existing ones.
func (D *DB) EnsureSchema(ctx context.Context) error {
	if _, err := D.ExecContext(ctx, schema); err != nil {
		return InternalError(err)
	}
	return nil
}

func (D *DB) Commit() error {
	return nil
}

func (D *DB) Rollback() error {
	return nil
}

func (D *DB) Begin(ctx context.Context) (DBContext, error) {
	tx, err := D.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, InternalError(err)
	}
	return &Tx{tx}, nil
}

type Tx struct {
	*sql.Tx
}

func (t *Tx) Begin(ctx context.Context) (DBContext, error) {
	return t, nil
}

func InternalError(err error) error {
	return errors.Join(fmt.Errorf("internal storage error: %w", err), ErrInternal)
}

// EventTracker remembers the aggregates a storage has written so their
// domain events can be collected once the unit of work finishes.
type EventTracker struct {
	seenMu sync.Mutex
	seen   []domain.EventSource
}

func (t *EventTracker) MarkSeen(src domain.EventSource) {
	t.seenMu.Lock()
	t.seen = append(t.seen, src)
	t.seenMu.Unlock()
}

func (t *EventTracker) CollectEvents() []domain.Event {
	t.seenMu.Lock()
	defer t.seenMu.Unlock()

	var events []domain.Event
	for _, src := range t.seen {
		events = append(events, src.PopEvents()...)
	}
	t.seen = nil
	return events
}

func (t *EventTracker) Clear() {
	t.seenMu.Lock()
	t.seen = nil
	t.seenMu.Unlock()
}
