// Package memory keeps athletes, events and statistics in process memory.
// It mirrors the PostgreSQL storages, including unique and foreign key
// checks, and is meant for tests and the demo driver.
package memory

import (
	"context"
	"errors"
	"sync"
)

var ErrTxDone = errors.New("transaction already finished")

type state struct {
	athletes   map[string]athleteRecord
	events     map[string]eventRecord
	statistics map[string]statisticRecord
}

// Store keeps one shared state. Storages taken from a Tx record what they
// overwrite so a rollback restores only those rows.
type Store struct {
	mu    sync.RWMutex
	state state
}

func New() *Store {
	return &Store{
		state: state{
			athletes:   make(map[string]athleteRecord),
			events:     make(map[string]eventRecord),
			statistics: make(map[string]statisticRecord),
		},
	}
}

type prior[R any] struct {
	record R
	ok     bool
}

// undoLog keeps the value a key had before the first write of a
// transaction.
type undoLog[R any] map[string]prior[R]

func (l undoLog[R]) remember(m map[string]R, key string) {
	if _, seen := l[key]; seen {
		return
	}
	r, ok := m[key]
	l[key] = prior[R]{record: r, ok: ok}
}

func (l undoLog[R]) rememberAll(m map[string]R) {
	for key := range m {
		l.remember(m, key)
	}
}

func (l undoLog[R]) restore(m map[string]R) {
	for key, p := range l {
		if p.ok {
			m[key] = p.record
		} else {
			delete(m, key)
		}
	}
}

// Tx undoes the writes made through its own storages when rolled back.
// Writes are visible to other readers immediately. Undo logs are guarded by
// the store mutex.
type Tx struct {
	store      *Store
	athletes   undoLog[athleteRecord]
	events     undoLog[eventRecord]
	statistics undoLog[statisticRecord]

	mu   sync.Mutex
	done bool
}

func (s *Store) Begin(ctx context.Context) (*Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Tx{
		store:      s,
		athletes:   make(undoLog[athleteRecord]),
		events:     make(undoLog[eventRecord]),
		statistics: make(undoLog[statisticRecord]),
	}, nil
}

func (t *Tx) finish() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return ErrTxDone
	}
	t.done = true
	return nil
}

func (t *Tx) Commit() error {
	return t.finish()
}

func (t *Tx) Rollback() error {
	if err := t.finish(); err != nil {
		return err
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	t.athletes.restore(t.store.state.athletes)
	t.events.restore(t.store.state.events)
	t.statistics.restore(t.store.state.statistics)
	return nil
}

// The touch helpers run with the store mutex held. A nil Tx records nothing.

func (t *Tx) touchAthlete(id string) {
	if t != nil {
		t.athletes.remember(t.store.state.athletes, id)
	}
}

func (t *Tx) touchEvent(id string) {
	if t != nil {
		t.events.remember(t.store.state.events, id)
	}
}

func (t *Tx) touchStatistic(id string) {
	if t != nil {
		t.statistics.remember(t.store.state.statistics, id)
	}
}

func (t *Tx) touchAll(athletes, events, statistics bool) {
	if t == nil {
		return
	}
	if athletes {
		t.athletes.rememberAll(t.store.state.athletes)
	}
	if events {
		t.events.rememberAll(t.store.state.events)
	}
	if statistics {
		t.statistics.rememberAll(t.store.state.statistics)
	}
}

func (t *Tx) Athletes() *AthleteStorage {
	return &AthleteStorage{store: t.store, tx: t}
}

func (t *Tx) Events() *EventStorage {
	return &EventStorage{store: t.store, tx: t}
}

func (t *Tx) Statistics() *StatisticStorage {
	return &StatisticStorage{store: t.store, tx: t}
}

func (s *Store) Athletes() *AthleteStorage {
	return &AthleteStorage{store: s}
}

func (s *Store) Events() *EventStorage {
	return &EventStorage{store: s}
}

func (s *Store) Statistics() *StatisticStorage {
	return &StatisticStorage{store: s}
}
