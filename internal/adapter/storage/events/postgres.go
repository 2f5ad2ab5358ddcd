package eventstorage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/burenotti/sportstats/internal/adapter/storage"
	"github.com/burenotti/sportstats/internal/adapter/storage/pgutil"
	"github.com/burenotti/sportstats/internal/domain"
	"github.com/burenotti/sportstats/internal/domain/event"
	"github.com/burenotti/sportstats/internal/domain/sport"
	"github.com/leporo/sqlf"
)

type PostgresStorage struct {
	base *pgutil.BasePostgresStorage
}

func NewPostgresStorage(db storage.DBContext) *PostgresStorage {
	return &PostgresStorage{
		base: pgutil.NewBasePostgresStorage(db),
	}
}

func (s *PostgresStorage) Add(ctx context.Context, e *event.Event) error {
	q := sqlf.InsertInto("events").
		Set("event_id", e.EventID).
		Set("name", e.Name).
		Set("venue", e.Venue).
		Set("city", e.City).
		Set("country", e.Country).
		Set("event_date", e.Date).
		Set("sport", string(e.Sport)).
		Set("official", e.Official).
		Set("organizer", e.Organizer).
		Set("capacity", e.Capacity).
		Set("created_at", e.CreatedAt)

	if _, err := q.ExecAndClose(ctx, s.base.DB); err != nil {
		if pgutil.ViolatesConstraint(err, "events_pkey") {
			return event.ErrEventExists
		}
		return storage.InternalError(err)
	}

	s.base.MarkSeen(e)
	return nil
}

func (s *PostgresStorage) get(
	ctx context.Context,
	modify func(stmt *sqlf.Stmt) *sqlf.Stmt,
) (map[string]*event.Event, error) {
	var tmp eventRow

	q := sqlf.From("events e").
		Select("e.event_id").To(&tmp.EventID).
		Select("e.name").To(&tmp.Name).
		Select("e.venue").To(&tmp.Venue).
		Select("e.city").To(&tmp.City).
		Select("e.country").To(&tmp.Country).
		Select("e.event_date").To(&tmp.Date).
		Select("e.sport").To(&tmp.Sport).
		Select("e.official").To(&tmp.Official).
		Select("e.organizer").To(&tmp.Organizer).
		Select("e.capacity").To(&tmp.Capacity).
		Select("e.created_at").To(&tmp.CreatedAt)

	q = modify(q)

	result := make(map[string]*event.Event)

	err := q.QueryAndClose(ctx, s.base.DB, func(rows *sql.Rows) {
		result[tmp.EventID] = tmp.toDomain()
	})

	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return result, nil
	}

	return nil, storage.InternalError(err)
}

func (s *PostgresStorage) GetByID(ctx context.Context, eventID string) (*event.Event, error) {
	result, err := s.get(ctx, func(stmt *sqlf.Stmt) *sqlf.Stmt {
		return stmt.Where("e.event_id = ?", eventID)
	})
	return pgutil.PeekOrErr(result, err, event.ErrEventNotFound)
}

func (s *PostgresStorage) DeleteAll(ctx context.Context) error {
	if _, err := sqlf.DeleteFrom("events").ExecAndClose(ctx, s.base.DB); err != nil {
		return storage.InternalError(err)
	}
	return nil
}

func (s *PostgresStorage) CollectEvents() []domain.Event {
	return s.base.CollectEvents()
}

func (s *PostgresStorage) Close() error {
	s.base.Close()
	return nil
}

type eventRow struct {
	EventID   string
	Name      string
	Venue     string
	City      string
	Country   string
	Date      time.Time
	Sport     string
	Official  bool
	Organizer string
	Capacity  int
	CreatedAt time.Time
}

func (r *eventRow) toDomain() *event.Event {
	return &event.Event{
		EventID:   r.EventID,
		Name:      r.Name,
		Venue:     r.Venue,
		City:      r.City,
		Country:   r.Country,
		Date:      r.Date,
		Sport:     sport.Sport(r.Sport),
		Official:  r.Official,
		Organizer: r.Organizer,
		Capacity:  r.Capacity,
		CreatedAt: r.CreatedAt,
	}
}
