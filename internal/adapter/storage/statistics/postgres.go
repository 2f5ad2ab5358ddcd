package statisticstorage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/burenotti/sportstats/internal/adapter/storage"
	"github.com/burenotti/sportstats/internal/adapter/storage/pgutil"
	"github.com/burenotti/sportstats/internal/domain"
	"github.com/burenotti/sportstats/internal/domain/athlete"
	"github.com/burenotti/sportstats/internal/domain/event"
	"github.com/burenotti/sportstats/internal/domain/rules"
	"github.com/burenotti/sportstats/internal/domain/sport"
	"github.com/burenotti/sportstats/internal/domain/statistic"
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

func (s *PostgresStorage) Add(ctx context.Context, st *statistic.Statistic) error {
	q := sqlf.InsertInto("statistics").
		Set("statistic_id", st.StatisticID).
		Set("athlete_id", st.AthleteID).
		Set("event_id", st.EventID).
		Set("score", st.Score).
		Set("assists", st.Assists).
		Set("fouls", st.Fouls).
		Set("cards", st.Cards).
		Set("minutes_played", st.MinutesPlayed).
		Set("distance", st.Distance).
		Set("notes", st.Notes).
		Set("created_at", st.CreatedAt)

	if _, err := q.ExecAndClose(ctx, s.base.DB); err != nil {
		switch {
		case pgutil.ViolatesConstraint(err, "statistics_pkey"):
			return statistic.ErrStatisticExists
		case pgutil.ViolatesConstraint(err, "statistics_athlete_id_fkey"):
			return athlete.ErrAthleteNotFound
		case pgutil.ViolatesConstraint(err, "statistics_event_id_fkey"):
			return event.ErrEventNotFound
		}
		return storage.InternalError(err)
	}

	s.base.MarkSeen(st)
	return nil
}

// Find returns the matching statistics ordered by athlete name and event
// date. Entries of the same athlete or event share one pointer.
func (s *PostgresStorage) Find(ctx context.Context, f statistic.Filter) ([]statistic.Entry, error) {
	var tmp entryRow

	q := sqlf.From("statistics s").
		Select("s.statistic_id").To(&tmp.StatisticID).
		Select("s.score").To(&tmp.Score).
		Select("s.assists").To(&tmp.Assists).
		Select("s.fouls").To(&tmp.Fouls).
		Select("s.cards").To(&tmp.Cards).
		Select("s.minutes_played").To(&tmp.MinutesPlayed).
		Select("s.distance").To(&tmp.Distance).
		Select("s.notes").To(&tmp.Notes).
		Select("s.created_at").To(&tmp.CreatedAt).
		Select("a.athlete_id").To(&tmp.AthleteID).
		Select("a.name").To(&tmp.AthleteName).
		Select("a.cpf").To(&tmp.CPF).
		Select("a.email").To(&tmp.Email).
		Select("a.birth_date").To(&tmp.BirthDate).
		Select("a.nationality").To(&tmp.Nationality).
		Select("a.height").To(&tmp.Height).
		Select("a.weight").To(&tmp.Weight).
		Select("a.sport").To(&tmp.AthleteSport).
		Select("a.active").To(&tmp.Active).
		Select("a.created_at").To(&tmp.AthleteCreatedAt).
		Select("a.updated_at").To(&tmp.AthleteUpdatedAt).
		Select("e.event_id").To(&tmp.EventID).
		Select("e.name").To(&tmp.EventName).
		Select("e.venue").To(&tmp.Venue).
		Select("e.city").To(&tmp.City).
		Select("e.country").To(&tmp.Country).
		Select("e.event_date").To(&tmp.EventDate).
		Select("e.sport").To(&tmp.EventSport).
		Select("e.official").To(&tmp.Official).
		Select("e.organizer").To(&tmp.Organizer).
		Select("e.capacity").To(&tmp.Capacity).
		Select("e.created_at").To(&tmp.EventCreatedAt)

	q = joinAndFilter(q, f).OrderBy("a.name", "a.athlete_id", "e.event_date", "s.created_at")

	athletes := make(map[string]*athlete.Athlete)
	events := make(map[string]*event.Event)
	var entries []statistic.Entry

	err := q.QueryAndClose(ctx, s.base.DB, func(rows *sql.Rows) {
		a, ok := athletes[tmp.AthleteID]
		if !ok {
			a = tmp.athlete()
			athletes[tmp.AthleteID] = a
		}
		e, ok := events[tmp.EventID]
		if !ok {
			e = tmp.event()
			events[tmp.EventID] = e
		}
		entries = append(entries, statistic.Entry{
			Statistic: tmp.statistic(),
			Athlete:   a,
			Event:     e,
		})
	})

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, storage.InternalError(err)
	}

	return entries, nil
}

// AggregateScore reduces the scores of the matching statistics. ok is false
// when no matching statistic has a score.
func (s *PostgresStorage) AggregateScore(
	ctx context.Context,
	f statistic.Filter,
	agg statistic.Aggregation,
) (score int, ok bool, err error) {
	var best sql.NullInt64

	q := sqlf.From("statistics s").
		Select(fmt.Sprintf("%s(s.score)", agg)).To(&best)
	q = joinAndFilter(q, f)

	if err := q.QueryRowAndClose(ctx, s.base.DB); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, false, storage.InternalError(err)
	}

	if !best.Valid {
		return 0, false, nil
	}
	return int(best.Int64), true, nil
}

func (s *PostgresStorage) DeleteAll(ctx context.Context) error {
	if _, err := sqlf.DeleteFrom("statistics").ExecAndClose(ctx, s.base.DB); err != nil {
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

func joinAndFilter(q *sqlf.Stmt, f statistic.Filter) *sqlf.Stmt {
	q = q.Join("athletes a", "a.athlete_id = s.athlete_id").
		Join("events e", "e.event_id = s.event_id")

	if f.AthleteID != "" {
		q = q.Where("s.athlete_id = ?", f.AthleteID)
	}
	if f.EventID != "" {
		q = q.Where("s.event_id = ?", f.EventID)
	}
	if f.Sport != "" {
		q = q.Where("a.sport = ?", string(f.Sport))
	}
	if !f.Since.IsZero() {
		q = q.Where("e.event_date >= ?::date", rules.Day(f.Since).Format(time.DateOnly))
	}
	if f.OfficialOnly {
		q = q.Where("e.official")
	}
	if f.Score != nil {
		q = q.Where("s.score = ?", *f.Score)
	}
	if f.ForeignOnly {
		q = q.Where("lower(trim(a.nationality)) <> lower(trim(e.country))")
	}
	return q
}

type entryRow struct {
	StatisticID   string
	Score         *int
	Assists       *int
	Fouls         *int
	Cards         *int
	MinutesPlayed *int
	Distance      *float64
	Notes         string
	CreatedAt     time.Time

	AthleteID        string
	AthleteName      string
	CPF              string
	Email            string
	BirthDate        time.Time
	Nationality      string
	Height           float64
	Weight           float64
	AthleteSport     string
	Active           bool
	AthleteCreatedAt time.Time
	AthleteUpdatedAt time.Time

	EventID        string
	EventName      string
	Venue          string
	City           string
	Country        string
	EventDate      time.Time
	EventSport     string
	Official       bool
	Organizer      string
	Capacity       int
	EventCreatedAt time.Time
}

// statistic copies the nullable columns, since tmp is reused for every row.
func (r *entryRow) statistic() *statistic.Statistic {
	return &statistic.Statistic{
		StatisticID: r.StatisticID,
		AthleteID:   r.AthleteID,
		EventID:     r.EventID,
		Fields: statistic.Fields{
			Score:         clone(r.Score),
			Assists:       clone(r.Assists),
			Fouls:         clone(r.Fouls),
			Cards:         clone(r.Cards),
			MinutesPlayed: clone(r.MinutesPlayed),
			Distance:      clone(r.Distance),
			Notes:         r.Notes,
		},
		CreatedAt: r.CreatedAt,
	}
}

func (r *entryRow) athlete() *athlete.Athlete {
	return &athlete.Athlete{
		AthleteID:   r.AthleteID,
		Name:        r.AthleteName,
		CPF:         r.CPF,
		Email:       r.Email,
		BirthDate:   r.BirthDate,
		Nationality: r.Nationality,
		Height:      r.Height,
		Weight:      r.Weight,
		Sport:       sport.Sport(r.AthleteSport),
		Active:      r.Active,
		CreatedAt:   r.AthleteCreatedAt,
		UpdatedAt:   r.AthleteUpdatedAt,
	}
}

func (r *entryRow) event() *event.Event {
	return &event.Event{
		EventID:   r.EventID,
		Name:      r.EventName,
		Venue:     r.Venue,
		City:      r.City,
		Country:   r.Country,
		Date:      r.EventDate,
		Sport:     sport.Sport(r.EventSport),
		Official:  r.Official,
		Organizer: r.Organizer,
		Capacity:  r.Capacity,
		CreatedAt: r.EventCreatedAt,
	}
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
