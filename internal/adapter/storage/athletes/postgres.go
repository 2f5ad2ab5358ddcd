package athletestorage

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
	"github.com/burenotti/sportstats/internal/domain/sport"
	"github.com/leporo/sqlf"
	"github.com/r3labs/diff"
)

type PostgresStorage struct {
	base *pgutil.BasePostgresStorage
}

func NewPostgresStorage(db storage.DBContext) *PostgresStorage {
	return &PostgresStorage{
		base: pgutil.NewBasePostgresStorage(db),
	}
}

func (s *PostgresStorage) Add(ctx context.Context, a *athlete.Athlete) error {
	q := sqlf.InsertInto("athletes").
		Set("athlete_id", a.AthleteID).
		Set("name", a.Name).
		Set("cpf", a.CPF).
		Set("email", a.Email).
		Set("birth_date", a.BirthDate).
		Set("nationality", a.Nationality).
		Set("height", a.Height).
		Set("weight", a.Weight).
		Set("sport", string(a.Sport)).
		Set("active", a.Active).
		Set("created_at", a.CreatedAt).
		Set("updated_at", a.UpdatedAt)

	if _, err := q.ExecAndClose(ctx, s.base.DB); err != nil {
		switch {
		case pgutil.ViolatesConstraint(err, "athletes_pkey"):
			return athlete.ErrAthleteExists
		case pgutil.ViolatesConstraint(err, "athletes_cpf_key"):
			return athlete.ErrCPFTaken
		case pgutil.ViolatesConstraint(err, "athletes_email_key"):
			return athlete.ErrEmailTaken
		}
		return storage.InternalError(err)
	}

	s.base.MarkSeen(a)
	return nil
}

func (s *PostgresStorage) get(
	ctx context.Context,
	modify func(stmt *sqlf.Stmt) *sqlf.Stmt,
) (map[string]*athlete.Athlete, error) {
	var tmp athleteRow

	q := sqlf.From("athletes a").
		Select("a.athlete_id").To(&tmp.AthleteID).
		Select("a.name").To(&tmp.Name).
		Select("a.cpf").To(&tmp.CPF).
		Select("a.email").To(&tmp.Email).
		Select("a.birth_date").To(&tmp.BirthDate).
		Select("a.nationality").To(&tmp.Nationality).
		Select("a.height").To(&tmp.Height).
		Select("a.weight").To(&tmp.Weight).
		Select("a.sport").To(&tmp.Sport).
		Select("a.active").To(&tmp.Active).
		Select("a.created_at").To(&tmp.CreatedAt).
		Select("a.updated_at").To(&tmp.UpdatedAt)

	q = modify(q)

	result := make(map[string]*athlete.Athlete)

	err := q.QueryAndClose(ctx, s.base.DB, func(rows *sql.Rows) {
		result[tmp.AthleteID] = tmp.toDomain()
	})

	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return result, nil
	}

	return nil, storage.InternalError(err)
}

func (s *PostgresStorage) GetByID(ctx context.Context, athleteID string) (*athlete.Athlete, error) {
	result, err := s.get(ctx, func(stmt *sqlf.Stmt) *sqlf.Stmt {
		return stmt.Where("a.athlete_id = ?", athleteID)
	})
	return pgutil.PeekOrErr(result, err, athlete.ErrAthleteNotFound)
}

// Persist writes only the columns that differ from the stored row.
func (s *PostgresStorage) Persist(ctx context.Context, a *athlete.Athlete) error {
	dbState, err := s.GetByID(ctx, a.AthleteID)
	if err != nil {
		return err
	}

	changes, err := diff.Diff(dbState, a)
	if err != nil {
		return storage.InternalError(err)
	}
	if len(changes) == 0 {
		s.base.MarkSeen(a)
		return nil
	}

	q := sqlf.Update("athletes").Where("athlete_id = ?", a.AthleteID)
	q = pgutil.MakeUpdateQuery(q, changes).Set("updated_at", a.UpdatedAt)

	res, err := q.ExecAndClose(ctx, s.base.DB)
	if err := pgutil.AssertUpdated(res, err, athlete.ErrAthleteNotFound); err != nil {
		return fmt.Errorf("can't persist athlete: %w", err)
	}

	s.base.MarkSeen(a)
	return nil
}

func (s *PostgresStorage) DeleteAll(ctx context.Context) error {
	if _, err := sqlf.DeleteFrom("athletes").ExecAndClose(ctx, s.base.DB); err != nil {
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

type athleteRow struct {
	AthleteID   string
	Name        string
	CPF         string
	Email       string
	BirthDate   time.Time
	Nationality string
	Height      float64
	Weight      float64
	Sport       string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r *athleteRow) toDomain() *athlete.Athlete {
	return &athlete.Athlete{
		AthleteID:   r.AthleteID,
		Name:        r.Name,
		CPF:         r.CPF,
		Email:       r.Email,
		BirthDate:   r.BirthDate,
		Nationality: r.Nationality,
		Height:      r.Height,
		Weight:      r.Weight,
		Sport:       sport.Sport(r.Sport),
		Active:      r.Active,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
