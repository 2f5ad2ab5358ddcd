package registry

import (
	"context"
	"log/slog"

	"github.com/burenotti/sportstats/internal/app/unitofwork"
	"github.com/burenotti/sportstats/internal/domain/athlete"
	"github.com/burenotti/sportstats/internal/domain/event"
	"github.com/burenotti/sportstats/internal/domain/statistic"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

type UnitOfWork = unitofwork.UnitOfWork[*AtomicContext]

type Service struct {
	logger *slog.Logger
	clock  clockwork.Clock
	newID  func() string
}

func New(logger *slog.Logger, clock clockwork.Clock) *Service {
	return &Service{
		logger: logger,
		clock:  clock,
		newID:  uuid.NewString,
	}
}

func (s *Service) RegisterAthlete(
	ctx context.Context,
	uow *UnitOfWork,
	p athlete.Params,
) (a *athlete.Athlete, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		a, err = athlete.New(s.newID(), p, s.clock.Now())
		if err != nil {
			return err
		}

		if err := ctx.AthleteStorage.Add(ctx.Context(), a); err != nil {
			return err
		}
		return ctx.Commit()
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("athlete registered", "athlete_id", a.AthleteID, "sport", a.Sport)
	return a, nil
}

func (s *Service) ScheduleEvent(
	ctx context.Context,
	uow *UnitOfWork,
	p event.Params,
) (e *event.Event, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		e, err = event.New(s.newID(), p, s.clock.Now())
		if err != nil {
			return err
		}

		if err := ctx.EventStorage.Add(ctx.Context(), e); err != nil {
			return err
		}
		return ctx.Commit()
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("event scheduled", "event_id", e.EventID, "sport", e.Sport)
	return e, nil
}

// RecordStatistic stores a statistic only when the athlete and the event
// exist and every cross-record rule holds.
func (s *Service) RecordStatistic(
	ctx context.Context,
	uow *UnitOfWork,
	athleteID string,
	eventID string,
	f statistic.Fields,
) (st *statistic.Statistic, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		a, err := ctx.AthleteStorage.GetByID(ctx.Context(), athleteID)
		if err != nil {
			return err
		}

		e, err := ctx.EventStorage.GetByID(ctx.Context(), eventID)
		if err != nil {
			return err
		}

		st, err = statistic.New(s.newID(), a, e, f, s.clock.Now())
		if err != nil {
			return err
		}

		if err := ctx.StatisticStorage.Add(ctx.Context(), st); err != nil {
			return err
		}
		return ctx.Commit()
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("statistic recorded",
		"statistic_id", st.StatisticID,
		"athlete_id", athleteID,
		"event_id", eventID,
	)
	return st, nil
}

func (s *Service) UpdateAthlete(
	ctx context.Context,
	uow *UnitOfWork,
	athleteID string,
	changes athlete.Changes,
) (a *athlete.Athlete, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		a, err = ctx.AthleteStorage.GetByID(ctx.Context(), athleteID)
		if err != nil {
			return err
		}

		if err := a.Update(changes, s.clock.Now()); err != nil {
			return err
		}

		if err := ctx.AthleteStorage.Persist(ctx.Context(), a); err != nil {
			return err
		}
		return ctx.Commit()
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) GetAthlete(
	ctx context.Context,
	uow *UnitOfWork,
	athleteID string,
) (a *athlete.Athlete, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		a, err = ctx.AthleteStorage.GetByID(ctx.Context(), athleteID)
		if err != nil {
			return err
		}
		return ctx.Commit()
	})
	return
}

func (s *Service) GetEvent(
	ctx context.Context,
	uow *UnitOfWork,
	eventID string,
) (e *event.Event, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		e, err = ctx.EventStorage.GetByID(ctx.Context(), eventID)
		if err != nil {
			return err
		}
		return ctx.Commit()
	})
	return
}

// Statistics returns every statistic matching f joined with its athlete and
// event.
func (s *Service) Statistics(
	ctx context.Context,
	uow *UnitOfWork,
	f statistic.Filter,
) (entries []statistic.Entry, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		entries, err = ctx.StatisticStorage.Find(ctx.Context(), f)
		if err != nil {
			return err
		}
		return ctx.Commit()
	})
	return
}

// Reset removes all statistics, athletes and events.
func (s *Service) Reset(ctx context.Context, uow *UnitOfWork) error {
	err := uow.Atomic(ctx, func(ctx *AtomicContext) error {
		if err := ctx.StatisticStorage.DeleteAll(ctx.Context()); err != nil {
			return err
		}
		if err := ctx.AthleteStorage.DeleteAll(ctx.Context()); err != nil {
			return err
		}
		if err := ctx.EventStorage.DeleteAll(ctx.Context()); err != nil {
			return err
		}
		return ctx.Commit()
	})
	if err != nil {
		return err
	}

	s.logger.Info("registry reset")
	return nil
}
