package memory

import (
	"context"
	"testing"

	"github.com/burenotti/sportstats/internal/domain/athlete"
	"github.com/burenotti/sportstats/internal/domain/event"
	"github.com/burenotti/sportstats/internal/domain/sport"
	"github.com/burenotti/sportstats/internal/domain/statistic"
	"github.com/burenotti/sportstats/internal/testutil/fixture"
	"github.com/stretchr/testify/suite"
)

type StoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *Store

	runner   *athlete.Athlete
	foreign  *athlete.Athlete
	race     *event.Event
	oldRace  *event.Event
	friendly *event.Event
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = New()

	s.runner = fixture.Athlete(s.T(), fixture.AthleteSpec{
		ID: "a-1", Name: "João Silva Santos", CPF: fixture.CPFs[0], Nationality: "Brasil", Sport: sport.Running,
	})
	s.foreign = fixture.Athlete(s.T(), fixture.AthleteSpec{
		ID: "a-2", Name: "Kipchoge Kiptum", CPF: fixture.CPFs[1], Nationality: "Quênia", Sport: sport.Running,
	})
	s.race = fixture.Event(s.T(), fixture.EventSpec{
		ID: "e-1", Name: "Corrida de São Silvestre", Country: "Brasil",
		Date: fixture.Date(2024, 12, 31), Sport: sport.Running, Official: true,
	})
	s.oldRace = fixture.Event(s.T(), fixture.EventSpec{
		ID: "e-2", Name: "Maratona de 2020", Country: "Brasil",
		Date: fixture.Date(2020, 6, 1), Sport: sport.Running, Official: true,
	})
	s.friendly = fixture.Event(s.T(), fixture.EventSpec{
		ID: "e-3", Name: "Corrida Amistosa", Country: "Brasil",
		Date: fixture.Date(2025, 3, 1), Sport: sport.Running, Official: false,
	})

	athletes := s.store.Athletes()
	events := s.store.Events()
	for _, a := range []*athlete.Athlete{s.runner, s.foreign} {
		s.Require().NoError(athletes.Add(s.ctx, a))
	}
	for _, e := range []*event.Event{s.race, s.oldRace, s.friendly} {
		s.Require().NoError(events.Add(s.ctx, e))
	}
}

func (s *StoreSuite) addStatistic(id string, a *athlete.Athlete, e *event.Event, place int) {
	st := fixture.Statistic(s.T(), id, a, e, fixture.RaceFields(place, 15))
	s.Require().NoError(s.store.Statistics().Add(s.ctx, st))
}

func (s *StoreSuite) TestAthleteUniqueness() {
	s.Run("rejects duplicate id", func() {
		dup := fixture.Athlete(s.T(), fixture.AthleteSpec{
			ID: "a-1", Name: "Another Runner", CPF: fixture.CPFs[2], Nationality: "Brasil", Sport: sport.Running,
		})
		s.ErrorIs(s.store.Athletes().Add(s.ctx, dup), athlete.ErrAthleteExists)
	})

	s.Run("rejects duplicate cpf", func() {
		dup := fixture.Athlete(s.T(), fixture.AthleteSpec{
			ID: "a-9", Name: "Another Runner", CPF: fixture.CPFs[0], Nationality: "Brasil", Sport: sport.Running,
		})
		err := s.store.Athletes().Add(s.ctx, dup)
		s.ErrorIs(err, athlete.ErrCPFTaken)
		s.ErrorIs(err, athlete.ErrAthleteExists)
	})

	s.Run("rejects duplicate email", func() {
		p := fixture.AthleteParams(fixture.AthleteSpec{
			ID: "a-9", Name: "Another Runner", CPF: fixture.CPFs[2], Nationality: "Brasil", Sport: sport.Running,
		})
		p.Email = s.runner.Email
		dup, err := athlete.New("a-9", p, fixture.Now)
		s.Require().NoError(err)
		s.ErrorIs(s.store.Athletes().Add(s.ctx, dup), athlete.ErrEmailTaken)
	})
}

func (s *StoreSuite) TestGetReturnsDetachedCopies() {
	got, err := s.store.Athletes().GetByID(s.ctx, "a-1")
	s.Require().NoError(err)
	s.Equal(s.runner.Name, got.Name)

	got.Name = "Mutated Name"
	again, err := s.store.Athletes().GetByID(s.ctx, "a-1")
	s.Require().NoError(err)
	s.Equal(s.runner.Name, again.Name)

	_, err = s.store.Athletes().GetByID(s.ctx, "missing")
	s.ErrorIs(err, athlete.ErrAthleteNotFound)

	_, err = s.store.Events().GetByID(s.ctx, "missing")
	s.ErrorIs(err, event.ErrEventNotFound)
}

func (s *StoreSuite) TestPersist() {
	name := "João Silva"
	s.Require().NoError(s.runner.Update(athlete.Changes{Name: &name}, fixture.Now))
	s.Require().NoError(s.store.Athletes().Persist(s.ctx, s.runner))

	got, err := s.store.Athletes().GetByID(s.ctx, "a-1")
	s.Require().NoError(err)
	s.Equal("João Silva", got.Name)

	ghost := fixture.Athlete(s.T(), fixture.AthleteSpec{
		ID: "ghost", Name: "Ghost Runner", CPF: fixture.CPFs[3], Nationality: "Brasil", Sport: sport.Running,
	})
	s.ErrorIs(s.store.Athletes().Persist(s.ctx, ghost), athlete.ErrAthleteNotFound)
}

func (s *StoreSuite) TestStatisticReferences() {
	ghost := fixture.Athlete(s.T(), fixture.AthleteSpec{
		ID: "ghost", Name: "Ghost Runner", CPF: fixture.CPFs[3], Nationality: "Brasil", Sport: sport.Running,
	})
	st := fixture.Statistic(s.T(), "s-1", ghost, s.race, fixture.RaceFields(1, 15))
	s.ErrorIs(s.store.Statistics().Add(s.ctx, st), athlete.ErrAthleteNotFound)

	ghostRace := fixture.Event(s.T(), fixture.EventSpec{
		ID: "ghost", Name: "Ghost Race", Country: "Brasil", Date: fixture.Date(2024, 1, 1), Sport: sport.Running,
	})
	st = fixture.Statistic(s.T(), "s-2", s.runner, ghostRace, fixture.RaceFields(1, 15))
	s.ErrorIs(s.store.Statistics().Add(s.ctx, st), event.ErrEventNotFound)

	s.addStatistic("s-3", s.runner, s.race, 1)
	st = fixture.Statistic(s.T(), "s-3", s.runner, s.race, fixture.RaceFields(1, 15))
	s.ErrorIs(s.store.Statistics().Add(s.ctx, st), statistic.ErrStatisticExists)
}

func (s *StoreSuite) TestFind() {
	s.addStatistic("s-1", s.foreign, s.race, 1)
	s.addStatistic("s-2", s.runner, s.race, 3)
	s.addStatistic("s-3", s.runner, s.oldRace, 1)
	s.addStatistic("s-4", s.runner, s.friendly, 2)

	stats := s.store.Statistics()

	s.Run("orders by athlete name then event date", func() {
		entries, err := stats.Find(s.ctx, statistic.Filter{})
		s.Require().NoError(err)
		s.Require().Len(entries, 4)

		var ids []string
		for _, e := range entries {
			ids = append(ids, e.Statistic.StatisticID)
		}
		s.Equal([]string{"s-3", "s-2", "s-4", "s-1"}, ids)
		s.Same(entries[0].Athlete, entries[1].Athlete)
	})

	s.Run("filters by date score and official flag", func() {
		entries, err := stats.Find(s.ctx, statistic.Filter{
			Since: fixture.Date(2024, 1, 1),
			Score: fixture.Ptr(1),
		})
		s.Require().NoError(err)
		s.Require().Len(entries, 1)
		s.Equal("s-1", entries[0].Statistic.StatisticID)

		entries, err = stats.Find(s.ctx, statistic.Filter{OfficialOnly: true, AthleteID: "a-1"})
		s.Require().NoError(err)
		s.Len(entries, 2)
	})

	s.Run("filters foreign participants", func() {
		entries, err := stats.Find(s.ctx, statistic.Filter{ForeignOnly: true})
		s.Require().NoError(err)
		s.Require().Len(entries, 1)
		s.Equal("a-2", entries[0].Athlete.AthleteID)
	})
}

func (s *StoreSuite) TestAggregateScore() {
	stats := s.store.Statistics()

	_, ok, err := stats.AggregateScore(s.ctx, statistic.Filter{}, statistic.Min)
	s.Require().NoError(err)
	s.False(ok)

	s.addStatistic("s-1", s.foreign, s.race, 2)
	s.addStatistic("s-2", s.runner, s.race, 5)
	s.addStatistic("s-3", s.runner, s.friendly, 1)

	best, ok, err := stats.AggregateScore(s.ctx, statistic.Filter{OfficialOnly: true}, statistic.Min)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(2, best)

	best, ok, err = stats.AggregateScore(s.ctx, statistic.Filter{}, statistic.Max)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(5, best)
}

func (s *StoreSuite) TestDeleteAllCascades() {
	s.addStatistic("s-1", s.runner, s.race, 1)

	s.Require().NoError(s.store.Events().DeleteAll(s.ctx))

	entries, err := s.store.Statistics().Find(s.ctx, statistic.Filter{})
	s.Require().NoError(err)
	s.Empty(entries)

	s.Require().NoError(s.store.Athletes().DeleteAll(s.ctx))
	_, err = s.store.Athletes().GetByID(s.ctx, "a-1")
	s.ErrorIs(err, athlete.ErrAthleteNotFound)
}

func (s *StoreSuite) TestRollbackUndoesOwnWrites() {
	tx, err := s.store.Begin(s.ctx)
	s.Require().NoError(err)

	st := fixture.Statistic(s.T(), "s-1", s.runner, s.race, fixture.RaceFields(1, 15))
	s.Require().NoError(tx.Statistics().Add(s.ctx, st))
	s.Require().NoError(tx.Athletes().DeleteAll(s.ctx))

	s.Require().NoError(tx.Rollback())
	s.ErrorIs(tx.Commit(), ErrTxDone)

	_, err = s.store.Athletes().GetByID(s.ctx, "a-1")
	s.Require().NoError(err)
	_, err = s.store.Athletes().GetByID(s.ctx, "a-2")
	s.Require().NoError(err)

	entries, err := s.store.Statistics().Find(s.ctx, statistic.Filter{})
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *StoreSuite) TestRollbackKeepsOtherCommittedWrites() {
	first, err := s.store.Begin(s.ctx)
	s.Require().NoError(err)
	second, err := s.store.Begin(s.ctx)
	s.Require().NoError(err)

	mine := fixture.Statistic(s.T(), "s-1", s.runner, s.race, fixture.RaceFields(1, 15))
	s.Require().NoError(first.Statistics().Add(s.ctx, mine))

	theirs := fixture.Statistic(s.T(), "s-2", s.foreign, s.race, fixture.RaceFields(2, 15))
	s.Require().NoError(second.Statistics().Add(s.ctx, theirs))
	s.Require().NoError(second.Commit())

	s.Require().NoError(first.Rollback())

	entries, err := s.store.Statistics().Find(s.ctx, statistic.Filter{})
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("s-2", entries[0].Statistic.StatisticID)
}

func (s *StoreSuite) TestCommitKeepsWrites() {
	tx, err := s.store.Begin(s.ctx)
	s.Require().NoError(err)

	st := fixture.Statistic(s.T(), "s-1", s.runner, s.race, fixture.RaceFields(1, 15))
	s.Require().NoError(tx.Statistics().Add(s.ctx, st))
	s.Require().NoError(tx.Commit())
	s.ErrorIs(tx.Rollback(), ErrTxDone)

	entries, err := s.store.Statistics().Find(s.ctx, statistic.Filter{})
	s.Require().NoError(err)
	s.Len(entries, 1)
}

func (s *StoreSuite) TestCollectEvents() {
	fresh := New()
	athletes := fresh.Athletes()

	a := fixture.Athlete(s.T(), fixture.AthleteSpec{
		ID: "a-1", Name: "João Silva Santos", CPF: fixture.CPFs[0], Nationality: "Brasil", Sport: sport.Running,
	})
	s.Require().NoError(athletes.Add(s.ctx, a))

	events := athletes.CollectEvents()
	s.Require().Len(events, 1)
	s.Equal(athlete.EventRegistered, events[0].Type())
	s.Empty(athletes.CollectEvents())
}

func (s *StoreSuite) TestCanceledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.store.Begin(ctx)
	s.ErrorIs(err, context.Canceled)

	_, err = s.store.Statistics().Find(ctx, statistic.Filter{})
	s.ErrorIs(err, context.Canceled)
}
