package athletequery

//go:generate mockgen -source=queries.go -destination=mocks/mocks.go -package=mocks StatisticFinder

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/burenotti/sportstats/internal/app/athletequery/mocks"
	"github.com/burenotti/sportstats/internal/domain"
	"github.com/burenotti/sportstats/internal/domain/athlete"
	"github.com/burenotti/sportstats/internal/domain/event"
	"github.com/burenotti/sportstats/internal/domain/sport"
	"github.com/burenotti/sportstats/internal/domain/statistic"
	"github.com/burenotti/sportstats/internal/testutil/fixture"
)

type QueriesSuite struct {
	suite.Suite
	ctx        context.Context
	ctrl       *gomock.Controller
	statistics *mocks.MockStatisticFinder
	queries    *Queries

	joao     *athlete.Athlete
	kipchoge *athlete.Athlete
	race     *event.Event
}

func TestQueriesSuite(t *testing.T) {
	suite.Run(t, new(QueriesSuite))
}

func (s *QueriesSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.statistics = mocks.NewMockStatisticFinder(s.ctrl)
	s.queries = New(s.statistics, slog.New(slog.NewTextHandler(io.Discard, nil)))

	s.joao = fixture.Athlete(s.T(), fixture.AthleteSpec{
		ID: "joao", Name: "João Silva Santos", CPF: fixture.CPFs[0], Nationality: "Brasil", Sport: sport.Running,
	})
	s.kipchoge = fixture.Athlete(s.T(), fixture.AthleteSpec{
		ID: "kipchoge", Name: "Kipchoge Kiptum", CPF: fixture.CPFs[1], Nationality: "Quênia", Sport: sport.Running,
	})
	s.race = fixture.Event(s.T(), fixture.EventSpec{
		ID: "sao-silvestre", Name: "Corrida de São Silvestre", Country: "Brasil",
		Date: fixture.Date(2024, time.December, 31), Sport: sport.Running, Official: true,
	})
}

func (s *QueriesSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *QueriesSuite) entry(a *athlete.Athlete) statistic.Entry {
	return statistic.Entry{Statistic: &statistic.Statistic{}, Athlete: a, Event: s.race}
}

func (s *QueriesSuite) TestInvalidArguments() {
	_, err := s.queries.FindWinningRunners(s.ctx, time.Time{})
	s.ErrorIs(err, domain.ErrInvalidArgument)

	_, err = s.queries.FindTopScorersInOfficialEvents(s.ctx, sport.Sport("CURLING"))
	s.ErrorIs(err, domain.ErrInvalidArgument)

	_, err = s.queries.FindTopScorersInOfficialEvents(s.ctx, "")
	s.ErrorIs(err, domain.ErrInvalidArgument)

	_, err = s.queries.FindParticipants(s.ctx, nil)
	s.ErrorIs(err, domain.ErrInvalidArgument)
}

func (s *QueriesSuite) TestFindWinningRunners() {
	since := fixture.Date(2024, time.January, 1)
	s.statistics.EXPECT().
		Find(gomock.Any(), statistic.Filter{Sport: sport.Running, Since: since, Score: fixture.Ptr(1)}).
		Return([]statistic.Entry{s.entry(s.kipchoge), s.entry(s.joao), s.entry(s.kipchoge)}, nil)

	athletes, err := s.queries.FindWinningRunners(s.ctx, since)
	s.Require().NoError(err)
	s.Equal([]*athlete.Athlete{s.joao, s.kipchoge}, athletes)
}

func (s *QueriesSuite) TestFindTopScorersUsesLowestPlacementForRunning() {
	official := statistic.Filter{Sport: sport.Running, OfficialOnly: true}
	best := official
	best.Score = fixture.Ptr(1)

	gomock.InOrder(
		s.statistics.EXPECT().AggregateScore(gomock.Any(), official, statistic.Min).Return(1, true, nil),
		s.statistics.EXPECT().Find(gomock.Any(), best).
			Return([]statistic.Entry{s.entry(s.joao), s.entry(s.kipchoge)}, nil),
	)

	athletes, err := s.queries.FindTopScorersInOfficialEvents(s.ctx, sport.Running)
	s.Require().NoError(err)
	s.Len(athletes, 2)
}

func (s *QueriesSuite) TestFindTopScorersUsesHighestScoreForMatches() {
	official := statistic.Filter{Sport: sport.Football, OfficialOnly: true}
	best := official
	best.Score = fixture.Ptr(2)

	s.statistics.EXPECT().AggregateScore(gomock.Any(), official, statistic.Max).Return(2, true, nil)
	s.statistics.EXPECT().Find(gomock.Any(), best).Return(nil, nil)

	athletes, err := s.queries.FindTopScorersInOfficialEvents(s.ctx, sport.Football)
	s.Require().NoError(err)
	s.Empty(athletes)
}

func (s *QueriesSuite) TestFindTopScorersWithoutOfficialStatistics() {
	s.statistics.EXPECT().AggregateScore(gomock.Any(), gomock.Any(), statistic.Max).Return(0, false, nil)

	athletes, err := s.queries.FindTopScorersInOfficialEvents(s.ctx, sport.Basketball)
	s.Require().NoError(err)
	s.NotNil(athletes)
	s.Empty(athletes)
}

func (s *QueriesSuite) TestFindParticipants() {
	s.statistics.EXPECT().
		Find(gomock.Any(), statistic.Filter{EventID: s.race.EventID}).
		Return([]statistic.Entry{s.entry(s.kipchoge), s.entry(s.joao)}, nil)

	athletes, err := s.queries.FindParticipants(s.ctx, s.race)
	s.Require().NoError(err)
	s.Equal([]*athlete.Athlete{s.joao, s.kipchoge}, athletes)
}

func (s *QueriesSuite) TestStorageErrorsPropagate() {
	storageErr := errors.New("connection reset")

	s.statistics.EXPECT().AggregateScore(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, false, storageErr)
	_, err := s.queries.FindTopScorersInOfficialEvents(s.ctx, sport.Running)
	s.ErrorIs(err, storageErr)

	s.statistics.EXPECT().Find(gomock.Any(), gomock.Any()).Return(nil, storageErr)
	_, err = s.queries.FindParticipants(s.ctx, s.race)
	s.ErrorIs(err, storageErr)
}
