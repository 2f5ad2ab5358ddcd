package athletequery

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/burenotti/sportstats/internal/domain"
	"github.com/burenotti/sportstats/internal/domain/athlete"
	"github.com/burenotti/sportstats/internal/domain/event"
	"github.com/burenotti/sportstats/internal/domain/sport"
	"github.com/burenotti/sportstats/internal/domain/statistic"
	"github.com/samber/lo"
)

type StatisticFinder interface {
	Find(ctx context.Context, f statistic.Filter) ([]statistic.Entry, error)
	AggregateScore(ctx context.Context, f statistic.Filter, agg statistic.Aggregation) (int, bool, error)
}

// Queries answers athlete lookups that go through recorded statistics.
type Queries struct {
	statistics StatisticFinder
	logger     *slog.Logger
}

func New(statistics StatisticFinder, logger *slog.Logger) *Queries {
	return &Queries{statistics: statistics, logger: logger}
}

// FindWinningRunners returns the runners placed first in an event dated on
// or after since.
func (q *Queries) FindWinningRunners(ctx context.Context, since time.Time) ([]*athlete.Athlete, error) {
	if since.IsZero() {
		return nil, domain.InvalidArgument("since date must be set")
	}

	return q.find(ctx, statistic.Filter{
		Sport: sport.Running,
		Since: since,
		Score: lo.ToPtr(1),
	})
}

// FindTopScorersInOfficialEvents returns every athlete of s holding the best
// score recorded in official events. Lower is better for running.
func (q *Queries) FindTopScorersInOfficialEvents(ctx context.Context, s sport.Sport) ([]*athlete.Athlete, error) {
	if !s.Valid() {
		return nil, domain.InvalidArgument("unknown sport %q", s)
	}

	f := statistic.Filter{Sport: s, OfficialOnly: true}
	best, ok, err := q.statistics.AggregateScore(ctx, f, statistic.BestScoreAggregation(s))
	if err != nil {
		return nil, err
	}
	if !ok {
		q.logger.Debug("no scored statistics in official events", "sport", s)
		return []*athlete.Athlete{}, nil
	}

	f.Score = &best
	return q.find(ctx, f)
}

func (q *Queries) FindParticipants(ctx context.Context, e *event.Event) ([]*athlete.Athlete, error) {
	if e == nil {
		return nil, domain.InvalidArgument("event must be set")
	}

	return q.find(ctx, statistic.Filter{EventID: e.EventID})
}

func (q *Queries) find(ctx context.Context, f statistic.Filter) ([]*athlete.Athlete, error) {
	entries, err := q.statistics.Find(ctx, f)
	if err != nil {
		return nil, err
	}

	athletes := lo.UniqBy(
		lo.Map(entries, func(e statistic.Entry, _ int) *athlete.Athlete { return e.Athlete }),
		func(a *athlete.Athlete) string { return a.AthleteID },
	)
	slices.SortFunc(athletes, func(x, y *athlete.Athlete) int {
		return cmp.Or(cmp.Compare(x.Name, y.Name), cmp.Compare(x.AthleteID, y.AthleteID))
	})
	return athletes, nil
}
