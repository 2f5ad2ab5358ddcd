package eventquery

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/burenotti/sportstats/internal/domain"
	"github.com/burenotti/sportstats/internal/domain/event"
	"github.com/burenotti/sportstats/internal/domain/statistic"
	"github.com/samber/lo"
)

type StatisticFinder interface {
	Find(ctx context.Context, f statistic.Filter) ([]statistic.Entry, error)
}

type Queries struct {
	statistics StatisticFinder
}

func New(statistics StatisticFinder) *Queries {
	return &Queries{statistics: statistics}
}

// FindEventsWithForeignParticipants returns the events dated on or after
// since where at least one athlete's nationality differs from the host
// country. Newest events come first.
func (q *Queries) FindEventsWithForeignParticipants(ctx context.Context, since time.Time) ([]*event.Event, error) {
	if since.IsZero() {
		return nil, domain.InvalidArgument("since date must be set")
	}

	entries, err := q.statistics.Find(ctx, statistic.Filter{Since: since, ForeignOnly: true})
	if err != nil {
		return nil, err
	}

	events := lo.UniqBy(
		lo.Map(entries, func(e statistic.Entry, _ int) *event.Event { return e.Event }),
		func(e *event.Event) string { return e.EventID },
	)
	slices.SortFunc(events, func(x, y *event.Event) int {
		return cmp.Or(
			y.Date.Compare(x.Date),
			cmp.Compare(x.Name, y.Name),
			cmp.Compare(x.EventID, y.EventID),
		)
	})
	return events, nil
}
