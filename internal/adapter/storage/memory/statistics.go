package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/burenotti/sportstats/internal/adapter/storage"
	"github.com/burenotti/sportstats/internal/domain"
	"github.com/burenotti/sportstats/internal/domain/athlete"
	"github.com/burenotti/sportstats/internal/domain/event"
	"github.com/burenotti/sportstats/internal/domain/statistic"
)

type StatisticStorage struct {
	storage.EventTracker
	store *Store
	tx    *Tx
}

func (s *StatisticStorage) Add(ctx context.Context, st *statistic.Statistic) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.state.statistics[st.StatisticID]; ok {
		return statistic.ErrStatisticExists
	}
	if _, ok := s.store.state.athletes[st.AthleteID]; !ok {
		return athlete.ErrAthleteNotFound
	}
	if _, ok := s.store.state.events[st.EventID]; !ok {
		return event.ErrEventNotFound
	}

	s.tx.touchStatistic(st.StatisticID)
	s.store.state.statistics[st.StatisticID] = newStatisticRecord(st)
	s.MarkSeen(st)
	return nil
}

// Find returns the matching statistics ordered by athlete name and event
// date. Entries of the same athlete or event share one pointer.
func (s *StatisticStorage) Find(ctx context.Context, f statistic.Filter) ([]statistic.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	return s.find(f), nil
}

func (s *StatisticStorage) find(f statistic.Filter) []statistic.Entry {
	athletes := make(map[string]*athlete.Athlete)
	events := make(map[string]*event.Event)

	var entries []statistic.Entry
	for _, r := range s.store.state.statistics {
		a, ok := athletes[r.AthleteID]
		if !ok {
			a = s.store.state.athletes[r.AthleteID].toDomain()
			athletes[r.AthleteID] = a
		}
		e, ok := events[r.EventID]
		if !ok {
			e = s.store.state.events[r.EventID].toDomain()
			events[r.EventID] = e
		}

		entry := statistic.Entry{Statistic: r.toDomain(), Athlete: a, Event: e}
		if f.Match(entry) {
			entries = append(entries, entry)
		}
	}

	slices.SortFunc(entries, func(x, y statistic.Entry) int {
		return cmp.Or(
			cmp.Compare(x.Athlete.Name, y.Athlete.Name),
			cmp.Compare(x.Athlete.AthleteID, y.Athlete.AthleteID),
			x.Event.Date.Compare(y.Event.Date),
			x.Statistic.CreatedAt.Compare(y.Statistic.CreatedAt),
			cmp.Compare(x.Statistic.StatisticID, y.Statistic.StatisticID),
		)
	})
	return entries
}

// AggregateScore reduces the scores of the matching statistics. ok is false
// when no matching statistic has a score.
func (s *StatisticStorage) AggregateScore(
	ctx context.Context,
	f statistic.Filter,
	agg statistic.Aggregation,
) (score int, ok bool, err error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	for _, entry := range s.find(f) {
		v := entry.Statistic.Score
		if v == nil {
			continue
		}
		if !ok || (agg == statistic.Min && *v < score) || (agg == statistic.Max && *v > score) {
			score, ok = *v, true
		}
	}
	return score, ok, nil
}

func (s *StatisticStorage) DeleteAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	s.tx.touchAll(false, false, true)
	clear(s.store.state.statistics)
	return nil
}

func (s *StatisticStorage) CollectEvents() []domain.Event {
	return s.EventTracker.CollectEvents()
}

func (s *StatisticStorage) Close() error {
	s.Clear()
	return nil
}
