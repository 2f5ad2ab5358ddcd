package memory

import (
	"context"

	"github.com/burenotti/sportstats/internal/adapter/storage"
	"github.com/burenotti/sportstats/internal/domain"
	"github.com/burenotti/sportstats/internal/domain/athlete"
)

type AthleteStorage struct {
	storage.EventTracker
	store *Store
	tx    *Tx
}

func (s *AthleteStorage) Add(ctx context.Context, a *athlete.Athlete) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	athletes := s.store.state.athletes
	if _, ok := athletes[a.AthleteID]; ok {
		return athlete.ErrAthleteExists
	}
	for _, existing := range athletes {
		if existing.CPF == a.CPF {
			return athlete.ErrCPFTaken
		}
		if existing.Email == a.Email {
			return athlete.ErrEmailTaken
		}
	}

	s.tx.touchAthlete(a.AthleteID)
	athletes[a.AthleteID] = newAthleteRecord(a)
	s.MarkSeen(a)
	return nil
}

func (s *AthleteStorage) GetByID(ctx context.Context, athleteID string) (*athlete.Athlete, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	r, ok := s.store.state.athletes[athleteID]
	if !ok {
		return nil, athlete.ErrAthleteNotFound
	}
	return r.toDomain(), nil
}

func (s *AthleteStorage) Persist(ctx context.Context, a *athlete.Athlete) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.state.athletes[a.AthleteID]; !ok {
		return athlete.ErrAthleteNotFound
	}

	s.tx.touchAthlete(a.AthleteID)
	s.store.state.athletes[a.AthleteID] = newAthleteRecord(a)
	s.MarkSeen(a)
	return nil
}

// DeleteAll also drops the statistics of the removed athletes.
func (s *AthleteStorage) DeleteAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	s.tx.touchAll(true, false, true)
	clear(s.store.state.athletes)
	clear(s.store.state.statistics)
	return nil
}

func (s *AthleteStorage) CollectEvents() []domain.Event {
	return s.EventTracker.CollectEvents()
}

func (s *AthleteStorage) Close() error {
	s.Clear()
	return nil
}
