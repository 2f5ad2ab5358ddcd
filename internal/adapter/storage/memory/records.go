package memory

import (
	"time"

	"github.com/burenotti/sportstats/internal/domain/athlete"
	"github.com/burenotti/sportstats/internal/domain/event"
	"github.com/burenotti/sportstats/internal/domain/sport"
	"github.com/burenotti/sportstats/internal/domain/statistic"
)

// Records are detached copies, so callers never share memory with the store.

type athleteRecord struct {
	AthleteID   string
	Name        string
	CPF         string
	Email       string
	BirthDate   time.Time
	Nationality string
	Height      float64
	Weight      float64
	Sport       sport.Sport
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func newAthleteRecord(a *athlete.Athlete) athleteRecord {
	return athleteRecord{
		AthleteID:   a.AthleteID,
		Name:        a.Name,
		CPF:         a.CPF,
		Email:       a.Email,
		BirthDate:   a.BirthDate,
		Nationality: a.Nationality,
		Height:      a.Height,
		Weight:      a.Weight,
		Sport:       a.Sport,
		Active:      a.Active,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (r athleteRecord) toDomain() *athlete.Athlete {
	return &athlete.Athlete{
		AthleteID:   r.AthleteID,
		Name:        r.Name,
		CPF:         r.CPF,
		Email:       r.Email,
		BirthDate:   r.BirthDate,
		Nationality: r.Nationality,
		Height:      r.Height,
		Weight:      r.Weight,
		Sport:       r.Sport,
		Active:      r.Active,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type eventRecord struct {
	EventID   string
	Name      string
	Venue     string
	City      string
	Country   string
	Date      time.Time
	Sport     sport.Sport
	Official  bool
	Organizer string
	Capacity  int
	CreatedAt time.Time
}

func newEventRecord(e *event.Event) eventRecord {
	return eventRecord{
		EventID:   e.EventID,
		Name:      e.Name,
		Venue:     e.Venue,
		City:      e.City,
		Country:   e.Country,
		Date:      e.Date,
		Sport:     e.Sport,
		Official:  e.Official,
		Organizer: e.Organizer,
		Capacity:  e.Capacity,
		CreatedAt: e.CreatedAt,
	}
}

func (r eventRecord) toDomain() *event.Event {
	return &event.Event{
		EventID:   r.EventID,
		Name:      r.Name,
		Venue:     r.Venue,
		City:      r.City,
		Country:   r.Country,
		Date:      r.Date,
		Sport:     r.Sport,
		Official:  r.Official,
		Organizer: r.Organizer,
		Capacity:  r.Capacity,
		CreatedAt: r.CreatedAt,
	}
}

type statisticRecord struct {
	StatisticID string
	AthleteID   string
	EventID     string
	Fields      statistic.Fields
	CreatedAt   time.Time
}

func newStatisticRecord(s *statistic.Statistic) statisticRecord {
	return statisticRecord{
		StatisticID: s.StatisticID,
		AthleteID:   s.AthleteID,
		EventID:     s.EventID,
		Fields:      cloneFields(s.Fields),
		CreatedAt:   s.CreatedAt,
	}
}

func (r statisticRecord) toDomain() *statistic.Statistic {
	return &statistic.Statistic{
		StatisticID: r.StatisticID,
		AthleteID:   r.AthleteID,
		EventID:     r.EventID,
		Fields:      cloneFields(r.Fields),
		CreatedAt:   r.CreatedAt,
	}
}

func cloneFields(f statistic.Fields) statistic.Fields {
	return statistic.Fields{
		Score:         clone(f.Score),
		Assists:       clone(f.Assists),
		Fouls:         clone(f.Fouls),
		Cards:         clone(f.Cards),
		MinutesPlayed: clone(f.MinutesPlayed),
		Distance:      clone(f.Distance),
		Notes:         f.Notes,
	}
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
