package statistic

import (
	"errors"
	"fmt"
	"time"

	"github.com/burenotti/sportstats/internal/domain"
	"github.com/burenotti/sportstats/internal/domain/athlete"
	"github.com/burenotti/sportstats/internal/domain/event"
	"github.com/burenotti/sportstats/internal/domain/rules"
)

var (
	ErrStatisticNotFound = errors.New("statistic not found")
	ErrStatisticExists   = errors.New("statistic already exists")
)

const EventRecorded = "statistic.recorded"

// Fields holds the per-sport measurements. Absent values are nil, so "not
// applicable" is distinct from zero.
type Fields struct {
	Score         *int     `validate:"omitempty,gte=0"`
	Assists       *int     `validate:"omitempty,gte=0"`
	Fouls         *int     `validate:"omitempty,gte=0"`
	Cards         *int     `validate:"omitempty,gte=0"`
	MinutesPlayed *int     `validate:"omitempty,gte=0"`
	Distance      *float64 `validate:"omitempty,gte=0"`
	Notes         string   `validate:"max=2000"`
}

type Statistic struct {
	domain.Aggregate
	StatisticID string
	AthleteID   string
	EventID     string
	Fields
	CreatedAt time.Time
}

// New validates the statistic against its athlete and event before building
// it. Nothing is returned unless every rule passes.
func New(statisticID string, a *athlete.Athlete, e *event.Event, f Fields, now time.Time) (*Statistic, error) {
	if a == nil {
		return nil, domain.InvalidArgument("athlete is required")
	}
	if e == nil {
		return nil, domain.InvalidArgument("event is required")
	}

	if err := rules.Struct(f); err != nil {
		return nil, err
	}

	if a.Sport != e.Sport {
		return nil, domain.Invalid(domain.ErrMismatchedSport, "Sport",
			"athlete %q practices %s but event %q is %s", a.Name, a.Sport, e.Name, e.Sport)
	}

	if err := ValidateAthleteMinAge(a, e); err != nil {
		return nil, err
	}

	if err := ValidateForSport(f, e.Sport); err != nil {
		return nil, err
	}

	s := &Statistic{
		StatisticID: statisticID,
		AthleteID:   a.AthleteID,
		EventID:     e.EventID,
		Fields:      f,
		CreatedAt:   now.UTC(),
	}
	s.PushEvent(RecordedEvent{
		At:          s.CreatedAt,
		StatisticID: s.StatisticID,
		AthleteID:   s.AthleteID,
		EventID:     s.EventID,
	})
	return s, nil
}

func ValidateAthleteMinAge(a *athlete.Athlete, e *event.Event) error {
	return rules.ValidateMinAgeAt(a.BirthDate, e.Date)
}

func (s *Statistic) String() string {
	return fmt.Sprintf("Statistic (score: %s, assists: %s)", formatInt(s.Score), formatInt(s.Assists))
}

func formatInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}

type RecordedEvent struct {
	At          time.Time
	StatisticID string
	AthleteID   string
	EventID     string
}

func (e RecordedEvent) Type() string {
	return EventRecorded
}

func (e RecordedEvent) PublishedAt() time.Time {
	return e.At
}
