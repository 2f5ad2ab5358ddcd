package event

import (
	"errors"
	"fmt"
	"time"

	"github.com/burenotti/sportstats/internal/domain"
	"github.com/burenotti/sportstats/internal/domain/rules"
	"github.com/burenotti/sportstats/internal/domain/sport"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrEventExists   = errors.New("event already exists")
)

const EventScheduled = "event.scheduled"

type Params struct {
	Name      string      `validate:"min=5,max=100"`
	Venue     string      `validate:"min=5,max=100"`
	City      string      `validate:"min=2,max=80"`
	Country   string      `validate:"min=2,max=80"`
	Date      time.Time   `validate:"required"`
	Sport     sport.Sport `validate:"sport"`
	Official  bool
	Organizer string `validate:"min=2,max=100"`
	Capacity  int    `validate:"gte=0"`
}

type Event struct {
	domain.Aggregate
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

func New(eventID string, p Params, now time.Time) (*Event, error) {
	p.Name = rules.NormalizeText(p.Name)
	p.Venue = rules.NormalizeText(p.Venue)
	p.City = rules.NormalizeText(p.City)
	p.Country = rules.NormalizeText(p.Country)
	p.Organizer = rules.NormalizeText(p.Organizer)
	if p.Sport == "" {
		p.Sport = sport.Unspecified
	}

	if err := rules.Struct(p); err != nil {
		return nil, err
	}

	e := &Event{
		EventID:   eventID,
		Name:      p.Name,
		Venue:     p.Venue,
		City:      p.City,
		Country:   p.Country,
		Date:      rules.Day(p.Date),
		Sport:     p.Sport,
		Official:  p.Official,
		Organizer: p.Organizer,
		Capacity:  p.Capacity,
		CreatedAt: now.UTC(),
	}
	e.PushEvent(ScheduledEvent{
		At:      e.CreatedAt,
		EventID: e.EventID,
		Name:    e.Name,
		Date:    e.Date,
	})
	return e, nil
}

// HostedIn reports whether country names the event's country, ignoring case,
// surrounding blanks and Unicode composition.
func (e *Event) HostedIn(country string) bool {
	return rules.SameName(country, e.Country)
}

func (e *Event) String() string {
	return fmt.Sprintf("%s (%s, %s)", e.Name, e.City, e.Country)
}

type ScheduledEvent struct {
	At      time.Time
	EventID string
	Name    string
	Date    time.Time
}

func (e ScheduledEvent) Type() string {
	return EventScheduled
}

func (e ScheduledEvent) PublishedAt() time.Time {
	return e.At
}
