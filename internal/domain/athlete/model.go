package athlete

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/burenotti/sportstats/internal/domain"
	"github.com/burenotti/sportstats/internal/domain/rules"
	"github.com/burenotti/sportstats/internal/domain/sport"
)

var (
	ErrAthleteNotFound = errors.New("athlete not found")
	ErrAthleteExists   = errors.New("athlete already exists")
	ErrCPFTaken        = fmt.Errorf("%w: cpf is not unique", ErrAthleteExists)
	ErrEmailTaken      = fmt.Errorf("%w: email is not unique", ErrAthleteExists)
)

const (
	EventRegistered = "athlete.registered"
	EventUpdated    = "athlete.updated"
)

// Params is the validated input of an athlete record.
type Params struct {
	Name        string      `validate:"min=5,max=100"`
	CPF         string      `validate:"cpf"`
	Email       string      `validate:"required,email,max=100"`
	BirthDate   time.Time   `validate:"required"`
	Nationality string      `validate:"required,max=50"`
	Height      float64     `validate:"gte=1,lte=2.5"`
	Weight      float64     `validate:"gte=30,lte=250"`
	Sport       sport.Sport `validate:"sport"`
	Active      bool
}

func (p Params) normalize() Params {
	p.Name = rules.NormalizeText(p.Name)
	p.CPF = rules.NormalizeCPF(p.CPF)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Nationality = rules.NormalizeText(p.Nationality)
	if p.Sport == "" {
		p.Sport = sport.Unspecified
	}
	return p
}

func (p Params) validate(today time.Time) error {
	if err := rules.Struct(p); err != nil {
		return err
	}
	return rules.ValidateBirthDate(p.BirthDate, today)
}

type Athlete struct {
	domain.Aggregate `diff:"-"`
	AthleteID        string      `diff:"-"`
	Name             string      `diff:"name"`
	CPF              string      `diff:"-"`
	Email            string      `diff:"-"`
	BirthDate        time.Time   `diff:"-"`
	Nationality      string      `diff:"nationality"`
	Height           float64     `diff:"height"`
	Weight           float64     `diff:"weight"`
	Sport            sport.Sport `diff:"-"`
	Active           bool        `diff:"active"`
	CreatedAt        time.Time   `diff:"-"`
	UpdatedAt        time.Time   `diff:"-"`
}

func New(athleteID string, p Params, now time.Time) (*Athlete, error) {
	p = p.normalize()
	if err := p.validate(now); err != nil {
		return nil, err
	}

	now = now.UTC()
	a := &Athlete{
		AthleteID:   athleteID,
		Name:        p.Name,
		CPF:         p.CPF,
		Email:       p.Email,
		BirthDate:   p.BirthDate,
		Nationality: p.Nationality,
		Height:      p.Height,
		Weight:      p.Weight,
		Sport:       p.Sport,
		Active:      p.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	a.PushEvent(RegisteredEvent{
		At:        now,
		AthleteID: a.AthleteID,
		Name:      a.Name,
		Sport:     a.Sport,
	})
	return a, nil
}

// Changes lists the mutable attributes of an athlete. CPF, e-mail, birth
// date and sport are immutable.
type Changes struct {
	Name        *string
	Nationality *string
	Height      *float64
	Weight      *float64
	Active      *bool
}

// Update applies changes only when the resulting record is still valid.
func (a *Athlete) Update(c Changes, now time.Time) error {
	p := a.Params()
	if c.Name != nil {
		p.Name = *c.Name
	}
	if c.Nationality != nil {
		p.Nationality = *c.Nationality
	}
	if c.Height != nil {
		p.Height = *c.Height
	}
	if c.Weight != nil {
		p.Weight = *c.Weight
	}
	if c.Active != nil {
		p.Active = *c.Active
	}

	p = p.normalize()
	if err := rules.Struct(p); err != nil {
		return err
	}

	a.Name = p.Name
	a.Nationality = p.Nationality
	a.Height = p.Height
	a.Weight = p.Weight
	a.Active = p.Active
	a.UpdatedAt = now.UTC()

	a.PushEvent(UpdatedEvent{At: a.UpdatedAt, AthleteID: a.AthleteID})
	return nil
}

func (a *Athlete) Params() Params {
	return Params{
		Name:        a.Name,
		CPF:         a.CPF,
		Email:       a.Email,
		BirthDate:   a.BirthDate,
		Nationality: a.Nationality,
		Height:      a.Height,
		Weight:      a.Weight,
		Sport:       a.Sport,
		Active:      a.Active,
	}
}

func (a *Athlete) AgeAt(t time.Time) int {
	return rules.AgeAt(a.BirthDate, t)
}

func (a *Athlete) String() string {
	return fmt.Sprintf("%s - %s", a.Name, a.Sport)
}

type RegisteredEvent struct {
	At        time.Time
	AthleteID string
	Name      string
	Sport     sport.Sport
}

func (e RegisteredEvent) Type() string {
	return EventRegistered
}

func (e RegisteredEvent) PublishedAt() time.Time {
	return e.At
}

type UpdatedEvent struct {
	At        time.Time
	AthleteID string
}

func (e UpdatedEvent) Type() string {
	return EventUpdated
}

func (e UpdatedEvent) PublishedAt() time.Time {
	return e.At
}
