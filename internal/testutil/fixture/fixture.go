// Package fixture builds valid domain records for tests.
package fixture

import (
	"strings"
	"testing"
	"time"

	"github.com/burenotti/sportstats/internal/domain/athlete"
	"github.com/burenotti/sportstats/internal/domain/event"
	"github.com/burenotti/sportstats/internal/domain/sport"
	"github.com/burenotti/sportstats/internal/domain/statistic"
	"github.com/stretchr/testify/require"
)

var Now = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

// CPFs are checksum-valid and distinct.
var CPFs = []string{
	"52998224725",
	"11144477735",
	"39053344705",
	"12345678909",
	"98765432100",
	"93541134780",
	"06714558007",
}

func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func Ptr[T any](v T) *T {
	return &v
}

type AthleteSpec struct {
	ID          string
	Name        string
	CPF         string
	Nationality string
	Sport       sport.Sport
	BirthDate   time.Time
}

func AthleteParams(spec AthleteSpec) athlete.Params {
	birth := spec.BirthDate
	if birth.IsZero() {
		birth = Date(1995, time.March, 10)
	}
	return athlete.Params{
		Name:        spec.Name,
		CPF:         spec.CPF,
		Email:       strings.ToLower(spec.ID) + "@email.com",
		BirthDate:   birth,
		Nationality: spec.Nationality,
		Height:      1.80,
		Weight:      75,
		Sport:       spec.Sport,
		Active:      true,
	}
}

func Athlete(t testing.TB, spec AthleteSpec) *athlete.Athlete {
	t.Helper()
	a, err := athlete.New(spec.ID, AthleteParams(spec), Now)
	require.NoError(t, err)
	return a
}

type EventSpec struct {
	ID       string
	Name     string
	Country  string
	Date     time.Time
	Sport    sport.Sport
	Official bool
}

func EventParams(spec EventSpec) event.Params {
	return event.Params{
		Name:      spec.Name,
		Venue:     "Estádio Municipal",
		City:      "São Paulo",
		Country:   spec.Country,
		Date:      spec.Date,
		Sport:     spec.Sport,
		Official:  spec.Official,
		Organizer: "Federação Nacional",
		Capacity:  1000,
	}
}

func Event(t testing.TB, spec EventSpec) *event.Event {
	t.Helper()
	e, err := event.New(spec.ID, EventParams(spec), Now)
	require.NoError(t, err)
	return e
}

func RaceFields(place int, distance float64) statistic.Fields {
	return statistic.Fields{Score: Ptr(place), Distance: Ptr(distance)}
}

func MatchFields(score int) statistic.Fields {
	return statistic.Fields{
		Score:         Ptr(score),
		Assists:       Ptr(0),
		Fouls:         Ptr(0),
		Cards:         Ptr(0),
		MinutesPlayed: Ptr(90),
	}
}

func Statistic(t testing.TB, id string, a *athlete.Athlete, e *event.Event, f statistic.Fields) *statistic.Statistic {
	t.Helper()
	s, err := statistic.New(id, a, e, f, Now)
	require.NoError(t, err)
	return s
}
