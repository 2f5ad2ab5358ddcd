package statistic

import (
	"time"

	"github.com/burenotti/sportstats/internal/domain/athlete"
	"github.com/burenotti/sportstats/internal/domain/event"
	"github.com/burenotti/sportstats/internal/domain/rules"
	"github.com/burenotti/sportstats/internal/domain/sport"
)

// Entry is a statistic joined with the athlete and event it references.
type Entry struct {
	Statistic *Statistic
	Athlete   *athlete.Athlete
	Event     *event.Event
}

// Filter narrows a statistic lookup. Zero values mean "any".
type Filter struct {
	AthleteID string
	EventID   string
	// Sport matches the athlete's sport.
	Sport sport.Sport
	// Since is an inclusive lower bound on the event date. Only its calendar
	// date counts.
	Since        time.Time
	OfficialOnly bool
	Score        *int
	// ForeignOnly keeps entries whose athlete nationality differs from the
	// event country.
	ForeignOnly bool
}

func (f Filter) Match(e Entry) bool {
	switch {
	case f.AthleteID != "" && e.Athlete.AthleteID != f.AthleteID:
		return false
	case f.EventID != "" && e.Event.EventID != f.EventID:
		return false
	case f.Sport != "" && e.Athlete.Sport != f.Sport:
		return false
	case !f.Since.IsZero() && rules.Day(e.Event.Date).Before(rules.Day(f.Since)):
		return false
	case f.OfficialOnly && !e.Event.Official:
		return false
	case f.Score != nil && (e.Statistic.Score == nil || *e.Statistic.Score != *f.Score):
		return false
	case f.ForeignOnly && e.Event.HostedIn(e.Athlete.Nationality):
		return false
	}
	return true
}

type Aggregation int

const (
	Min Aggregation = iota
	Max
)

func (a Aggregation) String() string {
	if a == Max {
		return "MAX"
	}
	return "MIN"
}

// BestScoreAggregation picks MIN for sports ranked by placement and MAX for
// the rest.
func BestScoreAggregation(s sport.Sport) Aggregation {
	if s.LowerIsBetter() {
		return Min
	}
	return Max
}
