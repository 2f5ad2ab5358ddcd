package statistic

import (
	"github.com/burenotti/sportstats/internal/domain"
	"github.com/burenotti/sportstats/internal/domain/sport"
)

// ValidateForSport enforces which fields a sport requires or forbids.
// Sports other than running, basketball and football have no rule yet and
// accept any combination of fields.
func ValidateForSport(f Fields, s sport.Sport) error {
	switch s {
	case sport.Running:
		return validateRunning(f)
	case sport.Basketball, sport.Football:
		return validateMatch(f, s)
	default:
		return nil
	}
}

func validateRunning(f Fields) error {
	if f.Score == nil || *f.Score < 1 {
		return invalidFor(sport.Running, "Score", "placement is required and must be at least 1")
	}
	if f.Distance == nil || *f.Distance < 1 {
		return invalidFor(sport.Running, "Distance", "distance is required and must be at least 1")
	}

	forbidden := []struct {
		name  string
		value *int
	}{
		{"Assists", f.Assists},
		{"Fouls", f.Fouls},
		{"Cards", f.Cards},
		{"MinutesPlayed", f.MinutesPlayed},
	}
	for _, field := range forbidden {
		if field.value != nil {
			return invalidFor(sport.Running, field.name, "must be empty")
		}
	}
	return nil
}

func validateMatch(f Fields, s sport.Sport) error {
	required := []struct {
		name  string
		value *int
	}{
		{"Score", f.Score},
		{"Assists", f.Assists},
		{"Fouls", f.Fouls},
		{"Cards", f.Cards},
		{"MinutesPlayed", f.MinutesPlayed},
	}
	for _, field := range required {
		if field.value == nil || *field.value < 0 {
			return invalidFor(s, field.name, "is required and must be zero or more")
		}
	}

	if f.Distance != nil {
		return invalidFor(s, "Distance", "must be empty")
	}
	return nil
}

func invalidFor(s sport.Sport, field, message string) error {
	return domain.Invalid(domain.ErrInvalidSportStatistic, field, "%s: %s", s, message)
}
