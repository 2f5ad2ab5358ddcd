package rules

import (
	"time"

	"github.com/burenotti/sportstats/internal/domain"
)

const MinAge = 12

// AgeAt returns the number of completed years between birth and at,
// comparing calendar dates only.
func AgeAt(birth, at time.Time) int {
	by, bm, bd := birth.Date()
	ay, am, ad := at.Date()

	age := ay - by
	if am < bm || (am == bm && ad < bd) {
		age--
	}
	return age
}

func ValidateBirthDate(birth, today time.Time) error {
	if Day(birth).After(Day(today)) {
		return domain.Invalid(domain.ErrInvalidAge, "BirthDate", "birth date %s is in the future", birth.Format(time.DateOnly))
	}
	if age := AgeAt(birth, today); age < MinAge {
		return domain.Invalid(domain.ErrInvalidAge, "BirthDate", "athlete is %d years old, minimum is %d", age, MinAge)
	}
	return nil
}

// ValidateMinAgeAt rejects a birth date that makes the athlete younger than
// MinAge on the given date.
func ValidateMinAgeAt(birth, at time.Time) error {
	if age := AgeAt(birth, at); age < MinAge {
		return domain.Invalid(domain.ErrInvalidAge, "BirthDate", "athlete would be %d years old on %s, minimum is %d",
			age, at.Format(time.DateOnly), MinAge)
	}
	return nil
}

// Day drops the time of day, keeping the calendar date t shows in its own
// location, and returns it at midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
