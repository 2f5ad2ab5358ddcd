package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidField          = errors.New("invalid field")
	ErrInvalidCPF            = errors.New("invalid cpf")
	ErrInvalidAge            = errors.New("invalid age")
	ErrInvalidSportStatistic = errors.New("invalid statistic for sport")
	ErrMismatchedSport       = errors.New("athlete and event sports differ")
	ErrInvalidArgument       = errors.New("invalid argument")
)

// ValidationError carries a human-readable message for a rejected record.
// Kind is one of the sentinels above, so callers match it with errors.Is.
type ValidationError struct {
	Kind    error
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%v: %s: %s", e.Kind, e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func Invalid(kind error, field, format string, args ...any) error {
	return &ValidationError{
		Kind:    kind,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
