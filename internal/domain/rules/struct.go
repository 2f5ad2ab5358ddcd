package rules

import (
	"errors"
	"fmt"

	"github.com/burenotti/sportstats/internal/domain"
	"github.com/burenotti/sportstats/internal/domain/sport"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	if err := v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return ValidateCPF(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	if err := v.RegisterValidation("sport", func(fl validator.FieldLevel) bool {
		return sport.Sport(fl.Field().String()).Valid()
	}); err != nil {
		panic(err)
	}

	return v
}

// Struct checks the `validate` tags of a record and turns the first failure
// into a domain validation error.
func Struct(record any) error {
	err := validate.Struct(record)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return domain.Invalid(domain.ErrInvalidField, "", "%v", err)
	}

	fe := errs[0]
	kind := domain.ErrInvalidField
	if fe.Tag() == "cpf" {
		kind = domain.ErrInvalidCPF
	}
	return domain.Invalid(kind, fe.Field(), "%s", describe(fe))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must have at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s, got %v", fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s, got %v", fe.Param(), fe.Value())
	case "email":
		return fmt.Sprintf("%q is not a valid e-mail address", fe.Value())
	case "cpf":
		return fmt.Sprintf("%q is not a valid CPF", fe.Value())
	case "sport":
		return fmt.Sprintf("unknown sport %q", fe.Value())
	default:
		return fmt.Sprintf("failed %q rule", fe.Tag())
	}
}
