// Package validation wraps go-playground/validator and turns tag failures
// into 422 errors with the field-keyed message map the API contract uses.
package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/conduit-labs/conduit/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Use json tag names for field names in error messages.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return strings.ToLower(fld.Name)
			}
			return name
		})
	})
	return validate
}

// Struct validates a struct using `validate` tags. On failure it returns a
// 422 AppError keyed by the offending json field names.
func Struct(s any) error {
	v := getValidator()
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.FieldViolation("body", "is invalid")
	}

	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		fields[e.Field()] = messageFor(e)
	}
	return errors.Unprocessable(fields)
}

// messageFor maps a validator tag to the message the original API used.
func messageFor(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "can't be blank"
	case "email", "alphanum":
		return "is invalid"
	case "min":
		return "must be at least " + e.Param() + " characters"
	case "max":
		return "must be at most " + e.Param() + " characters"
	default:
		return "is invalid"
	}
}
