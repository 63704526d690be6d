package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// UseJSONNames makes FieldError.Field() report the json tag name ("firstName")
// instead of the Go field name.
func UseJSONNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

// FailedFields returns the names of the fields that failed validation, or nil
// when err is not a validator.ValidationErrors.
func FailedFields(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fields := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, e.Field())
	}
	return fields
}

// FormatValidationErrors converts validator.ValidationErrors to readable messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	field := e.Field()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", field)
	case "required_if":
		return fmt.Sprintf("%s: is required when %s", field, e.Param())
	case "email":
		return fmt.Sprintf("%s: must be a valid email address", field)
	case "url":
		return fmt.Sprintf("%s: must be a valid URL", field)
	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", field, strings.Join(strings.Fields(e.Param()), ", "))
	case "numeric":
		return fmt.Sprintf("%s: must be numeric", field)
	case "timezone":
		return fmt.Sprintf("%s: must be an IANA time zone", field)
	case "gt":
		return fmt.Sprintf("%s: must be greater than %s", field, e.Param())
	case "min":
		return fmt.Sprintf("%s: must be at least %s", field, e.Param())
	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s: failed validation (%s)", field, e.Tag())
	}
}
