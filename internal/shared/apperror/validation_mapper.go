package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldError is one entry of the details array on a 400 response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var titleCaser = cases.Title(language.English)

// attendance_bonus -> Attendance Bonus
func formatFieldName(s string) string {
	return titleCaser.String(strings.ReplaceAll(s, "_", " "))
}

// MapValidationError turns the first validator failure into a
// VALIDATION_ERROR AppError; ToHTTP adds the full list as details.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return New(CodeInvalidInput, "Invalid input", http.StatusBadRequest)
	}

	e := errs[0]
	if e.Tag() == "required" {
		return RequiredField(formatFieldName(e.Field()))
	}
	return New(CodeValidationError, describe(e), http.StatusBadRequest)
}

func FieldErrors(err error) []FieldError {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil
	}

	out := make([]FieldError, 0, len(errs))
	for _, e := range errs {
		out = append(out, FieldError{Field: e.Field(), Message: describe(e)})
	}
	return out
}

func describe(e validator.FieldError) string {
	field := formatFieldName(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(strings.Fields(e.Param()), ", "))
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "len":
		return fmt.Sprintf("%s must be %s characters long", field, e.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid id", field)
	case "datetime":
		if e.Param() == "2006-01-02" {
			return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
		}
		return fmt.Sprintf("%s must match %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
