package apperror

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// start_time -> Start Time
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError turns a gin binding error into an AppError naming the
// first offending field.
func MapValidationError(err error) *AppError {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		field := formatFieldName(e.Field())

		var out *AppError
		switch e.Tag() {
		case "required":
			out = RequiredField(field)
		default:
			out = InvalidField(field)
		}
		return out.WithDetails(err.Error())
	}

	return ErrInvalidInput.WithDetails(err.Error())
}
