// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/lifekey/lifekey/internal/errors"
)

var (
	// emailRegex is a basic email validation pattern
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// dateRegex matches YYYY-MM-DD date strings. Dates of birth are stored as
	// strings and matched byte-for-byte during claim submission, so only the
	// shape is checked here, not the calendar.
	dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRule(isNotBlank, "cannot be blank")

// Email validates that a value is a well-formed email address.
var Email = validation.NewStringRule(isEmail, "must be a valid email address")

// Date validates that a value is a YYYY-MM-DD date string.
var Date = validation.NewStringRule(isDate, "must be a date in YYYY-MM-DD format")

func isNotBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

func isEmail(s string) bool {
	return emailRegex.MatchString(s)
}

func isDate(s string) bool {
	return dateRegex.MatchString(s)
}
