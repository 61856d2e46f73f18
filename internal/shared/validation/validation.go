// Package validation turns ozzo-validation results into the ordered
// field error list the HTML forms render.
package validation

import (
	"errors"
	"time"
	"unicode/utf8"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"library-catalog/internal/shared/utils"
)

// FieldError is one (field, message) pair shown next to a form
type FieldError struct {
	Param string `json:"param"`
	Msg   string `json:"msg"`
	Value string `json:"value,omitempty"`
}

// FieldErrors converts the error returned by ozzo.ValidateStruct into an ordered slice.
// order lists the form fields in the sequence they are declared on the form; any
// field not listed is appended afterwards. A non-validation error is returned as is.
func FieldErrors(err error, values map[string]string, order ...string) ([]FieldError, error) {
	if err == nil {
		return nil, nil
	}

	var internal ozzo.InternalError
	if errors.As(err, &internal) {
		return nil, internal.InternalError()
	}

	var errs ozzo.Errors
	if !errors.As(err, &errs) {
		return nil, err
	}

	out := make([]FieldError, 0, len(errs))
	seen := make(map[string]bool, len(errs))
	for _, field := range order {
		if fieldErr, ok := errs[field]; ok {
			out = append(out, FieldError{Param: field, Msg: fieldErr.Error(), Value: values[field]})
			seen[field] = true
		}
	}
	for field, fieldErr := range errs {
		if !seen[field] {
			out = append(out, FieldError{Param: field, Msg: fieldErr.Error(), Value: values[field]})
		}
	}

	return out, nil
}

// iso8601Layouts are the date and date-time shapes accepted for date fields
var iso8601Layouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseISO8601 parses a calendar date or date-time in ISO-8601 form
func ParseISO8601(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range iso8601Layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// ISO8601Date is an ozzo rule that accepts empty strings and ISO-8601 dates
func ISO8601Date(message string) ozzo.Rule {
	return ozzo.By(func(value interface{}) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		if _, err := ParseISO8601(s); err != nil {
			return errors.New(message)
		}
		return nil
	})
}

// EscapedMaxLength bounds a text field by the rune count of its escaped form,
// which is what lands in a VARCHAR(max) column.
func EscapedMaxLength(max int, message string) ozzo.Rule {
	return ozzo.By(func(value interface{}) error {
		s, _ := value.(string)
		if utf8.RuneCountInString(utils.Escape(s)) > max {
			return errors.New(message)
		}
		return nil
	})
}
