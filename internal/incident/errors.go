package incident

import (
	"errors"
	"fmt"
	"net/http"
)

// Validation errors. They are always wrapped in a *FieldError naming the
// offending request field.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnknownSeverity = errors.New("unknown severity")
	ErrUnknownStage    = errors.New("unknown stage")
)

// FieldError ties a validation failure to the request field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func fieldError(field string, err error, detail string) error {
	if detail != "" {
		err = fmt.Errorf("%w: %s", err, detail)
	}
	return &FieldError{Field: field, Err: err}
}

// MapHTTPStatus maps validation errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrUnknownSeverity),
		errors.Is(err, ErrUnknownStage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
