package drafts

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/aica/internal/incident"
	"github.com/JaimeStill/aica/internal/redaction"
)

// MapHTTPStatus maps drafting errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, redaction.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return incident.MapHTTPStatus(err)
	}
}
