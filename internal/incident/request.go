// Package incident defines the closed vocabularies of an incident
// communication (stage, severity, mitigation) and validates raw draft
// requests into typed ones.
package incident

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// DraftRequest is the raw, caller-supplied request. Enum fields are plain
// strings so that unknown values surface as field-named validation errors
// rather than decode failures.
type DraftRequest struct {
	Stage            string `json:"stage"`
	Severity         string `json:"severity"`
	Summary          string `json:"summary"`
	Impact           string `json:"impact"`
	NextUpdate       string `json:"next_update,omitempty"`
	Mitigation       string `json:"mitigation,omitempty"`
	PreviousSeverity string `json:"previous_severity,omitempty"`
}

// Request is a validated DraftRequest. Summary and Impact are still raw
// text and must pass through redaction before any prompt work.
type Request struct {
	Stage            Stage
	Severity         Severity
	Summary          string
	Impact           string
	NextUpdate       string
	Mitigation       Mitigation
	PreviousSeverity Severity
}

// SeverityChanged reports whether a previous severity was given and differs
// from the current one.
func (r Request) SeverityChanged() bool {
	return r.PreviousSeverity != "" && r.PreviousSeverity != r.Severity
}

// Validate checks required fields and enum membership. The first failure is
// returned as a *FieldError wrapping ErrInvalidInput, ErrUnknownStage, or
// ErrUnknownSeverity.
func (d DraftRequest) Validate() (Request, error) {
	for _, f := range []struct{ name, value string }{
		{"stage", d.Stage},
		{"severity", d.Severity},
		{"summary", d.Summary},
		{"impact", d.Impact},
		{"next_update", d.NextUpdate},
	} {
		if !utf8.ValidString(f.value) {
			return Request{}, fieldError(f.name, ErrInvalidInput, "not valid UTF-8 text")
		}
	}

	if strings.TrimSpace(d.Stage) == "" {
		return Request{}, fieldError("stage", ErrInvalidInput, "required")
	}
	stage, err := ParseStage(d.Stage)
	if err != nil {
		return Request{}, fieldError("stage", err, strconv.Quote(d.Stage))
	}

	if strings.TrimSpace(d.Severity) == "" {
		return Request{}, fieldError("severity", ErrInvalidInput, "required")
	}
	severity, err := ParseSeverity(d.Severity)
	if err != nil {
		return Request{}, fieldError("severity", err, strconv.Quote(d.Severity))
	}

	if strings.TrimSpace(d.Summary) == "" {
		return Request{}, fieldError("summary", ErrInvalidInput, "required")
	}

	mitigation, err := ParseMitigation(d.Mitigation)
	if err != nil {
		return Request{}, fieldError("mitigation", err, strconv.Quote(d.Mitigation))
	}

	var previous Severity
	if strings.TrimSpace(d.PreviousSeverity) != "" {
		previous, err = ParseSeverity(d.PreviousSeverity)
		if err != nil {
			return Request{}, fieldError("previous_severity", err, strconv.Quote(d.PreviousSeverity))
		}
	}

	return Request{
		Stage:            stage,
		Severity:         severity,
		Summary:          d.Summary,
		Impact:           d.Impact,
		NextUpdate:       d.NextUpdate,
		Mitigation:       mitigation,
		PreviousSeverity: previous,
	}, nil
}
