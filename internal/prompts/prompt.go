// Package prompts owns the per-stage instructions given to the drafting
// model: built-in defaults and, when a database is configured, named
// overrides of which at most one per stage is active.
package prompts

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/aica/internal/incident"
)

// Prompt represents a named instruction override for an incident stage.
type Prompt struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Stage        incident.Stage `json:"stage"`
	Instructions string         `json:"instructions"`
	Description  *string        `json:"description"`
	Active       bool           `json:"active"`
}

// CreateCommand carries the data needed to create a new prompt override.
type CreateCommand struct {
	Name         string  `json:"name"`
	Stage        string  `json:"stage"`
	Instructions string  `json:"instructions"`
	Description  *string `json:"description"`
}

// UpdateCommand carries the data needed to update an existing prompt override.
type UpdateCommand = CreateCommand

func (c CreateCommand) validate() (incident.Stage, error) {
	stage, err := ParseStage(c.Stage)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(c.Name) == "" {
		return "", fmt.Errorf("%w: name required", ErrInvalid)
	}
	if strings.TrimSpace(c.Instructions) == "" {
		return "", fmt.Errorf("%w: instructions required", ErrInvalid)
	}
	return stage, nil
}

// ParseStage validates s as an incident stage, reporting ErrInvalidStage
// for unknown values.
func ParseStage(s string) (incident.Stage, error) {
	stage, err := incident.ParseStage(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidStage, s)
	}
	return stage, nil
}
