// Package drafts turns a validated incident request into customer-facing
// update text: it composes a stage prompt from redacted fields, asks the
// generation capability for the standard draft with a templated fallback,
// and formats the result for status pages and email.
package drafts

import (
	"github.com/google/uuid"

	"github.com/JaimeStill/aica/internal/incident"
)

// Source records how a draft body was produced.
type Source string

// Draft sources.
const (
	SourceTemplated Source = "templated"
	SourceGenerated Source = "generated"
)

// Variants holds the three draft lengths. Short and Detailed are always
// templated.
type Variants struct {
	Short    string `json:"short"`
	Standard string `json:"standard"`
	Detailed string `json:"detailed"`
}

// Draft is one generated incident update. Body always equals
// Variants.Standard.
type Draft struct {
	ID         uuid.UUID         `json:"id"`
	Stage      incident.Stage    `json:"stage"`
	Severity   incident.Severity `json:"severity"`
	Body       string            `json:"body"`
	Source     Source            `json:"source"`
	Variants   Variants          `json:"variants"`
	Model      string            `json:"model,omitempty"`
	NextUpdate string            `json:"next_update"`
}
