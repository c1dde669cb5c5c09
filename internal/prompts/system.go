package prompts

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/aica/internal/incident"
)

// System defines the public contract for prompt domain operations.
type System interface {
	Source

	Handler() *Handler

	List(ctx context.Context, filters Filters) ([]Prompt, error)
	Find(ctx context.Context, id uuid.UUID) (*Prompt, error)
	Create(ctx context.Context, cmd CreateCommand) (*Prompt, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Prompt, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Activate(ctx context.Context, id uuid.UUID) (*Prompt, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*Prompt, error)
}

// Stages returns the stages prompts can target.
func Stages() []incident.Stage {
	return incident.Stages()
}
