package drafts

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/aica/internal/generation"
	"github.com/JaimeStill/aica/pkg/formatting"
)

// DefaultTimeout bounds a generation call when none is configured.
const DefaultTimeout = 20 * time.Second

var errEmptyOutput = errors.New("empty output")

// Generator produces drafts, preferring the capability for the standard
// variant and falling back to templates on any failure.
type Generator struct {
	capability generation.Capability
	timeout    time.Duration
	logger     *slog.Logger
}

// NewGenerator creates a Generator. A nil capability disables live
// generation; a non-positive timeout uses DefaultTimeout.
func NewGenerator(capability generation.Capability, timeout time.Duration, logger *slog.Logger) *Generator {
	if capability == nil {
		capability = generation.Disabled{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Generator{
		capability: capability,
		timeout:    timeout,
		logger:     logger.With("system", "generator"),
	}
}

// Mode names the configured capability, or "template" when disabled.
func (g *Generator) Mode() string {
	return g.capability.Name()
}

// Generate always returns a complete draft. Generation failures are logged
// and absorbed.
func (g *Generator) Generate(ctx context.Context, p Prompt, opts generation.Options) Draft {
	variants := Templates(p)
	draft := Draft{
		ID:         uuid.New(),
		Stage:      p.Stage,
		Severity:   p.Severity,
		Source:     SourceTemplated,
		NextUpdate: p.Cadence.NextUpdate,
	}

	if g.capability.Name() != generation.ModeTemplate {
		text, err := g.call(ctx, p, opts)
		if err != nil {
			g.logger.Warn("generation failed, using template",
				"provider", g.capability.Name(),
				"stage", p.Stage,
				"error", err,
			)
		} else {
			variants.Standard = text
			draft.Source = SourceGenerated
			draft.Model = opts.Model
		}
	}

	draft.Variants = variants
	draft.Body = variants.Standard
	return draft
}

// call makes the single bounded attempt. The caller's cancellation is
// detached so only the timeout ends the call.
func (g *Generator) call(ctx context.Context, p Prompt, opts generation.Options) (string, error) {
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.timeout)
	defer cancel()

	text, err := g.capability.Generate(callCtx, p.Generation(), opts)
	if err != nil {
		return "", err
	}

	text = formatting.Unfence(text)
	if text == "" {
		return "", errEmptyOutput
	}
	return text, nil
}
