// Package generation abstracts the external text-generation service used to
// draft the standard incident update.
package generation

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable marks any failure to obtain generated text: the capability
// is disabled, the provider call failed, or the output was empty.
var ErrUnavailable = errors.New("generation unavailable")

// Prompt is a two-part chat prompt.
type Prompt struct {
	System string
	User   string
}

// Options are per-call generation parameters.
type Options struct {
	Model       string
	Temperature float64
}

// Capability generates text for a prompt. Implementations make a single
// attempt and honor ctx for cancellation and deadlines.
type Capability interface {
	Name() string
	Generate(ctx context.Context, prompt Prompt, opts Options) (string, error)
}

// ModeTemplate is the name reported when no live provider is configured.
const ModeTemplate = "template"

// Disabled is the capability used when no provider is configured.
type Disabled struct{}

func (Disabled) Name() string {
	return ModeTemplate
}

func (Disabled) Generate(context.Context, Prompt, Options) (string, error) {
	return "", ErrUnavailable
}

// New selects the capability for cfg. It is called once at startup.
func New(cfg *Config) (Capability, error) {
	switch cfg.Provider {
	case ProviderNone:
		return Disabled{}, nil
	case ProviderOpenAI:
		return NewOpenAI(cfg), nil
	case ProviderGemini:
		return NewGemini(context.Background(), cfg)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

func unavailable(provider string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, provider, err)
}
