package api

import (
	"github.com/JaimeStill/aica/internal/config"
	"github.com/JaimeStill/aica/internal/drafts"
	"github.com/JaimeStill/aica/internal/infrastructure"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Drafts drafts.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	scoped := *infra
	scoped.Logger = infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &scoped,
		Drafts: drafts.Config{
			Options: cfg.Generation.Options(),
			Timeout: cfg.Generation.TimeoutDuration(),
		},
	}
}
