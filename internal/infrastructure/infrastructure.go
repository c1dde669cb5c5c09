// Package infrastructure assembles the process-wide dependencies that domain
// systems share: lifecycle coordination, logging, the redaction engine, the
// generation capability, and the optional prompt database.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/aica/internal/config"
	"github.com/JaimeStill/aica/internal/generation"
	"github.com/JaimeStill/aica/internal/redaction"
	"github.com/JaimeStill/aica/pkg/database"
	"github.com/JaimeStill/aica/pkg/lifecycle"
)

// Infrastructure holds the core systems required by all domain modules.
// Everything here is read-only once New returns. Database is nil when the
// database is disabled.
type Infrastructure struct {
	Lifecycle  *lifecycle.Coordinator
	Logger     *slog.Logger
	Redaction  *redaction.Engine
	Generation generation.Capability
	Database   database.System
}

// New creates an Infrastructure from the application configuration, logging
// to stderr. It initializes all systems but does not start them; call Start
// separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	return NewWithLogger(cfg, slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

// NewWithLogger is New with a caller-supplied logger.
func NewWithLogger(cfg *config.Config, logger *slog.Logger) (*Infrastructure, error) {
	engine, err := redaction.New(&cfg.Redaction)
	if err != nil {
		return nil, fmt.Errorf("redaction init failed: %w", err)
	}

	capability, err := generation.New(&cfg.Generation)
	if err != nil {
		return nil, fmt.Errorf("generation init failed: %w", err)
	}

	infra := &Infrastructure{
		Lifecycle:  lifecycle.New(),
		Logger:     logger,
		Redaction:  engine,
		Generation: capability,
	}

	if cfg.Database.Enabled {
		db, err := database.New(&cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		infra.Database = db
	}

	logger.Info("infrastructure initialized",
		"generation", capability.Name(),
		"model", cfg.Generation.Model,
		"database", cfg.Database.Enabled,
	)

	return infra, nil
}

// Start registers infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if i.Database == nil {
		return nil
	}
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	return nil
}
