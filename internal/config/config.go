// Package config loads the service configuration from TOML files and
// AICA_* environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/aica/internal/generation"
	"github.com/JaimeStill/aica/internal/redaction"
	"github.com/JaimeStill/aica/pkg/database"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvAicaEnv             = "AICA_ENV"
	EnvAicaShutdownTimeout = "AICA_SHUTDOWN_TIMEOUT"
	EnvAicaVersion         = "AICA_VERSION"
)

var databaseEnv = &database.Env{
	Enabled:         "AICA_DB_ENABLED",
	Host:            "AICA_DB_HOST",
	Port:            "AICA_DB_PORT",
	Name:            "AICA_DB_NAME",
	User:            "AICA_DB_USER",
	Password:        "AICA_DB_PASSWORD",
	SSLMode:         "AICA_DB_SSL_MODE",
	MaxOpenConns:    "AICA_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "AICA_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "AICA_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "AICA_DB_CONN_TIMEOUT",
}

var generationEnv = &generation.Env{
	Provider:    "AICA_GENERATION_PROVIDER",
	Model:       "AICA_GENERATION_MODEL",
	Temperature: "AICA_GENERATION_TEMPERATURE",
	APIKey:      "AICA_GENERATION_API_KEY",
	BaseURL:     "AICA_GENERATION_BASE_URL",
	Timeout:     "AICA_GENERATION_TIMEOUT",

	OpenAIAPIKey:      "OPENAI_API_KEY",
	OpenAIModel:       "OPENAI_MODEL",
	OpenAITemperature: "OPENAI_TEMPERATURE",
	GeminiAPIKey:      "GEMINI_API_KEY",
}

var redactionEnv = &redaction.Env{
	InternalIDPattern: "AICA_REDACTION_INTERNAL_ID_PATTERN",
}

// Config is the root configuration for the AICA service.
type Config struct {
	Server          ServerConfig      `toml:"server"`
	API             APIConfig         `toml:"api"`
	Database        database.Config   `toml:"database"`
	Generation      generation.Config `toml:"generation"`
	Redaction       redaction.Config  `toml:"redaction"`
	ShutdownTimeout string            `toml:"shutdown_timeout"`
	Version         string            `toml:"version"`
}

// Env returns the AICA_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvAicaEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. Without a config.toml, defaults and environment
// variables provide everything.
func Load() (*Config, error) {
	return LoadFile(BaseConfigFile)
}

// LoadFile is Load with an explicit base file path. A missing base file is
// not an error.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		loaded, err := load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if overlay := overlayPath(); overlay != "" {
		o, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(o)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.API.Merge(&overlay.API)
	c.Database.Merge(&overlay.Database)
	c.Generation.Merge(&overlay.Generation)
	c.Redaction.Merge(&overlay.Redaction)
}

// Finalize applies defaults, environment overrides, and validation to every
// section.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Generation.Finalize(generationEnv); err != nil {
		return fmt.Errorf("generation: %w", err)
	}
	if err := c.Redaction.Finalize(redactionEnv); err != nil {
		return fmt.Errorf("redaction: %w", err)
	}
	return c.validateTimeouts()
}

// validateTimeouts requires the server write timeout to outlast a live
// generation call, so a slow provider still ends in a templated response.
func (c *Config) validateTimeouts() error {
	if !c.Generation.Enabled() {
		return nil
	}
	write := c.Server.WriteTimeoutDuration()
	gen := c.Generation.TimeoutDuration()
	if write > 0 && write <= gen {
		return fmt.Errorf(
			"server write_timeout (%s) must exceed generation timeout (%s)",
			c.Server.WriteTimeout, c.Generation.Timeout,
		)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvAicaShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvAicaVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvAicaEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
