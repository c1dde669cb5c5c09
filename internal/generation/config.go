package generation

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider names.
const (
	ProviderNone   = ""
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

var defaultModels = map[string]string{
	ProviderOpenAI: "gpt-4o-mini",
	ProviderGemini: "gemini-2.5-flash",
}

// Config selects and parameterizes the generation provider. An empty
// provider disables live generation.
type Config struct {
	Provider    string   `toml:"provider"`
	Model       string   `toml:"model"`
	Temperature *float64 `toml:"temperature"`
	APIKey      string   `toml:"api_key"`
	BaseURL     string   `toml:"base_url"`
	Timeout     string   `toml:"timeout"`
}

// Env maps config fields to environment variable names. The vendor
// variables are consulted before the service-specific ones, so the latter
// win when both are set.
type Env struct {
	Provider    string
	Model       string
	Temperature string
	APIKey      string
	BaseURL     string
	Timeout     string

	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAITemperature string
	GeminiAPIKey      string
}

// Enabled reports whether a live provider is configured.
func (c *Config) Enabled() bool {
	return c.Provider != ProviderNone
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Options returns the per-call options derived from the config.
func (c *Config) Options() Options {
	opts := Options{Model: c.Model}
	if c.Temperature != nil {
		opts.Temperature = *c.Temperature
	}
	return opts
}

// Finalize applies defaults, environment variable overrides, and validation.
// With no provider named, OPENAI_API_KEY (then GEMINI_API_KEY) in the
// environment selects one.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	if c.Model == "" {
		c.Model = defaultModels[c.Provider]
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.Temperature != nil {
		t := *overlay.Temperature
		c.Temperature = &t
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *Config) loadDefaults() {
	if c.Temperature == nil {
		t := 0.3
		c.Temperature = &t
	}
	if c.Timeout == "" {
		c.Timeout = "20s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := getenv(env.Provider); v != "" {
		c.Provider = v
	}
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "none" {
		c.Provider = ProviderNone
	}

	if c.Provider == ProviderNone && c.APIKey == "" {
		if v := getenv(env.OpenAIAPIKey); v != "" {
			c.Provider = ProviderOpenAI
		} else if v := getenv(env.GeminiAPIKey); v != "" {
			c.Provider = ProviderGemini
		}
	}

	switch c.Provider {
	case ProviderOpenAI:
		if v := getenv(env.OpenAIAPIKey); v != "" {
			c.APIKey = v
		}
		if v := getenv(env.OpenAIModel); v != "" {
			c.Model = v
		}
		c.setTemperature(getenv(env.OpenAITemperature))
	case ProviderGemini:
		if v := getenv(env.GeminiAPIKey); v != "" {
			c.APIKey = v
		}
	}

	if v := getenv(env.Model); v != "" {
		c.Model = v
	}
	c.setTemperature(getenv(env.Temperature))
	if v := getenv(env.APIKey); v != "" {
		c.APIKey = v
	}
	if v := getenv(env.BaseURL); v != "" {
		c.BaseURL = v
	}
	if v := getenv(env.Timeout); v != "" {
		c.Timeout = v
	}
}

func (c *Config) setTemperature(v string) {
	if v == "" {
		return
	}
	if t, err := strconv.ParseFloat(v, 64); err == nil {
		c.Temperature = &t
	}
}

func (c *Config) validate() error {
	switch c.Provider {
	case ProviderNone:
	case ProviderOpenAI:
		if c.APIKey == "" && c.BaseURL == "" {
			return fmt.Errorf("openai: api_key required unless base_url names a compatible endpoint")
		}
	case ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("gemini: api_key required")
		}
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}

	if c.Enabled() && c.Model == "" {
		return fmt.Errorf("model required")
	}
	if t := *c.Temperature; t < 0 || t > 1 {
		return fmt.Errorf("temperature must be within [0, 1], got %v", t)
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

func getenv(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
