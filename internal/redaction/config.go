package redaction

import (
	"fmt"
	"os"
	"regexp"
)

// Config holds operator-tunable redaction settings.
type Config struct {
	InternalIDPattern string       `toml:"internal_id_pattern"`
	ExtraRules        []RuleConfig `toml:"extra_rules"`
}

// RuleConfig declares an additional substitution rule applied after the
// built-in rules.
type RuleConfig struct {
	Name        string `toml:"name"`
	Pattern     string `toml:"pattern"`
	Replacement string `toml:"replacement"`
}

// Env maps config fields to environment variable names.
type Env struct {
	InternalIDPattern string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. Extra rules from the
// overlay replace the base list.
func (c *Config) Merge(overlay *Config) {
	if overlay.InternalIDPattern != "" {
		c.InternalIDPattern = overlay.InternalIDPattern
	}
	if overlay.ExtraRules != nil {
		c.ExtraRules = overlay.ExtraRules
	}
}

func (c *Config) loadDefaults() {
	if c.InternalIDPattern == "" {
		c.InternalIDPattern = DefaultInternalIDPattern
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.InternalIDPattern != "" {
		if v := os.Getenv(env.InternalIDPattern); v != "" {
			c.InternalIDPattern = v
		}
	}
}

func (c *Config) validate() error {
	if _, err := regexp.Compile(c.InternalIDPattern); err != nil {
		return fmt.Errorf("invalid internal_id_pattern: %w", err)
	}
	for i, r := range c.ExtraRules {
		if r.Name == "" {
			return fmt.Errorf("extra_rules[%d]: name required", i)
		}
		if r.Pattern == "" {
			return fmt.Errorf("extra_rules[%d] %s: pattern required", i, r.Name)
		}
		if _, err := regexp.Compile(r.Pattern); err != nil {
			return fmt.Errorf("extra_rules[%d] %s: invalid pattern: %w", i, r.Name, err)
		}
	}
	return nil
}
