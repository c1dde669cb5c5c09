package generation_test

import (
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/aica/internal/generation"
)

var testEnv = &generation.Env{
	Provider:          "TEST_GEN_PROVIDER",
	Model:             "TEST_GEN_MODEL",
	Temperature:       "TEST_GEN_TEMPERATURE",
	APIKey:            "TEST_GEN_API_KEY",
	BaseURL:           "TEST_GEN_BASE_URL",
	Timeout:           "TEST_GEN_TIMEOUT",
	OpenAIAPIKey:      "TEST_OPENAI_API_KEY",
	OpenAIModel:       "TEST_OPENAI_MODEL",
	OpenAITemperature: "TEST_OPENAI_TEMPERATURE",
	GeminiAPIKey:      "TEST_GEMINI_API_KEY",
}

func ptr[T any](v T) *T { return &v }

func TestConfigDefaults(t *testing.T) {
	var c generation.Config
	if err := c.Finalize(testEnv); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if c.Enabled() {
		t.Errorf("Provider = %q, want disabled", c.Provider)
	}
	if *c.Temperature != 0.3 {
		t.Errorf("Temperature = %v, want 0.3", *c.Temperature)
	}
	if c.TimeoutDuration() != 20*time.Second {
		t.Errorf("Timeout = %v, want 20s", c.TimeoutDuration())
	}
}

func TestConfigOpenAIKeySelectsProvider(t *testing.T) {
	t.Setenv("TEST_OPENAI_API_KEY", "sk-test")
	t.Setenv("TEST_OPENAI_MODEL", "gpt-4.1-mini")
	t.Setenv("TEST_OPENAI_TEMPERATURE", "0.5")

	var c generation.Config
	if err := c.Finalize(testEnv); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if c.Provider != generation.ProviderOpenAI {
		t.Errorf("Provider = %q, want openai", c.Provider)
	}
	if c.APIKey != "sk-test" {
		t.Errorf("APIKey = %q", c.APIKey)
	}
	if c.Model != "gpt-4.1-mini" {
		t.Errorf("Model = %q", c.Model)
	}
	if *c.Temperature != 0.5 {
		t.Errorf("Temperature = %v", *c.Temperature)
	}
}

func TestConfigProviderDefaultModel(t *testing.T) {
	tests := []struct {
		provider string
		envKey   string
		want     string
	}{
		{generation.ProviderOpenAI, "TEST_OPENAI_API_KEY", "gpt-4o-mini"},
		{generation.ProviderGemini, "TEST_GEMINI_API_KEY", "gemini-2.5-flash"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			t.Setenv(tt.envKey, "key")
			c := generation.Config{Provider: tt.provider}
			if err := c.Finalize(testEnv); err != nil {
				t.Fatalf("Finalize: %v", err)
			}
			if c.Model != tt.want {
				t.Errorf("Model = %q, want %q", c.Model, tt.want)
			}
		})
	}
}

func TestConfigServiceEnvWins(t *testing.T) {
	t.Setenv("TEST_OPENAI_API_KEY", "vendor")
	t.Setenv("TEST_GEN_API_KEY", "service")
	t.Setenv("TEST_GEN_MODEL", "llama3.1:8b")
	t.Setenv("TEST_GEN_TIMEOUT", "5s")

	c := generation.Config{Provider: "OpenAI"}
	if err := c.Finalize(testEnv); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if c.APIKey != "service" {
		t.Errorf("APIKey = %q, want service", c.APIKey)
	}
	if c.Model != "llama3.1:8b" {
		t.Errorf("Model = %q", c.Model)
	}
	if c.TimeoutDuration() != 5*time.Second {
		t.Errorf("Timeout = %v", c.TimeoutDuration())
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  generation.Config
		want string
	}{
		{"temperature high", generation.Config{Temperature: ptr(1.5)}, "temperature"},
		{"temperature low", generation.Config{Temperature: ptr(-0.1)}, "temperature"},
		{"bad timeout", generation.Config{Timeout: "soon"}, "timeout"},
		{"zero timeout", generation.Config{Timeout: "0s"}, "timeout"},
		{"unknown provider", generation.Config{Provider: "bard"}, "unknown provider"},
		{"openai without key", generation.Config{Provider: "openai"}, "api_key"},
		{"gemini without key", generation.Config{Provider: "gemini"}, "api_key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(testEnv)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestConfigOpenAICompatibleWithoutKey(t *testing.T) {
	c := generation.Config{Provider: "openai", BaseURL: "http://localhost:11434/v1/", Model: "llama3.1:8b"}
	if err := c.Finalize(testEnv); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
}

func TestConfigMerge(t *testing.T) {
	base := generation.Config{Provider: "openai", Model: "a", Temperature: ptr(0.2), Timeout: "10s"}
	base.Merge(&generation.Config{Model: "b", Temperature: ptr(0.0)})

	if base.Model != "b" {
		t.Errorf("Model = %q, want b", base.Model)
	}
	if *base.Temperature != 0 {
		t.Errorf("Temperature = %v, want 0", *base.Temperature)
	}
	if base.Provider != "openai" || base.Timeout != "10s" {
		t.Errorf("unexpected overwrite: %+v", base)
	}
}
