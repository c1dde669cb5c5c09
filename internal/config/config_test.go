package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JaimeStill/aica/internal/config"
)

const baseConfig = `
shutdown_timeout = "45s"
version = "1.2.0"

[server]
host = "127.0.0.1"
port = 8080

[api]
base_path = "/api"
max_body_size = "32KB"

[api.cors]
enabled = true
origins = ["https://status.example.com"]

[database]
enabled = false
name = "aica"
user = "aica"

[generation]
provider = "openai"
api_key = "sk-base"
temperature = 0.2
timeout = "10s"

[redaction]
internal_id_pattern = '(?i)\bticket[ -]?\d{4,}\b'

[[redaction.extra_rules]]
name = "customer_ref"
pattern = 'CUST-\d+'
replacement = "[REDACTED_CUSTOMER]"
`

const overlayConfig = `
[server]
port = 9090

[database]
enabled = true
host = "prodhost"
`

// isolate clears every variable the loader reads so the host environment
// cannot leak into assertions.
func isolate(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"AICA_ENV", "AICA_SHUTDOWN_TIMEOUT", "AICA_VERSION",
		"AICA_SERVER_HOST", "AICA_SERVER_PORT", "AICA_SERVER_WRITE_TIMEOUT",
		"AICA_API_BASE_PATH", "AICA_API_MAX_BODY_SIZE",
		"AICA_DB_ENABLED", "AICA_DB_HOST", "AICA_DB_NAME", "AICA_DB_USER",
		"AICA_GENERATION_PROVIDER", "AICA_GENERATION_MODEL", "AICA_GENERATION_TEMPERATURE",
		"AICA_GENERATION_API_KEY", "AICA_GENERATION_BASE_URL", "AICA_GENERATION_TIMEOUT",
		"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_TEMPERATURE", "GEMINI_API_KEY",
		"AICA_REDACTION_INTERNAL_ID_PATTERN",
	} {
		t.Setenv(name, "")
	}
}

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"shutdown_timeout", cfg.ShutdownTimeoutDuration(), 30 * time.Second},
		{"version", cfg.Version, "0.1.0"},
		{"env", cfg.Env(), "local"},
		{"server addr", cfg.Server.Addr(), "0.0.0.0:8080"},
		{"base_path", cfg.API.BasePath, "/api"},
		{"max_body_size", cfg.API.MaxBodySizeBytes(), int64(64 * 1024)},
		{"database enabled", cfg.Database.Enabled, false},
		{"generation enabled", cfg.Generation.Enabled(), false},
		{"generation timeout", cfg.Generation.TimeoutDuration(), 20 * time.Second},
		{"temperature", cfg.Generation.Options().Temperature, 0.3},
		{"internal id pattern", cfg.Redaction.InternalIDPattern, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %v, want %v", tt.got, tt.expected)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	t.Chdir(dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.ShutdownTimeout != "45s" || cfg.Version != "1.2.0" {
		t.Errorf("root: got %q %q", cfg.ShutdownTimeout, cfg.Version)
	}
	if cfg.Server.Addr() != "127.0.0.1:8080" {
		t.Errorf("addr: got %s", cfg.Server.Addr())
	}
	if cfg.API.MaxBodySizeBytes() != 32*1024 {
		t.Errorf("max body: got %d", cfg.API.MaxBodySizeBytes())
	}
	if !cfg.API.CORS.Enabled || len(cfg.API.CORS.Origins) != 1 {
		t.Errorf("cors: got %+v", cfg.API.CORS)
	}
	if cfg.Generation.Provider != "openai" || cfg.Generation.Model != "gpt-4o-mini" {
		t.Errorf("generation: got %s/%s", cfg.Generation.Provider, cfg.Generation.Model)
	}
	if got := cfg.Generation.Options().Temperature; got != 0.2 {
		t.Errorf("temperature: got %v, want 0.2", got)
	}
	if len(cfg.Redaction.ExtraRules) != 1 || cfg.Redaction.ExtraRules[0].Name != "customer_ref" {
		t.Errorf("extra rules: got %+v", cfg.Redaction.ExtraRules)
	}
}

func TestLoadWithOverlay(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	t.Chdir(dir)
	t.Setenv("AICA_ENV", "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port: got %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server host: got %s, want base value", cfg.Server.Host)
	}
	if !cfg.Database.Enabled || cfg.Database.Host != "prodhost" {
		t.Errorf("database: got %+v", cfg.Database)
	}
	if cfg.Database.User != "aica" {
		t.Errorf("database user: got %s, want base value", cfg.Database.User)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Chdir(t.TempDir())

	t.Setenv("AICA_SERVER_PORT", "9191")
	t.Setenv("AICA_API_MAX_BODY_SIZE", "1MB")
	t.Setenv("AICA_SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("OPENAI_MODEL", "gpt-4.1-mini")
	t.Setenv("OPENAI_TEMPERATURE", "0.7")
	t.Setenv("AICA_REDACTION_INTERNAL_ID_PATTERN", `INC-\d+`)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9191 {
		t.Errorf("port: got %d", cfg.Server.Port)
	}
	if cfg.API.MaxBodySizeBytes() != 1024*1024 {
		t.Errorf("max body: got %d", cfg.API.MaxBodySizeBytes())
	}
	if cfg.ShutdownTimeoutDuration() != 5*time.Second {
		t.Errorf("shutdown: got %v", cfg.ShutdownTimeoutDuration())
	}
	if cfg.Generation.Provider != "openai" || cfg.Generation.APIKey != "sk-env" {
		t.Errorf("generation: got %s key=%q", cfg.Generation.Provider, cfg.Generation.APIKey)
	}
	opts := cfg.Generation.Options()
	if opts.Model != "gpt-4.1-mini" || opts.Temperature != 0.7 {
		t.Errorf("options: got %+v", opts)
	}
	if cfg.Redaction.InternalIDPattern != `INC-\d+` {
		t.Errorf("internal id: got %q", cfg.Redaction.InternalIDPattern)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad port", "AICA_SERVER_PORT", "70000"},
		{"bad shutdown", "AICA_SHUTDOWN_TIMEOUT", "soon"},
		{"bad body size", "AICA_API_MAX_BODY_SIZE", "lots"},
		{"database missing user", "AICA_DB_ENABLED", "true"},
		{"unknown provider", "AICA_GENERATION_PROVIDER", "llamafarm"},
		{"openai without key", "AICA_GENERATION_PROVIDER", "openai"},
		{"temperature out of range", "AICA_GENERATION_TEMPERATURE", "1.5"},
		{"bad generation timeout", "AICA_GENERATION_TIMEOUT", "-1s"},
		{"bad internal id pattern", "AICA_REDACTION_INTERNAL_ID_PATTERN", "("},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.val)

			if _, err := config.Load(); err == nil {
				t.Errorf("expected error for %s=%q", tt.key, tt.val)
			}
		})
	}
}

func TestLoadWriteTimeoutCoversGeneration(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		write    string
		gen      string
		wantErr  bool
	}{
		{"live generation outlasts writes", "openai", "", "3m", true},
		{"equal timeouts", "openai", "30s", "30s", true},
		{"write timeout longer", "openai", "5m", "3m", false},
		{"generation disabled", "", "", "3m", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Chdir(t.TempDir())
			t.Setenv("AICA_GENERATION_PROVIDER", tt.provider)
			t.Setenv("AICA_GENERATION_API_KEY", "sk-test")
			t.Setenv("AICA_GENERATION_TIMEOUT", tt.gen)
			t.Setenv("AICA_SERVER_WRITE_TIMEOUT", tt.write)

			_, err := config.Load()
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMalformedFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", "[server\nport = ")
	t.Chdir(dir)

	if _, err := config.Load(); err == nil {
		t.Error("expected parse error")
	}
}
