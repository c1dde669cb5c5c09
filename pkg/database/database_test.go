package database_test

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/aica/pkg/database"
	"github.com/JaimeStill/aica/pkg/lifecycle"
)

func TestFinalizeDefaults(t *testing.T) {
	cfg := database.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("disabled config should not validate: %v", err)
	}

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"host", cfg.Host, "localhost"},
		{"port", cfg.Port, 5432},
		{"name", cfg.Name, "aica"},
		{"ssl_mode", cfg.SSLMode, "disable"},
		{"max_open_conns", cfg.MaxOpenConns, 25},
		{"conn_max_lifetime", cfg.ConnMaxLifetimeDuration(), 15 * time.Minute},
		{"conn_timeout", cfg.ConnTimeoutDuration(), 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %v, want %v", tt.got, tt.expected)
			}
		})
	}
}

func TestFinalizeEnv(t *testing.T) {
	t.Setenv("TEST_DB_ENABLED", "true")
	t.Setenv("TEST_DB_HOST", "db.internal")
	t.Setenv("TEST_DB_PORT", "6543")
	t.Setenv("TEST_DB_USER", "aica")

	cfg := database.Config{}
	err := cfg.Finalize(&database.Env{
		Enabled: "TEST_DB_ENABLED",
		Host:    "TEST_DB_HOST",
		Port:    "TEST_DB_PORT",
		User:    "TEST_DB_USER",
	})
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if !cfg.Enabled || cfg.Host != "db.internal" || cfg.Port != 6543 || cfg.User != "aica" {
		t.Errorf("config = %+v", cfg)
	}
	want := "host=db.internal port=6543 dbname=aica user=aica password= sslmode=disable"
	if cfg.Dsn() != want {
		t.Errorf("Dsn() = %q, want %q", cfg.Dsn(), want)
	}
}

func TestFinalizeValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     database.Config
		wantErr string
	}{
		{"missing user", database.Config{Enabled: true}, "user required"},
		{"bad port", database.Config{Enabled: true, User: "aica", Port: 70000}, "invalid port"},
		{"bad lifetime", database.Config{Enabled: true, User: "aica", ConnMaxLifetime: "forever"}, "invalid conn_max_lifetime"},
		{"bad timeout", database.Config{Enabled: true, User: "aica", ConnTimeout: "soon"}, "invalid conn_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := database.Config{Host: "localhost", Port: 5432, User: "aica"}
	base.Merge(&database.Config{Enabled: true, Host: "prodhost"})

	if !base.Enabled || base.Host != "prodhost" || base.Port != 5432 || base.User != "aica" {
		t.Errorf("merged = %+v", base)
	}
}

func TestStartPingFailure(t *testing.T) {
	cfg := database.Config{Enabled: true, User: "aica", Host: "127.0.0.1", Port: 1, ConnTimeout: "200ms"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	sys, err := database.New(&cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if sys.Connection().Stats().MaxOpenConnections != 25 {
		t.Errorf("pool size not applied")
	}

	lc := lifecycle.New()
	if err := sys.Start(lc); err != nil {
		t.Fatalf("Start: %v", err)
	}
	lc.WaitForStartup()

	if sys.Ready() {
		t.Error("database should not be ready when the ping fails")
	}
	if err := lc.Shutdown(time.Second); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}
