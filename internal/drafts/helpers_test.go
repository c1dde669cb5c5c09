package drafts_test

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JaimeStill/aica/internal/cadence"
	"github.com/JaimeStill/aica/internal/generation"
	"github.com/JaimeStill/aica/internal/incident"
	"github.com/JaimeStill/aica/internal/redaction"
)

var fixedNow = time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func engine(t *testing.T) *redaction.Engine {
	t.Helper()
	e, err := redaction.New(&redaction.Config{})
	if err != nil {
		t.Fatalf("redaction.New: %v", err)
	}
	return e
}

func sanitize(t *testing.T, s string) redaction.Text {
	t.Helper()
	text, _, err := engine(t).Sanitize(s)
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	return text
}

func decide(t *testing.T, sev incident.Severity, explicit string) cadence.Decision {
	t.Helper()
	d, err := cadence.Resolver{Now: func() time.Time { return fixedNow }}.Resolve(sev, explicit)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return d
}

// fakeCapability records calls and delegates to fn.
type fakeCapability struct {
	name  string
	calls atomic.Int32
	fn    func(ctx context.Context, p generation.Prompt, o generation.Options) (string, error)
}

func (f *fakeCapability) Name() string {
	if f.name == "" {
		return "fake"
	}
	return f.name
}

func (f *fakeCapability) Generate(ctx context.Context, p generation.Prompt, o generation.Options) (string, error) {
	f.calls.Add(1)
	return f.fn(ctx, p, o)
}

func respond(text string) *fakeCapability {
	return &fakeCapability{fn: func(context.Context, generation.Prompt, generation.Options) (string, error) {
		return text, nil
	}}
}

func blockUntilDone() *fakeCapability {
	return &fakeCapability{fn: func(ctx context.Context, _ generation.Prompt, _ generation.Options) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}
}

type fakeSource struct {
	text string
	err  error
}

func (f fakeSource) Instructions(context.Context, incident.Stage) (string, error) {
	return f.text, f.err
}

// stalledSource never answers before its context ends.
type stalledSource struct{}

func (stalledSource) Instructions(ctx context.Context, _ incident.Stage) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}
