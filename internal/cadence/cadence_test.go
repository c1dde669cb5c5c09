package cadence_test

import (
	"errors"
	"testing"
	"time"

	"github.com/JaimeStill/aica/internal/cadence"
	"github.com/JaimeStill/aica/internal/incident"
)

var fixed = time.Date(2026, 3, 4, 10, 15, 0, 0, time.FixedZone("EST", -5*60*60))

func TestResolveComputed(t *testing.T) {
	r := cadence.Resolver{Now: func() time.Time { return fixed }}

	tests := []struct {
		severity incident.Severity
		interval time.Duration
		label    string
		next     string
	}{
		{incident.SEV1, 30 * time.Minute, "30 minutes", "2026-03-04T15:45:00Z"},
		{incident.SEV2, 60 * time.Minute, "60 minutes", "2026-03-04T16:15:00Z"},
		{incident.SEV3, 4 * time.Hour, "4 hours", "2026-03-04T19:15:00Z"},
		{incident.SEV4, 24 * time.Hour, "24 hours", "2026-03-05T15:15:00Z"},
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			d, err := r.Resolve(tt.severity, "")
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if d.Interval != tt.interval {
				t.Errorf("Interval = %v, want %v", d.Interval, tt.interval)
			}
			if d.Label != tt.label {
				t.Errorf("Label = %q, want %q", d.Label, tt.label)
			}
			if d.NextUpdate != tt.next {
				t.Errorf("NextUpdate = %q, want %q", d.NextUpdate, tt.next)
			}
			if d.Explicit {
				t.Error("Explicit = true, want false")
			}
		})
	}
}

func TestResolveExplicitWins(t *testing.T) {
	r := cadence.Resolver{Now: func() time.Time { return fixed }}

	for _, explicit := range []string{"in 15 minutes", "2026-03-04T12:00:00Z", " after the vendor call "} {
		t.Run(explicit, func(t *testing.T) {
			d, err := r.Resolve(incident.SEV3, explicit)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if d.NextUpdate != explicit {
				t.Errorf("NextUpdate = %q, want %q", d.NextUpdate, explicit)
			}
			if !d.Explicit {
				t.Error("Explicit = false, want true")
			}
			if d.Interval != 4*time.Hour {
				t.Errorf("Interval = %v, want 4h", d.Interval)
			}
		})
	}
}

func TestResolveBlankExplicitComputes(t *testing.T) {
	r := cadence.Resolver{Now: func() time.Time { return fixed }}

	d, err := r.Resolve(incident.SEV1, "   ")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if d.Explicit {
		t.Error("blank explicit value should not count as explicit")
	}
	if d.NextUpdate != "2026-03-04T15:45:00Z" {
		t.Errorf("NextUpdate = %q", d.NextUpdate)
	}
}

func TestResolveUnknownSeverity(t *testing.T) {
	var r cadence.Resolver

	_, err := r.Resolve(incident.Severity("SEV9"), "")
	if !errors.Is(err, incident.ErrUnknownSeverity) {
		t.Fatalf("err = %v, want ErrUnknownSeverity", err)
	}
}

func TestResolveDeterministic(t *testing.T) {
	r := cadence.Resolver{Now: func() time.Time { return fixed }}

	a, _ := r.Resolve(incident.SEV2, "")
	b, _ := r.Resolve(incident.SEV2, "")
	if a != b {
		t.Errorf("decisions differ: %+v vs %+v", a, b)
	}
}
