package prompts_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/JaimeStill/aica/internal/incident"
	"github.com/JaimeStill/aica/internal/prompts"
)

func ptr[T any](v T) *T { return &v }

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", prompts.ErrNotFound, http.StatusNotFound},
		{"duplicate", prompts.ErrDuplicate, http.StatusConflict},
		{"invalid stage", prompts.ErrInvalidStage, http.StatusBadRequest},
		{"invalid prompt", prompts.ErrInvalid, http.StatusBadRequest},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("find failed: %w", prompts.ErrNotFound), http.StatusNotFound},
		{"wrapped duplicate", fmt.Errorf("insert failed: %w", prompts.ErrDuplicate), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := prompts.MapHTTPStatus(tt.err)
			if got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestParseStage(t *testing.T) {
	for _, s := range []string{"initial", "Ongoing", "resolution"} {
		if _, err := prompts.ParseStage(s); err != nil {
			t.Errorf("ParseStage(%q) error: %v", s, err)
		}
	}

	for _, s := range []string{"classify", "", "banana"} {
		_, err := prompts.ParseStage(s)
		if !errors.Is(err, prompts.ErrInvalidStage) {
			t.Errorf("ParseStage(%q) error = %v, want ErrInvalidStage", s, err)
		}
	}
}

func TestInstructions(t *testing.T) {
	for _, stage := range prompts.Stages() {
		t.Run(string(stage), func(t *testing.T) {
			text, err := prompts.Instructions(stage)
			if err != nil {
				t.Fatalf("Instructions(%q) error: %v", stage, err)
			}
			if text == "" {
				t.Errorf("Instructions(%q) returned empty string", stage)
			}
		})
	}

	t.Run("stages differ", func(t *testing.T) {
		a, _ := prompts.Instructions(incident.StageInitial)
		b, _ := prompts.Instructions(incident.StageResolution)
		if a == b {
			t.Error("initial and resolution instructions should differ")
		}
	})

	t.Run("resolution closes", func(t *testing.T) {
		text, _ := prompts.Instructions(incident.StageResolution)
		if !strings.Contains(text, "no further updates") {
			t.Errorf("resolution instructions should state no further updates:\n%s", text)
		}
	})

	t.Run("invalid stage", func(t *testing.T) {
		_, err := prompts.Instructions("banana")
		if !errors.Is(err, prompts.ErrInvalidStage) {
			t.Errorf("Instructions(banana) error = %v, want ErrInvalidStage", err)
		}
	})
}

func TestDefaultsSource(t *testing.T) {
	var src prompts.Source = prompts.Defaults{}

	got, err := src.Instructions(context.Background(), incident.StageOngoing)
	if err != nil {
		t.Fatalf("Instructions: %v", err)
	}
	want, _ := prompts.Instructions(incident.StageOngoing)
	if got != want {
		t.Errorf("Defaults returned %q, want built-in", got)
	}
}

func TestFiltersFromQuery(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		f, err := prompts.FiltersFromQuery(url.Values{})
		if err != nil {
			t.Fatalf("FiltersFromQuery: %v", err)
		}
		if f.Stage != nil || f.Active != nil {
			t.Errorf("filters = %+v, want empty", f)
		}
	})

	t.Run("stage and active", func(t *testing.T) {
		f, err := prompts.FiltersFromQuery(url.Values{"stage": {"ongoing"}, "active": {"true"}})
		if err != nil {
			t.Fatalf("FiltersFromQuery: %v", err)
		}
		if f.Stage == nil || *f.Stage != incident.StageOngoing {
			t.Errorf("Stage = %v, want ongoing", f.Stage)
		}
		if f.Active == nil || !*f.Active {
			t.Errorf("Active = %v, want true", f.Active)
		}
	})

	t.Run("bad stage", func(t *testing.T) {
		_, err := prompts.FiltersFromQuery(url.Values{"stage": {"enhance"}})
		if !errors.Is(err, prompts.ErrInvalidStage) {
			t.Errorf("err = %v, want ErrInvalidStage", err)
		}
	})

	t.Run("bad active", func(t *testing.T) {
		_, err := prompts.FiltersFromQuery(url.Values{"active": {"maybe"}})
		if !errors.Is(err, prompts.ErrInvalid) {
			t.Errorf("err = %v, want ErrInvalid", err)
		}
	})
}
