package drafts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JaimeStill/aica/internal/cadence"
	"github.com/JaimeStill/aica/internal/generation"
	"github.com/JaimeStill/aica/internal/incident"
	"github.com/JaimeStill/aica/internal/prompts"
	"github.com/JaimeStill/aica/internal/redaction"
)

var wordLimits = map[incident.Stage]int{
	incident.StageInitial:    150,
	incident.StageOngoing:    200,
	incident.StageResolution: 250,
}

// WordLimit returns the maximum draft length in words for stage.
func WordLimit(stage incident.Stage) (int, error) {
	limit, ok := wordLimits[stage]
	if !ok {
		return 0, fmt.Errorf("%w: %q", incident.ErrUnknownStage, stage)
	}
	return limit, nil
}

// Input is everything the composer needs. Free-text fields are
// redaction.Text, so unsanitized text cannot reach a prompt.
type Input struct {
	Stage            incident.Stage
	Severity         incident.Severity
	PreviousSeverity incident.Severity
	Mitigation       incident.Mitigation
	Summary          redaction.Text
	Impact           redaction.Text
	Cadence          cadence.Decision
}

// SeverityChanged reports whether an ongoing update announces a new
// severity.
func (in Input) SeverityChanged() bool {
	return in.Stage == incident.StageOngoing &&
		in.PreviousSeverity != "" &&
		in.PreviousSeverity != in.Severity
}

// Prompt is a composed, stage-specific prompt.
type Prompt struct {
	Input
	WordLimit int
	System    string
	User      string
}

// Generation returns the two-part prompt sent to the capability.
func (p Prompt) Generation() generation.Prompt {
	return generation.Prompt{System: p.System, User: p.User}
}

// DefaultLookupTimeout bounds an instruction lookup when none is configured.
const DefaultLookupTimeout = 2 * time.Second

// Composer builds prompts from stage instructions and sanitized fields.
type Composer struct {
	source  prompts.Source
	timeout time.Duration
	logger  *slog.Logger
}

// NewComposer creates a Composer. A nil source uses the built-in
// instructions; a non-positive timeout uses DefaultLookupTimeout.
func NewComposer(source prompts.Source, timeout time.Duration, logger *slog.Logger) *Composer {
	if source == nil {
		source = prompts.Defaults{}
	}
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	return &Composer{
		source:  source,
		timeout: timeout,
		logger:  logger.With("system", "composer"),
	}
}

// Compose builds the prompt for in. Unknown stages fail with
// incident.ErrUnknownStage and unknown severities with
// incident.ErrUnknownSeverity.
func (c *Composer) Compose(ctx context.Context, in Input) (Prompt, error) {
	limit, err := WordLimit(in.Stage)
	if err != nil {
		return Prompt{}, err
	}
	if !in.Severity.Valid() {
		return Prompt{}, fmt.Errorf("%w: %q", incident.ErrUnknownSeverity, in.Severity)
	}

	return Prompt{
		Input:     in,
		WordLimit: limit,
		System:    prompts.TonePolicy + "\n\n" + c.instructions(ctx, in.Stage),
		User:      userSection(in, limit),
	}, nil
}

// instructions falls back to the built-in text when the source fails or
// does not answer within the lookup timeout.
func (c *Composer) instructions(ctx context.Context, stage incident.Stage) string {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	text, err := c.source.Instructions(ctx, stage)
	if err == nil && strings.TrimSpace(text) != "" {
		return text
	}
	if err != nil {
		c.logger.Warn("instruction lookup failed, using default", "stage", stage, "error", err)
	}
	text, _ = prompts.Instructions(stage)
	return text
}

func userSection(in Input, limit int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Stage: %s\n", in.Stage)
	fmt.Fprintf(&b, "Severity: %s (%s)\n", in.Severity, in.Severity.Descriptor())
	fmt.Fprintf(&b, "Mitigation status: %s\n", in.Mitigation)

	switch {
	case in.Stage == incident.StageResolution:
		b.WriteString("Next update: none, no further updates are scheduled\n")
	case in.SeverityChanged():
		fmt.Fprintf(&b, "Severity change: %s -> %s\n", in.PreviousSeverity, in.Severity)
		fmt.Fprintf(&b, "New update cadence: every %s\n", in.Cadence.Label)
		fmt.Fprintf(&b, "Next update: %s\n", in.Cadence.NextUpdate)
	case in.Stage == incident.StageOngoing:
		fmt.Fprintf(&b, "Update cadence: unchanged, every %s\n", in.Cadence.Label)
		fmt.Fprintf(&b, "Next update: %s\n", in.Cadence.NextUpdate)
	default:
		fmt.Fprintf(&b, "Update cadence: every %s\n", in.Cadence.Label)
		fmt.Fprintf(&b, "Next update: %s\n", in.Cadence.NextUpdate)
	}

	fmt.Fprintf(&b, "Impact: %s\n", impactText(in.Impact))
	fmt.Fprintf(&b, "Summary: %s\n\n", in.Summary.String())
	fmt.Fprintf(&b, "Length bound: at most %d words.\n", limit)
	b.WriteString("Output plain text suitable for customers.")

	return b.String()
}

func impactText(t redaction.Text) string {
	if t.Empty() {
		return "unspecified scope"
	}
	return strings.TrimSpace(t.String())
}
