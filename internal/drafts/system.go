package drafts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/aica/internal/cadence"
	"github.com/JaimeStill/aica/internal/generation"
	"github.com/JaimeStill/aica/internal/incident"
	"github.com/JaimeStill/aica/internal/prompts"
	"github.com/JaimeStill/aica/internal/redaction"
)

// System defines the public contract for the drafting pipeline.
type System interface {
	Handler() *Handler
	Draft(ctx context.Context, req incident.DraftRequest) (*Result, error)
	Cadence(severity, nextUpdate string) (cadence.Decision, error)
}

// Note is a redaction note tagged with the request field it applies to.
type Note struct {
	Field string `json:"field"`
	redaction.Note
}

// Guardrails reports what redaction did to the request.
type Guardrails struct {
	Notes   []Note `json:"notes"`
	Blocked bool   `json:"blocked"`
}

// Meta describes how the draft was produced.
type Meta struct {
	Stage      incident.Stage      `json:"stage"`
	Severity   incident.Severity   `json:"severity"`
	Mitigation incident.Mitigation `json:"mitigation"`
	NextUpdate string              `json:"next_update"`
	Interval   string              `json:"interval"`
	Explicit   bool                `json:"next_update_explicit"`
	WordLimit  int                 `json:"word_limit"`
	Source     Source              `json:"source"`
	LLMMode    string              `json:"llm_mode"`
	LLMUsed    bool                `json:"llm_used"`
	LLMModel   *string             `json:"llm_model"`
}

// Result is the full pipeline output for one request.
type Result struct {
	ID         uuid.UUID  `json:"id"`
	Drafts     Variants   `json:"drafts"`
	Exports    Bundle     `json:"exports"`
	Guardrails Guardrails `json:"guardrails"`
	Meta       Meta       `json:"meta"`
}

// Config parameterizes the pipeline. Now defaults to time.Now and a zero
// LookupTimeout to DefaultLookupTimeout.
type Config struct {
	Options       generation.Options
	Timeout       time.Duration
	LookupTimeout time.Duration
	Now           func() time.Time
}

type pipeline struct {
	engine    *redaction.Engine
	resolver  cadence.Resolver
	composer  *Composer
	generator *Generator
	formatter *Formatter
	options   generation.Options
	logger    *slog.Logger
}

// New assembles the drafting pipeline. All dependencies are read-only after
// construction, so the System is safe for concurrent use.
func New(
	engine *redaction.Engine,
	source prompts.Source,
	capability generation.Capability,
	cfg Config,
	logger *slog.Logger,
) System {
	logger = logger.With("system", "drafts")
	return &pipeline{
		engine:    engine,
		resolver:  cadence.Resolver{Now: cfg.Now},
		composer:  NewComposer(source, cfg.LookupTimeout, logger),
		generator: NewGenerator(capability, cfg.Timeout, logger),
		formatter: NewFormatter(),
		options:   cfg.Options,
		logger:    logger,
	}
}

func (p *pipeline) Handler() *Handler {
	return NewHandler(p, p.logger)
}

// Draft validates req, redacts its free text, resolves cadence, composes the
// prompt, generates the draft, and formats exports. Validation errors return
// before any redaction or generation.
func (p *pipeline) Draft(ctx context.Context, req incident.DraftRequest) (*Result, error) {
	r, err := req.Validate()
	if err != nil {
		return nil, err
	}

	summary, summaryNotes, err := p.engine.Sanitize(r.Summary)
	if err != nil {
		return nil, &incident.FieldError{Field: "summary", Err: err}
	}
	impact, impactNotes, err := p.engine.Sanitize(r.Impact)
	if err != nil {
		return nil, &incident.FieldError{Field: "impact", Err: err}
	}

	decision, err := p.resolver.Resolve(r.Severity, r.NextUpdate)
	if err != nil {
		return nil, &incident.FieldError{Field: "severity", Err: err}
	}

	prompt, err := p.composer.Compose(ctx, Input{
		Stage:            r.Stage,
		Severity:         r.Severity,
		PreviousSeverity: r.PreviousSeverity,
		Mitigation:       r.Mitigation,
		Summary:          summary,
		Impact:           impact,
		Cadence:          decision,
	})
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}

	draft := p.generator.Generate(ctx, prompt, p.options)

	bundle, err := p.formatter.Format(draft)
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}

	meta := Meta{
		Stage:      draft.Stage,
		Severity:   draft.Severity,
		Mitigation: r.Mitigation,
		NextUpdate: decision.NextUpdate,
		Interval:   decision.Label,
		Explicit:   decision.Explicit,
		WordLimit:  prompt.WordLimit,
		Source:     draft.Source,
		LLMMode:    p.generator.Mode(),
		LLMUsed:    draft.Source == SourceGenerated,
	}
	if meta.LLMUsed {
		meta.LLMModel = &draft.Model
	}

	p.logger.Info("draft generated",
		"id", draft.ID,
		"stage", draft.Stage,
		"severity", draft.Severity,
		"source", draft.Source,
	)

	return &Result{
		ID:      draft.ID,
		Drafts:  draft.Variants,
		Exports: bundle,
		Guardrails: Guardrails{
			Notes: append(tagNotes("summary", summaryNotes), tagNotes("impact", impactNotes)...),
		},
		Meta: meta,
	}, nil
}

// Cadence resolves the update cadence for a raw severity and optional
// explicit next-update value.
func (p *pipeline) Cadence(severity, nextUpdate string) (cadence.Decision, error) {
	sev, err := incident.ParseSeverity(severity)
	if err != nil {
		return cadence.Decision{}, &incident.FieldError{Field: "severity", Err: err}
	}
	return p.resolver.Resolve(sev, nextUpdate)
}

func tagNotes(field string, notes []redaction.Note) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		out = append(out, Note{Field: field, Note: n})
	}
	return out
}
