package drafts

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/aica/internal/cadence"
	"github.com/JaimeStill/aica/internal/incident"
	"github.com/JaimeStill/aica/pkg/handlers"
	"github.com/JaimeStill/aica/pkg/routes"
)

// Handler provides HTTP endpoints for drafting.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// StageInfo describes a stage and its draft length bound.
type StageInfo struct {
	Stage     incident.Stage `json:"stage"`
	WordLimit int            `json:"word_limit"`
}

// SeverityInfo describes a severity and its update cadence.
type SeverityInfo struct {
	Severity   incident.Severity `json:"severity"`
	Descriptor string            `json:"descriptor"`
	Interval   string            `json:"interval"`
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "drafts"),
	}
}

// Routes returns the route group definition for drafting endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/drafts",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "GET", Pattern: "/stages", Handler: h.Stages},
			{Method: "GET", Pattern: "/severities", Handler: h.Severities},
			{Method: "GET", Pattern: "/cadence", Handler: h.Cadence},
		},
	}
}

// Create runs the drafting pipeline for a JSON DraftRequest body.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req incident.DraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		status := MapHTTPStatus(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		handlers.RespondError(w, h.logger, status, fmt.Errorf("decode request: %w", err))
		return
	}

	result, err := h.sys.Draft(r.Context(), req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Stages lists the incident stages with their word limits.
func (h *Handler) Stages(w http.ResponseWriter, r *http.Request) {
	stages := incident.Stages()
	out := make([]StageInfo, 0, len(stages))
	for _, s := range stages {
		limit, _ := WordLimit(s)
		out = append(out, StageInfo{Stage: s, WordLimit: limit})
	}
	handlers.RespondJSON(w, http.StatusOK, out)
}

// Severities lists the severities with their update cadence.
func (h *Handler) Severities(w http.ResponseWriter, r *http.Request) {
	severities := incident.Severities()
	out := make([]SeverityInfo, 0, len(severities))
	for _, s := range severities {
		interval, _ := cadence.Interval(s)
		out = append(out, SeverityInfo{
			Severity:   s,
			Descriptor: s.Descriptor(),
			Interval:   cadence.Label(interval),
		})
	}
	handlers.RespondJSON(w, http.StatusOK, out)
}

// Cadence resolves the cadence for the severity and optional next_update
// query parameters.
func (h *Handler) Cadence(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	decision, err := h.sys.Cadence(q.Get("severity"), q.Get("next_update"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, decision)
}
