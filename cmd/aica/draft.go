package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/aica/internal/config"
	"github.com/JaimeStill/aica/internal/drafts"
	"github.com/JaimeStill/aica/internal/incident"
	"github.com/JaimeStill/aica/internal/infrastructure"
	"github.com/JaimeStill/aica/internal/prompts"
)

// Output formats.
const (
	formatJSON       = "json"
	formatStatuspage = "statuspage"
	formatEmail      = "email"
)

type draftOptions struct {
	req     incident.DraftRequest
	format  string
	verbose bool
}

func newDraftCmd() *cobra.Command {
	opts := &draftOptions{}

	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Draft an incident update",
		Long: `Draft a customer-facing incident update. Free text is redacted before
any prompt is built, and generation falls back to templates when no
provider is configured or the provider fails.

Examples:
  aica draft --stage initial --severity SEV2 --summary "Checkout errors" --impact "EU customers"
  aica draft --stage ongoing --severity SEV1 --previous-severity SEV2 --summary - < notes.txt
  aica draft --stage resolution --severity SEV3 --summary "Rolled back" --format email`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDraft(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.req.Stage, "stage", "", "incident stage (initial, ongoing, resolution)")
	f.StringVar(&opts.req.Severity, "severity", "", "severity (SEV1-SEV4)")
	f.StringVar(&opts.req.Summary, "summary", "", `what is happening; "-" reads stdin`)
	f.StringVar(&opts.req.Impact, "impact", "", "who or what is affected")
	f.StringVar(&opts.req.NextUpdate, "next-update", "", "explicit next-update text; computed from severity when omitted")
	f.StringVar(&opts.req.Mitigation, "mitigation", "", "investigating, identified, monitoring, or resolved")
	f.StringVar(&opts.req.PreviousSeverity, "previous-severity", "", "severity before this update, to announce a change")
	f.StringVarP(&opts.format, "format", "f", formatJSON, "output format (json, statuspage, email)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log pipeline activity to stderr")

	cmd.MarkFlagRequired("stage")
	cmd.MarkFlagRequired("severity")
	cmd.MarkFlagRequired("summary")

	return cmd
}

func runDraft(cmd *cobra.Command, opts *draftOptions) error {
	switch opts.format {
	case formatJSON, formatStatuspage, formatEmail:
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}

	if opts.req.Summary == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read summary: %w", err)
		}
		opts.req.Summary = strings.TrimSpace(string(data))
	}

	sys, err := newSystem(cmd.ErrOrStderr(), opts.verbose)
	if err != nil {
		return err
	}

	res, err := sys.Draft(cmd.Context(), opts.req)
	if err != nil {
		return err
	}

	return writeResult(cmd.OutOrStdout(), res, opts.format)
}

// newSystem builds the drafting pipeline from configuration. The CLI never
// opens the prompt database; built-in stage instructions are used.
func newSystem(stderr io.Writer, verbose bool) (drafts.System, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.Database.Enabled = false

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	infra, err := infrastructure.NewWithLogger(cfg, logger)
	if err != nil {
		return nil, err
	}

	return drafts.New(
		infra.Redaction,
		prompts.Defaults{},
		infra.Generation,
		drafts.Config{
			Options: cfg.Generation.Options(),
			Timeout: cfg.Generation.TimeoutDuration(),
		},
		logger.With("module", "cli"),
	), nil
}

func writeResult(w io.Writer, res *drafts.Result, format string) error {
	switch format {
	case formatStatuspage:
		_, err := fmt.Fprintln(w, res.Exports.Statuspage)
		return err
	case formatEmail:
		_, err := fmt.Fprintln(w, res.Exports.Email)
		return err
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
}

func newCadenceCmd() *cobra.Command {
	var nextUpdate string

	cmd := &cobra.Command{
		Use:   "cadence SEVERITY",
		Short: "Show the update cadence for a severity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := newSystem(cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}

			d, err := sys.Cadence(args[0], nextUpdate)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "interval: every %s\nnext update: %s\n", d.Label, d.NextUpdate)
			return nil
		},
	}

	cmd.Flags().StringVar(&nextUpdate, "next-update", "", "explicit next-update text")

	return cmd
}

