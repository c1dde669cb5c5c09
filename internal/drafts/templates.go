package drafts

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/aica/internal/incident"
)

const (
	standardClose = "We will provide further details as they are verified."
	detailedClose = "Resolution steps are underway; we will share a full summary post-resolution."
	reviewClose   = "We will share a full summary once our review is complete."
	noMoreUpdates = "No further updates are scheduled."
)

// Templates renders the deterministic short, standard, and detailed drafts
// for a composed prompt.
func Templates(p Prompt) Variants {
	in := p.Input
	impact := impactText(in.Impact)
	summary := sentence(in.Summary.String())
	severity := fmt.Sprintf("Severity: %s (%s).", in.Severity, in.Severity.Descriptor())

	var opener string
	switch in.Stage {
	case incident.StageInitial:
		opener = fmt.Sprintf("%s an issue affecting %s.", in.Mitigation.Phrase(), impact)
	case incident.StageOngoing:
		opener = fmt.Sprintf("Update: %s the issue affecting %s.", in.Mitigation.Phrase(), impact)
		if in.SeverityChanged() {
			opener += fmt.Sprintf(" Severity has changed from %s to %s; updates will now follow every %s.",
				in.PreviousSeverity, in.Severity, in.Cadence.Label)
		}
	default:
		opener = fmt.Sprintf("The issue affecting %s has been resolved and service is restored.", impact)
	}

	parts := []string{opener, severity}
	if summary != "" {
		parts = append(parts, "Summary: "+summary)
	}
	parts = append(parts, nextUpdateSentence(in.Stage, in.Cadence.NextUpdate, in.Cadence.Explicit, in.Cadence.Label))
	short := strings.Join(parts, " ")

	if in.Stage == incident.StageResolution {
		return Variants{
			Short:    short,
			Standard: short + " Thank you for your patience.",
			Detailed: short + " Thank you for your patience. " + reviewClose,
		}
	}
	return Variants{
		Short:    short,
		Standard: short + " " + standardClose,
		Detailed: short + " " + detailedClose,
	}
}

func nextUpdateSentence(stage incident.Stage, next string, explicit bool, label string) string {
	switch {
	case stage == incident.StageResolution:
		return noMoreUpdates
	case explicit:
		return fmt.Sprintf("Next update: %s.", strings.TrimRight(strings.TrimSpace(next), "."))
	default:
		return fmt.Sprintf("Next update in %s (by %s).", label, next)
	}
}

// sentence collapses whitespace and ensures terminal punctuation.
func sentence(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	switch s[len(s)-1] {
	case '.', '!', '?':
		return s
	}
	return s + "."
}
