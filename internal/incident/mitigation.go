package incident

import (
	"slices"
	"strings"
)

// Mitigation is the responder's current progress on the incident.
type Mitigation string

// Valid mitigation states.
const (
	MitigationInvestigating Mitigation = "investigating"
	MitigationIdentified    Mitigation = "identified"
	MitigationMonitoring    Mitigation = "monitoring"
	MitigationResolved      Mitigation = "resolved"
)

var mitigations = []Mitigation{
	MitigationInvestigating,
	MitigationIdentified,
	MitigationMonitoring,
	MitigationResolved,
}

var mitigationPhrases = map[Mitigation]string{
	MitigationInvestigating: "We are investigating",
	MitigationIdentified:    "We have identified the cause of",
	MitigationMonitoring:    "A fix has been applied and we are monitoring",
	MitigationResolved:      "We have resolved",
}

// Mitigations returns the valid mitigation states.
func Mitigations() []Mitigation {
	return slices.Clone(mitigations)
}

// ParseMitigation validates s (case-insensitive, trimmed). Blank input
// defaults to MitigationInvestigating.
func ParseMitigation(s string) (Mitigation, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return MitigationInvestigating, nil
	}
	v := Mitigation(s)
	if !slices.Contains(mitigations, v) {
		return "", ErrInvalidInput
	}
	return v, nil
}

// Phrase returns the sentence opener describing the mitigation state,
// e.g. "We are investigating".
func (m Mitigation) Phrase() string {
	if p, ok := mitigationPhrases[m]; ok {
		return p
	}
	return mitigationPhrases[MitigationInvestigating]
}
