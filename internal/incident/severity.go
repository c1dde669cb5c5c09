package incident

import (
	"encoding/json"
	"slices"
	"strings"
)

// Severity ranks incident impact from SEV1 (most severe) to SEV4.
type Severity string

// Valid severities.
const (
	SEV1 Severity = "SEV1"
	SEV2 Severity = "SEV2"
	SEV3 Severity = "SEV3"
	SEV4 Severity = "SEV4"
)

var severities = []Severity{SEV1, SEV2, SEV3, SEV4}

var descriptors = map[Severity]string{
	SEV1: "critical",
	SEV2: "major",
	SEV3: "minor",
	SEV4: "low-impact",
}

// Severities returns the valid severities, most severe first.
func Severities() []Severity {
	return slices.Clone(severities)
}

// ParseSeverity validates s (case-insensitive, trimmed) as a known severity.
func ParseSeverity(s string) (Severity, error) {
	v := Severity(strings.ToUpper(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", ErrUnknownSeverity
	}
	return v, nil
}

// Valid reports whether s is a member of the closed severity set.
func (s Severity) Valid() bool {
	return slices.Contains(severities, s)
}

// Descriptor returns the customer-facing adjective for the severity,
// e.g. "critical" for SEV1.
func (s Severity) Descriptor() string {
	return descriptors[s]
}

// UnmarshalJSON accepts only known severity values.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParseSeverity(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}
