package incident

import (
	"encoding/json"
	"slices"
	"strings"
)

// Stage is the point in the incident lifecycle a communication targets.
type Stage string

// Valid stages.
const (
	StageInitial    Stage = "initial"
	StageOngoing    Stage = "ongoing"
	StageResolution Stage = "resolution"
)

var stages = []Stage{StageInitial, StageOngoing, StageResolution}

// Stages returns the valid stages in lifecycle order.
func Stages() []Stage {
	return slices.Clone(stages)
}

// ParseStage validates s (case-insensitive, trimmed) as a known stage.
func ParseStage(s string) (Stage, error) {
	v := Stage(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", ErrUnknownStage
	}
	return v, nil
}

// Valid reports whether s is a member of the closed stage set.
func (s Stage) Valid() bool {
	return slices.Contains(stages, s)
}

// UnmarshalJSON accepts only known stage values.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParseStage(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}
