// Package redaction strips sensitive substrings (addresses, hostnames,
// internal identifiers, stack traces) from free text before it reaches any
// prompt or template.
package redaction

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrInvalidInput is returned for text that is not valid UTF-8.
var ErrInvalidInput = errors.New("invalid input: text is not valid UTF-8")

// Action records what a rule did to the text.
type Action string

// Rule actions.
const (
	ActionRedacted Action = "redacted"
	ActionRemoved  Action = "removed"
)

// Note summarizes one rule's effect on one input.
type Note struct {
	Category Category `json:"category"`
	Action   Action   `json:"action"`
	Count    int      `json:"count"`
}

// Text is sanitized text. The only way to obtain a non-empty Text is through
// Engine.Sanitize, so any function accepting Text is guaranteed to see
// redacted content.
type Text struct {
	value string
}

// String returns the sanitized content.
func (t Text) String() string {
	return t.value
}

// Empty reports whether the sanitized content is blank.
func (t Text) Empty() bool {
	return strings.TrimSpace(t.value) == ""
}

// Engine applies an ordered, immutable rule sequence. It is safe for
// concurrent use.
type Engine struct {
	rules []Rule
}

// New compiles the configured rule sequence: the built-in rules followed by
// any extra rules in declaration order.
func New(cfg *Config) (*Engine, error) {
	pattern := cfg.InternalIDPattern
	if pattern == "" {
		pattern = DefaultInternalIDPattern
	}
	internalID, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile internal id pattern: %w", err)
	}

	rules := DefaultRules(internalID)
	for _, rc := range cfg.ExtraRules {
		re, err := regexp.Compile(rc.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile rule %s: %w", rc.Name, err)
		}
		rules = append(rules, Rule{
			Category:    Category(rc.Name),
			Pattern:     re,
			Replacement: rc.Replacement,
		})
	}

	return &Engine{rules: rules}, nil
}

// Rules returns a copy of the engine's rule sequence.
func (e *Engine) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

// Redact returns text with every rule applied.
func (e *Engine) Redact(text string) (string, error) {
	t, _, err := e.Sanitize(text)
	if err != nil {
		return "", err
	}
	return t.String(), nil
}

// maxPasses bounds the rule sequence repetitions in Sanitize.
const maxPasses = 16

// Sanitize applies the rule sequence in order and repeats it until a full
// pass changes nothing, since one rule's replacement token can expose a
// match for an earlier rule (a token next to an address creates a word
// boundary). Each substitution is a single left-to-right pass, so a rule
// never rescans its own output within a pass. Notes aggregate counts per
// rule, in rule order.
func (e *Engine) Sanitize(text string) (Text, []Note, error) {
	if !utf8.ValidString(text) {
		return Text{}, nil, ErrInvalidInput
	}

	counts := make([]int, len(e.rules))
	out := text
	for range maxPasses {
		before := out
		for i, rule := range e.rules {
			var n int
			if rule.Removes() {
				out, n = removeLines(out, rule.Pattern)
			} else {
				out, n = substitute(out, rule)
			}
			counts[i] += n
		}
		if out == before {
			break
		}
	}

	var notes []Note
	for i, rule := range e.rules {
		if counts[i] == 0 {
			continue
		}
		action := ActionRedacted
		if rule.Removes() {
			action = ActionRemoved
		}
		notes = append(notes, Note{Category: rule.Category, Action: action, Count: counts[i]})
	}

	return Text{value: out}, notes, nil
}

func substitute(text string, rule Rule) (string, int) {
	count := 0
	out := rule.Pattern.ReplaceAllStringFunc(text, func(match string) string {
		if rule.Guard != nil && !rule.Guard(match) {
			return match
		}
		count++
		return rule.Replacement
	})
	return out, count
}

func removeLines(text string, pattern *regexp.Regexp) (string, int) {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	removed := 0
	for _, line := range lines {
		if pattern.MatchString(strings.TrimRight(line, "\r")) {
			removed++
			continue
		}
		kept = append(kept, line)
	}
	if removed == 0 {
		return text, 0
	}
	return strings.Join(kept, "\n"), removed
}
