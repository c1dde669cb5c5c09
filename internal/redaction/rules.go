package redaction

import (
	"regexp"
	"strings"
)

// Category names the kind of sensitive content a rule targets.
type Category string

// Built-in categories.
const (
	CategoryStackTrace Category = "stack_trace_line"
	CategoryIP         Category = "ip"
	CategoryEmail      Category = "email"
	CategoryHostname   Category = "hostname"
	CategoryInternalID Category = "internal_id"
)

// Replacement tokens for the built-in categories.
const (
	TokenIP    = "[REDACTED_IP]"
	TokenEmail = "[REDACTED_EMAIL]"
	TokenHost  = "[REDACTED_HOST]"
	TokenID    = "[REDACTED_ID]"
)

// DefaultInternalIDPattern matches an "id" or "internal id" label followed by
// an identifier token. The built-in guard additionally requires the token to
// be at least six characters and contain a digit.
const DefaultInternalIDPattern = `(?i)\b(?:internal[-_ ]?id|id)(?:[ \t]*[:#][ \t]*|[ \t]+)[a-z0-9_-]*\d[a-z0-9_-]*\b`

// Rule pairs a pattern with its replacement. Rules in the stack-trace
// category remove every line the pattern matches instead of substituting.
// Guard, when set, is consulted per match; a false result leaves the match
// untouched.
type Rule struct {
	Category    Category
	Pattern     *regexp.Regexp
	Replacement string
	Guard       func(match string) bool
}

// Removes reports whether the rule deletes whole lines.
func (r Rule) Removes() bool {
	return r.Category == CategoryStackTrace
}

var stackTracePattern = regexp.MustCompile(strings.Join([]string{
	`^\s*Traceback \(most recent call last\):?\s*$`,
	`^\s*File "[^"]+", line \d+`,
	`^\s*at\s+.*?[\w$.-]+\.[A-Za-z]\w*:\d+(?::\d+)?\)?\s*$`,
	`^\s*at\s+\S+\((?:Native Method|Unknown Source)\)\s*$`,
	`^\s*Caused by:`,
	`^\s*Exception\b`,
	`\bat\s+(?:[/\\]|[A-Za-z]:\\)\S`,
	`^\s*(?:[a-z_$][\w$]*\.)*[A-Z][\w$]*(?:Exception|Error)(?::.*)?$`,
	`^goroutine \d+ \[[^\]]*\]:?\s*$`,
	`^panic: `,
	`^created by \S+`,
	`^(?:[\w.-]+/)*[\w.-]+\.(?:\(\*?\w+\)\.)?\w+\([0-9a-fx{}., ]*\)$`,
	`^\s*\S+\.go:\d+(?:\s+\+0x[0-9a-f]+)?\s*$`,
}, "|"))

var (
	// IPv4, full IPv6, and IPv6 compressed with a single "::" between
	// hex groups. Forms that begin or end with "::" are not matched.
	ipPattern = regexp.MustCompile(strings.Join([]string{
		`\b(?:\d{1,3}\.){3}\d{1,3}\b`,
		`(?i:\b(?:[0-9a-f]{1,4}:){7}[0-9a-f]{1,4}\b)`,
		`(?i:\b(?:[0-9a-f]{1,4}:){1,6}(?::[0-9a-f]{1,4}){1,6}\b)`,
	}, "|"))
	emailPattern = regexp.MustCompile(
		`(?i)[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`,
	)
	hostnamePattern = regexp.MustCompile(
		`(?i)\b(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z][a-z0-9-]{0,61}[a-z0-9]\b`,
	)
)

// DefaultRules returns the built-in rule sequence with the given internal-ID
// pattern. The order is significant: stack-trace lines go first so later
// substitutions never splice lines together, IPs and emails precede
// hostnames because both contain hostname-shaped substrings.
func DefaultRules(internalID *regexp.Regexp) []Rule {
	idRule := Rule{
		Category:    CategoryInternalID,
		Pattern:     internalID,
		Replacement: TokenID,
	}
	if internalID.String() == DefaultInternalIDPattern {
		idRule.Guard = identifierToken
	}

	return []Rule{
		{Category: CategoryStackTrace, Pattern: stackTracePattern},
		{Category: CategoryIP, Pattern: ipPattern, Replacement: TokenIP},
		{Category: CategoryEmail, Pattern: emailPattern, Replacement: TokenEmail},
		{Category: CategoryHostname, Pattern: hostnamePattern, Replacement: TokenHost},
		idRule,
	}
}

// identifierToken accepts a labelled ID match when the token after the
// label is at least six characters and contains a digit.
func identifierToken(match string) bool {
	token := match[strings.LastIndexAny(match, " \t:#")+1:]
	return len(token) >= 6 && strings.ContainsAny(token, "0123456789")
}
