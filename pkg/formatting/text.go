package formatting

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Ellipsis is the marker appended by Truncate.
const Ellipsis = "…"

var fencePattern = regexp.MustCompile("(?s)^```[A-Za-z0-9_-]*[ \t]*\n?(.*?)\n?```$")

// Unfence trims content and, when the whole of it is a single markdown code
// fence, returns the fenced body. Anything else is returned trimmed.
func Unfence(content string) string {
	content = strings.TrimSpace(content)
	if m := fencePattern.FindStringSubmatch(content); len(m) == 2 {
		return strings.TrimSpace(m[1])
	}
	return content
}

// Truncate caps s at limit characters (runes). When s is longer, it keeps the
// first limit-len(marker) runes, appends marker, and reports true. A limit
// smaller than the marker yields the marker cut to limit runes.
func Truncate(s string, limit int, marker string) (string, bool) {
	if limit < 0 {
		limit = 0
	}
	if utf8.RuneCountInString(s) <= limit {
		return s, false
	}

	markerLen := utf8.RuneCountInString(marker)
	if limit <= markerLen {
		return string([]rune(marker)[:limit]), true
	}

	keep := limit - markerLen
	cut := 0
	for i := range s {
		if keep == 0 {
			cut = i
			break
		}
		keep--
	}
	return s[:cut] + marker, true
}
