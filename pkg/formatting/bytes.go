// Package formatting converts byte sizes to and from their human-readable
// form and tidies free text produced by models.
package formatting

import (
	"fmt"
	"strconv"
	"strings"
)

// Base-1024 units, smallest first.
var units = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

var unitScale = func() map[string]float64 {
	scale := make(map[string]float64, len(units))
	f := 1.0
	for _, u := range units {
		scale[u] = f
		f *= 1024
	}
	return scale
}()

// FormatBytes renders n in the largest unit that keeps the value at or
// above one. Negative precision is treated as zero.
func FormatBytes(n int64, precision int) string {
	if n == 0 {
		return "0 B"
	}
	precision = max(precision, 0)

	f := float64(n)
	i := 0
	for f >= 1024 && i < len(units)-1 {
		f /= 1024
		i++
	}
	return strconv.FormatFloat(f, 'f', precision, 64) + " " + units[i]
}

// ParseBytes reads sizes such as "64KB", "1.5 mb" or "2048". Units run from
// B to YB in base 1024, are case-insensitive, and default to bytes.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size string")
	}

	split := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	number, unit := s, ""
	if split >= 0 {
		number, unit = s[:split], strings.TrimSpace(s[split:])
	}
	if number == "" {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size number: %w", err)
	}
	if unit == "" {
		return int64(value), nil
	}

	scale, ok := unitScale[strings.ToUpper(unit)]
	if !ok {
		return 0, fmt.Errorf("unknown byte size unit: %q", unit)
	}
	return int64(value * scale), nil
}
