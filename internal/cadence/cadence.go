// Package cadence maps incident severity to a customer-update interval.
package cadence

import (
	"fmt"
	"strings"
	"time"

	"github.com/JaimeStill/aica/internal/incident"
)

var intervals = map[incident.Severity]time.Duration{
	incident.SEV1: 30 * time.Minute,
	incident.SEV2: 60 * time.Minute,
	incident.SEV3: 4 * time.Hour,
	incident.SEV4: 24 * time.Hour,
}

// Decision is the resolved update cadence for one draft.
type Decision struct {
	Interval   time.Duration `json:"-"`
	Label      string        `json:"interval"`
	NextUpdate string        `json:"next_update"`
	Explicit   bool          `json:"explicit"`
}

// Resolver computes cadence decisions. Now defaults to time.Now when nil.
type Resolver struct {
	Now func() time.Time
}

// Interval returns the update interval for severity.
func Interval(severity incident.Severity) (time.Duration, error) {
	d, ok := intervals[severity]
	if !ok {
		return 0, fmt.Errorf("%w: %q", incident.ErrUnknownSeverity, severity)
	}
	return d, nil
}

// Label renders an interval the way customers read it: minutes below two
// hours, hours otherwise.
func Label(d time.Duration) string {
	if d < 2*time.Hour {
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	}
	return fmt.Sprintf("%d hours", int(d/time.Hour))
}

// Resolve returns the cadence for severity. A non-blank explicit value is
// passed through verbatim; otherwise the next update is now plus the
// severity's interval, formatted RFC 3339 in UTC.
func (r Resolver) Resolve(severity incident.Severity, explicit string) (Decision, error) {
	interval, err := Interval(severity)
	if err != nil {
		return Decision{}, err
	}

	decision := Decision{
		Interval: interval,
		Label:    Label(interval),
	}

	if strings.TrimSpace(explicit) != "" {
		decision.NextUpdate = explicit
		decision.Explicit = true
		return decision, nil
	}

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	decision.NextUpdate = now().Add(interval).UTC().Format(time.RFC3339)
	return decision, nil
}
