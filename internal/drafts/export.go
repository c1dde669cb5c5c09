package drafts

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/JaimeStill/aica/internal/incident"
	"github.com/JaimeStill/aica/pkg/formatting"
)

// StatuspageLimit caps the status page snippet, in characters.
const StatuspageLimit = 2000

var statuspageTitles = map[incident.Stage]string{
	incident.StageInitial:    "Service Degradation – Update",
	incident.StageOngoing:    "Incident Update – Progress",
	incident.StageResolution: "Incident Resolved – Summary",
}

var emailSubjects = map[incident.Stage]string{
	incident.StageInitial:    "[Incident] Initial Notice",
	incident.StageOngoing:    "[Incident] Update",
	incident.StageResolution: "[Incident] Resolved",
}

// Bundle holds the channel-specific renderings of one draft.
type Bundle struct {
	Statuspage          string `json:"statuspage"`
	StatuspageTruncated bool   `json:"statuspage_truncated"`
	Email               string `json:"email"`
	EmailSubject        string `json:"email_subject"`
	EmailHTML           string `json:"email_html"`
}

// Formatter renders drafts for export. It holds no per-call state.
type Formatter struct {
	md goldmark.Markdown
}

// NewFormatter creates a Formatter with a default Markdown renderer, which
// omits raw HTML found in draft text.
func NewFormatter() *Formatter {
	return &Formatter{md: goldmark.New()}
}

// Format renders d. The status page snippet is capped at StatuspageLimit
// characters; the email is never truncated.
func (f *Formatter) Format(d Draft) (Bundle, error) {
	title, ok := statuspageTitles[d.Stage]
	if !ok {
		return Bundle{}, fmt.Errorf("%w: %q", incident.ErrUnknownStage, d.Stage)
	}

	next := nextUpdateLine(d)
	statuspage, truncated := formatting.Truncate(
		strings.Join([]string{title, "", d.Body, "", next}, "\n"),
		StatuspageLimit,
		formatting.Ellipsis,
	)

	subject := fmt.Sprintf("[%s] %s", d.Severity, emailSubjects[d.Stage])
	body := d.Body + "\n\n" + next

	var html bytes.Buffer
	if err := f.md.Convert([]byte(body), &html); err != nil {
		return Bundle{}, fmt.Errorf("render email html: %w", err)
	}

	return Bundle{
		Statuspage:          statuspage,
		StatuspageTruncated: truncated,
		Email:               subject + "\n\n" + body,
		EmailSubject:        subject,
		EmailHTML:           html.String(),
	}, nil
}

func nextUpdateLine(d Draft) string {
	if d.Stage == incident.StageResolution {
		return noMoreUpdates
	}
	return "Next update: " + d.NextUpdate
}
