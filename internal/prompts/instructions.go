package prompts

import (
	"context"

	"github.com/JaimeStill/aica/internal/incident"
)

// TonePolicy prefixes the system prompt for every stage.
const TonePolicy = `You are AICA, an assistant that drafts customer-facing incident updates. Be clear, empathetic, and non-speculative. Never include internal details, stack traces, hostnames, IP addresses, internal identifiers, or employee names. Use plain language, stay within the word limit, and end with the next-update time.`

const initialInstructions = `Write the first public acknowledgement of an incident.

- State plainly that an issue is affecting customers and who is affected.
- Describe the current customer impact in observable terms, not causes.
- Say that the team is actively working on it.
- Close with when the next update will be posted.
- Do not guess at root cause or resolution time.`

const ongoingInstructions = `Write a progress update for an incident that is already public.

- Lead with what has changed since the previous update.
- Restate the current customer impact and whether it has grown or narrowed.
- Describe the current mitigation state in one or two sentences.
- If the severity changed, say so and state the new update cadence.
- Close with when the next update will be posted.`

const resolutionInstructions = `Write the closing notice for a resolved incident.

- State that the issue is resolved and service is restored.
- Summarize the customer impact and its duration if known.
- Describe any action customers need to take, or say none is needed.
- Mention that a follow-up review will be shared if appropriate.
- State that no further updates are scheduled for this incident.`

var defaults = map[incident.Stage]string{
	incident.StageInitial:    initialInstructions,
	incident.StageOngoing:    ongoingInstructions,
	incident.StageResolution: resolutionInstructions,
}

// Instructions returns the built-in instructions for a stage.
// Returns ErrInvalidStage if the stage is not recognized.
func Instructions(stage incident.Stage) (string, error) {
	text, ok := defaults[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}

// Source resolves the effective instructions for a stage.
type Source interface {
	Instructions(ctx context.Context, stage incident.Stage) (string, error)
}

// Defaults is the Source used when no override store is configured.
type Defaults struct{}

func (Defaults) Instructions(_ context.Context, stage incident.Stage) (string, error) {
	return Instructions(stage)
}
