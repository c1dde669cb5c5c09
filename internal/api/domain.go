package api

import (
	"github.com/JaimeStill/aica/internal/drafts"
	"github.com/JaimeStill/aica/internal/prompts"
)

// Domain holds all domain systems that comprise the API. Prompts is nil
// when the database is disabled.
type Domain struct {
	Drafts  drafts.System
	Prompts prompts.System
}

// NewDomain creates all domain systems from the API runtime. Stage
// instructions come from the prompt store when the database is enabled and
// from the built-in defaults otherwise.
func NewDomain(runtime *Runtime) *Domain {
	domain := &Domain{}

	var source prompts.Source = prompts.Defaults{}
	if runtime.Database != nil {
		domain.Prompts = prompts.New(runtime.Database.Connection(), runtime.Logger)
		source = domain.Prompts
	}

	domain.Drafts = drafts.New(
		runtime.Redaction,
		source,
		runtime.Generation,
		runtime.Drafts,
		runtime.Logger,
	)

	return domain
}
