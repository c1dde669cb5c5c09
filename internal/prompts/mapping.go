package prompts

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/JaimeStill/aica/internal/incident"
	"github.com/JaimeStill/aica/pkg/repository"
)

const columns = "id, name, stage, instructions, description, active"

// Filters contains optional filtering criteria for prompt queries.
// Nil fields are ignored.
type Filters struct {
	Stage  *incident.Stage `json:"stage,omitempty"`
	Active *bool           `json:"active,omitempty"`
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) (Filters, error) {
	var f Filters

	if s := values.Get("stage"); s != "" {
		stage, err := ParseStage(s)
		if err != nil {
			return Filters{}, err
		}
		f.Stage = &stage
	}

	if a := values.Get("active"); a != "" {
		v, err := strconv.ParseBool(a)
		if err != nil {
			return Filters{}, fmt.Errorf("%w: active must be a boolean", ErrInvalid)
		}
		f.Active = &v
	}

	return f, nil
}

// where renders the filters as a SQL WHERE clause with positional args.
func (f Filters) where() (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.Stage != nil {
		args = append(args, *f.Stage)
		conds = append(conds, fmt.Sprintf("stage = $%d", len(args)))
	}
	if f.Active != nil {
		args = append(args, *f.Active)
		conds = append(conds, fmt.Sprintf("active = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanPrompt(s repository.Scanner) (Prompt, error) {
	var p Prompt
	err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Stage,
		&p.Instructions,
		&p.Description,
		&p.Active,
	)
	return p, err
}
