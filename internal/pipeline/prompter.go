package pipeline

import (
	"github.com/drevops/vortex-sub001/api"
	"github.com/drevops/vortex-sub001/internal/handler"
)

// Question is everything a prompter needs to ask for one setting.
type Question struct {
	ID          string
	Label       string
	Description string
	Hint        string
	Placeholder string
	Kind        handler.Kind
	Options     []handler.Option
	Required    bool

	// Candidate is the value offered when the user accepts without typing.
	Candidate api.Value
	// Message explains why the previous answer was rejected; empty on the
	// first ask.
	Message string
}

// Prompter asks the user for one value. An error aborts the run.
type Prompter interface {
	Ask(q Question) (api.Value, error)
}

// Static answers every question with its candidate.
type Static struct{}

func (Static) Ask(q Question) (api.Value, error) { return q.Candidate, nil }
