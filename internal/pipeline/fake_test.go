package pipeline

import (
	"github.com/drevops/vortex-sub001/api"
	"github.com/drevops/vortex-sub001/internal/handler"
	"github.com/drevops/vortex-sub001/internal/materialize"
)

// fake is a configurable handler that counts lifecycle calls.
type fake struct {
	handler.Base

	id       string
	kind     handler.Kind
	deps     []string
	required bool
	options  []handler.Option

	run        func(*api.Responses) bool
	discovered api.Value
	def        api.Value
	resolved   api.Value
	validate   func(api.Value) string
	transform  func(api.Value) api.Value
	process    func(*api.Responses, *materialize.Tree) error

	calls map[string]int
}

func newFake(id string, deps ...string) *fake {
	return &fake{id: id, deps: deps, calls: make(map[string]int)}
}

func (f *fake) ID() string          { return f.id }
func (f *fake) Label() string       { return "Label " + f.id }
func (f *fake) Kind() handler.Kind  { return f.kind }
func (f *fake) IsRequired() bool    { return f.required }
func (f *fake) DependsOn() []string { return f.deps }

func (f *fake) Options(*api.Responses) []handler.Option { return f.options }

func (f *fake) ShouldRun(r *api.Responses) bool {
	f.calls["ShouldRun"]++
	if f.run == nil {
		return true
	}
	return f.run(r)
}

func (f *fake) Discover() api.Value {
	f.calls["Discover"]++
	return f.discovered
}

func (f *fake) Default(*api.Responses) api.Value {
	f.calls["Default"]++
	return f.def
}

func (f *fake) ResolvedValue(*api.Responses) api.Value {
	return f.resolved
}

func (f *fake) Validate(v api.Value) string {
	f.calls["Validate"]++
	if f.validate == nil {
		return ""
	}
	return f.validate(v)
}

func (f *fake) Transform(v api.Value) api.Value {
	f.calls["Transform"]++
	if f.transform == nil {
		return v
	}
	return f.transform(v)
}

func (f *fake) Process(r *api.Responses, t *materialize.Tree) error {
	f.calls["Process"]++
	if f.process == nil {
		return nil
	}
	return f.process(r, t)
}

// scripted answers questions from a queue and records what it was asked.
type scripted struct {
	answers []api.Value
	asked   []Question
}

func (s *scripted) Ask(q Question) (api.Value, error) {
	s.asked = append(s.asked, q)
	if len(s.answers) == 0 {
		return api.None(), errAborted
	}
	v := s.answers[0]
	s.answers = s.answers[1:]
	return v, nil
}
