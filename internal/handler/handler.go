// Package handler defines the installer settings. Each handler owns one
// setting: where an existing project records it, what it defaults to, how
// input is checked and normalised, and how the chosen value is applied to
// the working tree.
package handler

import (
	"slices"
	"strings"

	"github.com/drevops/vortex-sub001/api"
	"github.com/drevops/vortex-sub001/internal/config"
	"github.com/drevops/vortex-sub001/internal/discovery"
	"github.com/drevops/vortex-sub001/internal/materialize"
)

// Kind is the input type of a setting.
type Kind int

const (
	KindText Kind = iota
	KindConfirm
	KindSelect
	KindMultiSelect
)

func (k Kind) String() string {
	switch k {
	case KindConfirm:
		return "confirm"
	case KindSelect:
		return "select"
	case KindMultiSelect:
		return "multiselect"
	default:
		return "text"
	}
}

// Option is one choice of a select or multiselect setting.
type Option struct {
	Value string
	Label string
}

// OptionValues returns the values of opts in order.
func OptionValues(opts []Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}

// HasOption reports whether value is one of opts.
func HasOption(opts []Option, value string) bool {
	return slices.ContainsFunc(opts, func(o Option) bool { return o.Value == value })
}

// Handler is the full lifecycle of one setting. Every method except Process
// is free of side effects.
type Handler interface {
	ID() string
	Label() string
	Description() string
	Hint(r *api.Responses) string
	Placeholder() string
	Kind() Kind
	IsRequired() bool

	// DependsOn lists the settings read by Options, ShouldRun, Default,
	// ResolvedValue or Process.
	DependsOn() []string
	Options(r *api.Responses) []Option
	ShouldRun(r *api.Responses) bool

	// Discover inspects the destination project. It never fails: unreadable
	// or malformed input yields an absent value.
	Discover() api.Value
	Default(r *api.Responses) api.Value

	// Validate returns a message describing why v is rejected, or "".
	Validate(v api.Value) string
	// Transform normalises accepted input. It must be idempotent.
	Transform(v api.Value) api.Value

	// ResolvedValue, when present, is stored as-is without discovery,
	// prompting, validation or transformation.
	ResolvedValue(r *api.Responses) api.Value
	ResolvedMessage(r *api.Responses, v api.Value) string

	// Process enqueues directives on t and may edit t directly.
	Process(r *api.Responses, t *materialize.Tree) error
}

// Base supplies the default behaviour; concrete handlers embed it and
// override what they need.
type Base struct {
	ctx *config.Context
}

// NewBase binds a handler to the run context.
func NewBase(ctx *config.Context) Base { return Base{ctx: ctx} }

// Context returns the run context.
func (b Base) Context() *config.Context { return b.ctx }

func (Base) Description() string                              { return "" }
func (Base) Hint(*api.Responses) string                       { return "" }
func (Base) Placeholder() string                              { return "" }
func (Base) IsRequired() bool                                 { return false }
func (Base) DependsOn() []string                              { return nil }
func (Base) Options(*api.Responses) []Option                  { return nil }
func (Base) ShouldRun(*api.Responses) bool                    { return true }
func (Base) Discover() api.Value                              { return api.None() }
func (Base) Default(*api.Responses) api.Value                 { return api.None() }
func (Base) Validate(api.Value) string                        { return "" }
func (Base) Transform(v api.Value) api.Value                  { return v }
func (Base) ResolvedValue(*api.Responses) api.Value           { return api.None() }
func (Base) ResolvedMessage(*api.Responses, api.Value) string { return "" }
func (Base) Process(*api.Responses, *materialize.Tree) error  { return nil }

// dotenv reads key from the destination's .env file.
func (b Base) dotenv(key string) api.Value {
	if b.ctx == nil || b.ctx.Dst == nil {
		return api.None()
	}
	v, ok := discovery.DotenvValue(b.ctx.Dst, discovery.DotenvFile, key)
	if !ok || v == "" {
		return api.None()
	}
	return api.String(v)
}

// dstExists reports whether p exists in the destination.
func (b Base) dstExists(p string) bool {
	if b.ctx == nil || b.ctx.Dst == nil {
		return false
	}
	return discovery.Exists(b.ctx.Dst, p)
}

// setEnv updates key in the working tree's .env file when the template
// ships one.
func setEnv(t *materialize.Tree, key, value string) error {
	if !t.Exists(discovery.DotenvFile) {
		return nil
	}
	return discovery.SetDotenvValue(t.FS(), discovery.DotenvFile, key, value)
}

// tokenName builds a block token name such as SERVICE_SOLR.
func tokenName(prefix, option string) string {
	return prefix + "_" + strings.ToUpper(option)
}

// resolveTokens resolves one token per option of a choice setting.
func resolveTokens(t *materialize.Tree, prefix string, opts []string, selected func(string) bool) {
	for _, o := range opts {
		t.Token(tokenName(prefix, o), selected(o))
	}
}

func trimString(v api.Value) api.Value {
	if v.Kind() != api.KindString {
		return v
	}
	return api.String(strings.TrimSpace(v.Str()))
}
