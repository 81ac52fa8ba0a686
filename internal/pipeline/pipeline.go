// Package pipeline resolves every setting in dependency order and then lets
// each resolved setting shape the working tree.
package pipeline

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/drevops/vortex-sub001/api"
	"github.com/drevops/vortex-sub001/internal/config"
	"github.com/drevops/vortex-sub001/internal/handler"
	"github.com/drevops/vortex-sub001/internal/materialize"
)

const requiredMessage = "This field is required."

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithPrompter sets the prompter used in interactive runs.
func WithPrompter(p Prompter) Option {
	return func(o *Orchestrator) {
		if p != nil {
			o.prompter = p
		}
	}
}

// WithAnswers sets caller-supplied answers keyed by setting ID.
func WithAnswers(answers map[string]any) Option {
	return func(o *Orchestrator) { o.answers = answers }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// Orchestrator drives settings from discovery to materialization.
type Orchestrator struct {
	ctx      *config.Context
	handlers []handler.Handler
	prompter Prompter
	answers  map[string]any
	logger   *zap.Logger
}

// New orders handlers by their dependencies. Duplicate IDs, unknown
// dependencies and cycles are configuration errors.
func New(ctx *config.Context, handlers []handler.Handler, opts ...Option) (*Orchestrator, error) {
	ordered, err := Order(handlers)
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = &config.Context{}
	}
	o := &Orchestrator{
		ctx:      ctx,
		handlers: ordered,
		prompter: Static{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}

	known := make(map[string]bool, len(ordered))
	for _, h := range ordered {
		known[h.ID()] = true
	}
	for id := range o.answers {
		if !known[id] {
			o.logger.Warn("answer for unknown setting ignored", zap.String("setting", id))
		}
	}
	return o, nil
}

// Handlers returns the handlers in resolution order.
func (o *Orchestrator) Handlers() []handler.Handler {
	return append([]handler.Handler(nil), o.handlers...)
}

// Run resolves every setting, processes the working tree and flushes it.
func (o *Orchestrator) Run(tree *materialize.Tree) (*api.Responses, materialize.Stats, error) {
	r, err := o.Resolve()
	if err != nil {
		return nil, materialize.Stats{}, err
	}
	stats, err := o.Process(r, tree)
	return r, stats, err
}

// Resolve builds the response store one setting at a time.
func (o *Orchestrator) Resolve() (*api.Responses, error) {
	r := api.NewResponses()
	for _, h := range o.handlers {
		v, ran, err := o.resolve(h, r)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", h.ID(), err)
		}
		if !ran {
			continue
		}
		if err := r.Set(h.ID(), v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (o *Orchestrator) resolve(h handler.Handler, r *api.Responses) (api.Value, bool, error) {
	log := o.logger.With(zap.String("setting", h.ID()))

	if !h.ShouldRun(r) {
		log.Debug("skipped")
		return api.None(), false, nil
	}

	if v := h.ResolvedValue(r); v.Present() {
		if msg := h.ResolvedMessage(r, v); msg != "" {
			log.Info(msg)
		}
		log.Debug("resolved", zap.String("source", "fixed"), zap.Stringer("value", v))
		return v, true, nil
	}

	var candidate api.Value
	source := "default"
	if o.ctx.Preexisting {
		if d := h.Discover(); d.Present() {
			candidate, source = d, "discovered"
		}
	}
	if !candidate.Present() {
		candidate = h.Default(r)
	}

	answered := false
	if raw, ok := o.answers[h.ID()]; ok {
		v, err := handler.Coerce(h.Kind(), raw)
		if err != nil {
			return api.None(), false, err
		}
		if v.Present() {
			candidate, source, answered = v, "answer", true
		}
	}

	if !o.ctx.Interactive {
		if answered {
			if msg := check(h, r, candidate); msg != "" {
				return api.None(), false, api.Validationf("%q: %s", candidate.Display(), msg)
			}
		}
		v := h.Transform(candidate)
		log.Debug("resolved", zap.String("source", source), zap.Stringer("value", v))
		return v, true, nil
	}

	q := Question{
		ID:          h.ID(),
		Label:       h.Label(),
		Description: h.Description(),
		Hint:        h.Hint(r),
		Placeholder: h.Placeholder(),
		Kind:        h.Kind(),
		Options:     h.Options(r),
		Required:    h.IsRequired(),
		Candidate:   candidate,
	}
	for {
		v, err := o.prompter.Ask(q)
		if err != nil {
			return api.None(), false, err
		}
		msg := check(h, r, v)
		if msg == "" {
			v = h.Transform(v)
			log.Debug("resolved", zap.String("source", "prompt"), zap.Stringer("value", v))
			return v, true, nil
		}
		log.Debug("rejected", zap.Stringer("value", v), zap.String("reason", msg))
		q.Candidate, q.Message = v, msg
	}
}

// check applies the checks every setting shares before its own validator:
// required text must be non-empty and choices must be among the options.
func check(h handler.Handler, r *api.Responses, v api.Value) string {
	switch h.Kind() {
	case handler.KindText:
		if strings.TrimSpace(v.Str()) == "" {
			if h.IsRequired() {
				return requiredMessage
			}
			return ""
		}
	case handler.KindSelect:
		if !handler.HasOption(h.Options(r), v.Str()) {
			return fmt.Sprintf("Please select one of: %s.", strings.Join(handler.OptionValues(h.Options(r)), ", "))
		}
	case handler.KindMultiSelect:
		opts := h.Options(r)
		for _, item := range v.Items() {
			if !handler.HasOption(opts, item) {
				return fmt.Sprintf("%q is not one of: %s.", item, strings.Join(handler.OptionValues(opts), ", "))
			}
		}
	}
	return h.Validate(v)
}

// Process lets every setting that was resolved shape the tree, in
// resolution order, then flushes the queued directives once.
func (o *Orchestrator) Process(r *api.Responses, tree *materialize.Tree) (materialize.Stats, error) {
	for _, h := range o.handlers {
		if !r.Has(h.ID()) {
			continue
		}
		if err := h.Process(r, tree); err != nil {
			return materialize.Stats{}, fmt.Errorf("process %s: %w", h.ID(), err)
		}
		o.logger.Debug("processed", zap.String("setting", h.ID()))
	}
	return tree.Flush()
}
