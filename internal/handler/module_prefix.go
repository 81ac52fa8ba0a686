package handler

import (
	"path"
	"strings"

	"github.com/drevops/vortex-sub001/api"
	"github.com/drevops/vortex-sub001/internal/discovery"
	"github.com/drevops/vortex-sub001/internal/materialize"
)

// baseModulePatterns locate the custom base module, most specific first.
var baseModulePatterns = []string{
	"web/modules/custom/*_base",
	"docroot/modules/custom/*_base",
	"*/modules/custom/*_base",
}

// ModulePrefix is the prefix of the site's custom modules.
type ModulePrefix struct{ Base }

func (*ModulePrefix) ID() string          { return IDModulePrefix }
func (*ModulePrefix) Label() string       { return "Module prefix" }
func (*ModulePrefix) Kind() Kind          { return KindText }
func (*ModulePrefix) IsRequired() bool    { return true }
func (*ModulePrefix) DependsOn() []string { return []string{IDMachineName} }
func (*ModulePrefix) Placeholder() string { return "E.g. ms (for My Site)" }

func (*ModulePrefix) Hint(*api.Responses) string {
	return "We will use this name for custom modules."
}

func (h *ModulePrefix) Discover() api.Value {
	if h.ctx == nil || h.ctx.Dst == nil {
		return api.None()
	}
	p, ok := discovery.FindPath(h.ctx.Dst, baseModulePatterns, nil)
	if !ok {
		return api.None()
	}
	return api.String(strings.TrimSuffix(path.Base(p), "_base"))
}

func (*ModulePrefix) Default(r *api.Responses) api.Value {
	if prefix := Abbreviate(r.Str(IDMachineName)); prefix != "" {
		return api.String(prefix)
	}
	return api.None()
}

func (*ModulePrefix) Validate(v api.Value) string {
	if !machineIdentRe.MatchString(v.Str()) {
		return "Please enter a valid module prefix: only lowercase letters, numbers, and underscores are allowed."
	}
	return ""
}

func (*ModulePrefix) Transform(v api.Value) api.Value { return trimString(v) }

func (*ModulePrefix) Process(r *api.Responses, t *materialize.Tree) error {
	prefix := r.Str(IDModulePrefix)
	t.Replace("ys_base", prefix+"_base")
	t.Replace("YsBase", ToPascal(prefix)+"Base")
	t.Rename("ys_base", prefix+"_base")
	return nil
}
