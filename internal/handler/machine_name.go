package handler

import (
	"regexp"

	"github.com/drevops/vortex-sub001/api"
	"github.com/drevops/vortex-sub001/internal/materialize"
)

// Placeholders for the machine name. Underscore is a word character, so the
// underscore form leaves longer identifiers such as your_site_theme to the
// handlers that own them; the hyphen form skips the domain placeholder.
var (
	yourSiteRe      = regexp.MustCompile(`\byour_site\b`)
	yourSiteKebabRe = regexp.MustCompile(`\byour-site\b(-domain)?`)
)

// MachineName is the site identifier used in code, paths and containers.
type MachineName struct{ Base }

func (*MachineName) ID() string          { return IDMachineName }
func (*MachineName) Label() string       { return "Site machine name" }
func (*MachineName) Kind() Kind          { return KindText }
func (*MachineName) IsRequired() bool    { return true }
func (*MachineName) DependsOn() []string { return []string{IDName} }

func (*MachineName) Hint(*api.Responses) string {
	return "We will use this name for the project directory and in the code."
}
func (*MachineName) Placeholder() string { return "E.g. my_site" }

func (h *MachineName) Discover() api.Value { return h.dotenv("VORTEX_PROJECT") }

func (*MachineName) Default(r *api.Responses) api.Value {
	if mn := ToMachineName(r.Str(IDName)); mn != "" {
		return api.String(mn)
	}
	return api.None()
}

func (*MachineName) Validate(v api.Value) string {
	if !machineNameRe.MatchString(v.Str()) {
		return "Please enter a valid machine name: only lowercase letters, numbers, and underscores are allowed."
	}
	return ""
}

func (*MachineName) Transform(v api.Value) api.Value { return trimString(v) }

func (*MachineName) Process(r *api.Responses, t *materialize.Tree) error {
	mn := r.Str(IDMachineName)
	kebab := ToKebab(mn)
	t.ReplaceFunc(yourSiteRe, func(string) string { return mn })
	t.ReplaceFunc(yourSiteKebabRe, func(m string) string {
		if m != "your-site" {
			return m
		}
		return kebab
	})
	t.Rename("your_site", mn)
	return nil
}
