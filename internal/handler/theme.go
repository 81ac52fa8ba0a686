package handler

import (
	"github.com/drevops/vortex-sub001/api"
	"github.com/drevops/vortex-sub001/internal/materialize"
)

// Theme is the machine name of the custom theme.
type Theme struct{ Base }

func (*Theme) ID() string          { return IDTheme }
func (*Theme) Label() string       { return "Theme machine name" }
func (*Theme) Kind() Kind          { return KindText }
func (*Theme) IsRequired() bool    { return true }
func (*Theme) DependsOn() []string { return []string{IDMachineName} }
func (*Theme) Placeholder() string { return "E.g. mytheme" }

func (*Theme) Hint(*api.Responses) string {
	return "We will use this name for the custom theme directory."
}

func (h *Theme) Discover() api.Value { return h.dotenv("DRUPAL_THEME") }

func (*Theme) Default(r *api.Responses) api.Value {
	if mn := r.Str(IDMachineName); mn != "" {
		return api.String(mn)
	}
	return api.None()
}

func (*Theme) Validate(v api.Value) string {
	if !machineIdentRe.MatchString(v.Str()) {
		return "Please enter a valid theme machine name: only lowercase letters, numbers, and underscores are allowed."
	}
	return ""
}

func (*Theme) Transform(v api.Value) api.Value { return trimString(v) }

func (*Theme) Process(r *api.Responses, t *materialize.Tree) error {
	theme := r.Str(IDTheme)
	t.Replace("your_site_theme", theme)
	t.Rename("your_site_theme", theme)
	return nil
}
