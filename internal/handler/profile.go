package handler

import (
	"github.com/drevops/vortex-sub001/api"
	"github.com/drevops/vortex-sub001/internal/materialize"
)

const (
	ProfileStandard  = "standard"
	ProfileMinimal   = "minimal"
	ProfileDemoUmami = "demo_umami"
	ProfileCustom    = "custom"
)

// customProfileDir is where the template ships its custom profile, before
// the webroot and machine name are applied.
const customProfileDir = "web/profiles/custom/your_site_profile"

// Profile selects the Drupal installation profile.
type Profile struct{ Base }

func (*Profile) ID() string    { return IDProfile }
func (*Profile) Label() string { return "Profile" }
func (*Profile) Kind() Kind    { return KindSelect }

func (*Profile) Hint(*api.Responses) string {
	return "Select which profile to use."
}

func (*Profile) Options(*api.Responses) []Option {
	return []Option{
		{Value: ProfileStandard, Label: "Standard"},
		{Value: ProfileMinimal, Label: "Minimal"},
		{Value: ProfileDemoUmami, Label: "Demo Umami"},
		{Value: ProfileCustom, Label: "Custom (next prompt)"},
	}
}

// Discover maps a known profile name to its option and anything else to
// the custom option.
func (h *Profile) Discover() api.Value {
	v := h.dotenv("DRUPAL_PROFILE")
	if !v.Present() {
		return v
	}
	switch v.Str() {
	case ProfileStandard, ProfileMinimal, ProfileDemoUmami:
		return v
	}
	return api.String(ProfileCustom)
}

func (*Profile) Default(*api.Responses) api.Value { return api.String(ProfileStandard) }

func (*Profile) Process(r *api.Responses, t *materialize.Tree) error {
	profile := r.Str(IDProfile)
	if profile == ProfileCustom {
		return nil
	}
	t.Remove(customProfileDir)
	return setEnv(t, "DRUPAL_PROFILE", profile)
}

// CustomProfile names the custom installation profile.
type CustomProfile struct{ Base }

func (*CustomProfile) ID() string          { return IDProfileCustom }
func (*CustomProfile) Label() string       { return "Custom profile machine name" }
func (*CustomProfile) Kind() Kind          { return KindText }
func (*CustomProfile) IsRequired() bool    { return true }
func (*CustomProfile) DependsOn() []string { return []string{IDProfile, IDMachineName} }
func (*CustomProfile) Placeholder() string { return "E.g. my_profile" }

func (*CustomProfile) Hint(*api.Responses) string {
	return "We will use this name for the custom profile directory and in the code."
}

func (*CustomProfile) ShouldRun(r *api.Responses) bool {
	return r.Str(IDProfile) == ProfileCustom
}

func (h *CustomProfile) Discover() api.Value {
	v := h.dotenv("DRUPAL_PROFILE")
	switch v.Str() {
	case ProfileStandard, ProfileMinimal, ProfileDemoUmami:
		return api.None()
	}
	return v
}

func (*CustomProfile) Default(r *api.Responses) api.Value {
	if mn := r.Str(IDMachineName); mn != "" {
		return api.String(mn + "_profile")
	}
	return api.None()
}

func (*CustomProfile) Validate(v api.Value) string {
	if !machineIdentRe.MatchString(v.Str()) {
		return "Please enter a valid profile name: only lowercase letters, numbers, and underscores are allowed."
	}
	return ""
}

func (*CustomProfile) Transform(v api.Value) api.Value { return trimString(v) }

func (*CustomProfile) Process(r *api.Responses, t *materialize.Tree) error {
	profile := r.Str(IDProfileCustom)
	t.Replace("your_site_profile", profile)
	t.Rename("your_site_profile", profile)
	return setEnv(t, "DRUPAL_PROFILE", profile)
}
