package handler

import (
	"regexp"
	"strings"

	"github.com/drevops/vortex-sub001/api"
	"github.com/drevops/vortex-sub001/internal/discovery"
	"github.com/drevops/vortex-sub001/internal/materialize"
)

var (
	yourOrgRe      = regexp.MustCompile(`\byour_org\b`)
	yourOrgKebabRe = regexp.MustCompile(`\byour-org\b`)
)

// Org is the human-readable organization name.
type Org struct{ Base }

func (*Org) ID() string          { return IDOrg }
func (*Org) Label() string       { return "Organization name" }
func (*Org) Kind() Kind          { return KindText }
func (*Org) IsRequired() bool    { return true }
func (*Org) DependsOn() []string { return []string{IDName} }
func (*Org) Placeholder() string { return "E.g. My Org" }

func (*Org) Hint(*api.Responses) string {
	return "We will use this name in the project and in the documentation."
}

func (h *Org) Discover() api.Value {
	if _, org, ok := h.composerDescription(); ok {
		return api.String(org)
	}
	return api.None()
}

func (*Org) Default(r *api.Responses) api.Value {
	if name := r.Str(IDName); name != "" {
		return api.String(name + " Org")
	}
	return api.None()
}

func (*Org) Validate(v api.Value) string {
	if !siteNameRe.MatchString(strings.TrimSpace(v.Str())) {
		return "Please enter a valid organization name."
	}
	return ""
}

func (*Org) Transform(v api.Value) api.Value { return trimString(v) }

func (*Org) Process(r *api.Responses, t *materialize.Tree) error {
	t.Replace("YOURORG", r.Str(IDOrg))
	return nil
}

// OrgMachineName is the organization identifier used in package names and
// image repositories.
type OrgMachineName struct{ Base }

func (*OrgMachineName) ID() string          { return IDOrgMachineName }
func (*OrgMachineName) Label() string       { return "Organization machine name" }
func (*OrgMachineName) Kind() Kind          { return KindText }
func (*OrgMachineName) IsRequired() bool    { return true }
func (*OrgMachineName) DependsOn() []string { return []string{IDOrg} }
func (*OrgMachineName) Placeholder() string { return "E.g. my_org" }

func (*OrgMachineName) Hint(*api.Responses) string {
	return "We will use this name in the code and for the container image names."
}

// Discover prefers the vendor of the composer package name and falls back to
// the owner of the origin remote.
func (h *OrgMachineName) Discover() api.Value {
	if h.ctx == nil || h.ctx.Dst == nil {
		return api.None()
	}
	if name, ok := discovery.JSONString(h.ctx.Dst, "composer.json", "name"); ok {
		if vendor, _, found := strings.Cut(name, "/"); found && vendor != "" {
			return api.String(ToMachineName(vendor))
		}
	}
	if remote, ok := discovery.ReadGitRemote(h.ctx.Dst); ok && remote.Owner != "" {
		return api.String(ToMachineName(remote.Owner))
	}
	return api.None()
}

func (*OrgMachineName) Default(r *api.Responses) api.Value {
	if mn := ToMachineName(r.Str(IDOrg)); mn != "" {
		return api.String(mn)
	}
	return api.None()
}

func (*OrgMachineName) Validate(v api.Value) string {
	if !machineNameRe.MatchString(v.Str()) {
		return "Please enter a valid organization machine name: only lowercase letters, numbers, and underscores are allowed."
	}
	return ""
}

func (*OrgMachineName) Transform(v api.Value) api.Value { return trimString(v) }

func (*OrgMachineName) Process(r *api.Responses, t *materialize.Tree) error {
	mn := r.Str(IDOrgMachineName)
	kebab := ToKebab(mn)
	t.ReplaceFunc(yourOrgRe, func(string) string { return mn })
	t.ReplaceFunc(yourOrgKebabRe, func(string) string { return kebab })
	return nil
}
