package handler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/drevops/vortex-sub001/api"
	"github.com/drevops/vortex-sub001/internal/materialize"
)

const (
	HostingNone   = "none"
	HostingAcquia = "acquia"
	HostingLagoon = "lagoon"
	HostingOther  = "other"
)

// HostingProvider selects where the site is hosted.
type HostingProvider struct{ Base }

func (*HostingProvider) ID() string    { return IDHostingProvider }
func (*HostingProvider) Label() string { return "Hosting provider" }
func (*HostingProvider) Kind() Kind    { return KindSelect }

func (*HostingProvider) Hint(*api.Responses) string {
	return "Select the hosting provider where the project is hosted. The web root directory will be set accordingly."
}

func (*HostingProvider) Options(*api.Responses) []Option {
	return []Option{
		{Value: HostingAcquia, Label: "Acquia Cloud"},
		{Value: HostingLagoon, Label: "Lagoon"},
		{Value: HostingOther, Label: "Other"},
		{Value: HostingNone, Label: "None"},
	}
}

func (h *HostingProvider) Discover() api.Value {
	switch {
	case h.dstExists("hooks/library"):
		return api.String(HostingAcquia)
	case h.dstExists(".lagoon.yml"):
		return api.String(HostingLagoon)
	}
	return api.None()
}

func (*HostingProvider) Default(*api.Responses) api.Value { return api.String(HostingNone) }

func (*HostingProvider) Process(r *api.Responses, t *materialize.Tree) error {
	hosting := r.Str(IDHostingProvider)
	t.Token("HOSTING_ACQUIA", hosting == HostingAcquia)
	t.Token("HOSTING_LAGOON", hosting == HostingLagoon)
	if hosting != HostingAcquia {
		t.Remove("hooks")
	}
	if hosting != HostingLagoon {
		t.Remove(".lagoon.yml")
	}
	return nil
}

// templateWebroot is the web root directory the template ships with.
const templateWebroot = "web"

var (
	webrootRe       = regexp.MustCompile(`^[a-z0-9_-]+$`)
	webrootPrefixRe = regexp.MustCompile(`\bweb/`)
	hostingWebroots = map[string]string{HostingAcquia: "docroot", HostingLagoon: "web"}
	hostingLabels   = map[string]string{HostingAcquia: "Acquia Cloud", HostingLagoon: "Lagoon"}
)

// Webroot is the directory serving the site. Acquia and Lagoon hosting fix
// it; otherwise it is asked for.
type Webroot struct{ Base }

func (*Webroot) ID() string          { return IDWebroot }
func (*Webroot) Label() string       { return "Custom web root directory" }
func (*Webroot) Kind() Kind          { return KindText }
func (*Webroot) IsRequired() bool    { return true }
func (*Webroot) DependsOn() []string { return []string{IDHostingProvider} }
func (*Webroot) Placeholder() string { return "E.g. public" }

func (*Webroot) Hint(*api.Responses) string {
	return "Custom directory where the web server serves the site."
}

func (*Webroot) ResolvedValue(r *api.Responses) api.Value {
	if root, ok := hostingWebroots[r.Str(IDHostingProvider)]; ok {
		return api.String(root)
	}
	return api.None()
}

func (*Webroot) ResolvedMessage(r *api.Responses, v api.Value) string {
	return fmt.Sprintf("Web root will be set to %q for %s hosting.", v.Str(), hostingLabels[r.Str(IDHostingProvider)])
}

func (h *Webroot) Discover() api.Value { return h.dotenv("WEBROOT") }

func (*Webroot) Default(*api.Responses) api.Value { return api.String(templateWebroot) }

func (*Webroot) Validate(v api.Value) string {
	if !webrootRe.MatchString(normalizeWebroot(v.Str())) {
		return "Please enter a valid web root: only lowercase letters, numbers, hyphens and underscores are allowed."
	}
	return ""
}

func (*Webroot) Transform(v api.Value) api.Value {
	if v.Kind() != api.KindString {
		return v
	}
	return api.String(normalizeWebroot(v.Str()))
}

func (*Webroot) Process(r *api.Responses, t *materialize.Tree) error {
	root := r.Str(IDWebroot)
	if root == "" || root == templateWebroot {
		return nil
	}
	if err := t.Move(templateWebroot, root); err != nil {
		return fmt.Errorf("move web root: %w", err)
	}
	t.ReplaceFunc(webrootPrefixRe, func(string) string { return root + "/" })
	return setEnv(t, "WEBROOT", root)
}

func normalizeWebroot(s string) string {
	return strings.Trim(s, "/ ")
}
