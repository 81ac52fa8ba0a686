package handler

import (
	"slices"

	"github.com/drevops/vortex-sub001/api"
	"github.com/drevops/vortex-sub001/internal/materialize"
)

const (
	CIGitHubActions = "gha"
	CICircleCI      = "circleci"
	CINone          = "none"
)

const (
	ghaWorkflow    = ".github/workflows/build-test-deploy.yml"
	circleCIDir    = ".circleci"
	circleCIConfig = ".circleci/config.yml"
)

// CIProvider selects the continuous integration service.
type CIProvider struct{ Base }

func (*CIProvider) ID() string          { return IDCIProvider }
func (*CIProvider) Label() string       { return "Continuous Integration provider" }
func (*CIProvider) Kind() Kind          { return KindSelect }
func (*CIProvider) DependsOn() []string { return []string{IDCodeProvider} }

func (*CIProvider) Hint(*api.Responses) string {
	return "Both providers support equivalent workflow."
}

// Options offers GitHub Actions only for repositories hosted on GitHub.
func (*CIProvider) Options(r *api.Responses) []Option {
	opts := []Option{
		{Value: CIGitHubActions, Label: "GitHub Actions"},
		{Value: CICircleCI, Label: "CircleCI"},
		{Value: CINone, Label: "None"},
	}
	if r == nil || !isGitHub(r) {
		opts = slices.DeleteFunc(opts, func(o Option) bool { return o.Value == CIGitHubActions })
	}
	return opts
}

func (h *CIProvider) Discover() api.Value {
	switch {
	case h.dstExists(ghaWorkflow):
		return api.String(CIGitHubActions)
	case h.dstExists(circleCIConfig):
		return api.String(CICircleCI)
	}
	return api.String(CINone)
}

func (*CIProvider) Default(r *api.Responses) api.Value {
	if isGitHub(r) {
		return api.String(CIGitHubActions)
	}
	return api.String(CICircleCI)
}

func (*CIProvider) Process(r *api.Responses, t *materialize.Tree) error {
	ci := r.Str(IDCIProvider)
	t.Token("CI_PROVIDER_GHA", ci == CIGitHubActions)
	t.Token("CI_PROVIDER_CIRCLECI", ci == CICircleCI)
	t.Token("CI_PROVIDER_ANY", ci != CINone)
	if ci != CIGitHubActions {
		t.Remove(ghaWorkflow)
	}
	if ci != CICircleCI {
		t.Remove(circleCIDir)
	}
	return nil
}

const (
	DepsRenovateCI  = "renovatebot_ci"
	DepsRenovateApp = "renovatebot_app"
	DepsNone        = "none"
)

const (
	renovateConfig   = "renovate.json"
	renovateWorkflow = ".github/workflows/update-dependencies.yml"
)

// DependencyUpdatesProvider selects how dependency update pull requests are
// raised: a self-hosted Renovate run in CI, the hosted Renovate app, or not
// at all.
type DependencyUpdatesProvider struct{ Base }

func (*DependencyUpdatesProvider) ID() string          { return IDDependencyUpdatesProvider }
func (*DependencyUpdatesProvider) Label() string       { return "Dependency updates provider" }
func (*DependencyUpdatesProvider) Kind() Kind          { return KindSelect }
func (*DependencyUpdatesProvider) DependsOn() []string { return []string{IDCIProvider} }

func (*DependencyUpdatesProvider) Hint(*api.Responses) string {
	return "Use a self-hosted service if you cannot install a GitHub app."
}

func (*DependencyUpdatesProvider) Options(*api.Responses) []Option {
	return []Option{
		{Value: DepsRenovateCI, Label: "Renovate self-hosted in CI"},
		{Value: DepsRenovateApp, Label: "Renovate GitHub app"},
		{Value: DepsNone, Label: "None"},
	}
}

func (h *DependencyUpdatesProvider) Discover() api.Value {
	if !h.dstExists(renovateConfig) {
		return api.String(DepsNone)
	}
	if h.dstExists(renovateWorkflow) {
		return api.String(DepsRenovateCI)
	}
	return api.String(DepsRenovateApp)
}

func (*DependencyUpdatesProvider) Default(r *api.Responses) api.Value {
	if r.Str(IDCIProvider) == CINone {
		return api.String(DepsRenovateApp)
	}
	return api.String(DepsRenovateCI)
}

func (*DependencyUpdatesProvider) Process(r *api.Responses, t *materialize.Tree) error {
	deps := r.Str(IDDependencyUpdatesProvider)
	t.Token("DEPS_UPDATE_PROVIDER", deps != DepsNone)
	t.Token("DEPS_UPDATE_PROVIDER_CI", deps == DepsRenovateCI)
	t.Token("DEPS_UPDATE_PROVIDER_APP", deps == DepsRenovateApp)
	if deps == DepsNone {
		t.Remove(renovateConfig)
	}
	if deps != DepsRenovateCI {
		t.Remove(renovateWorkflow)
	}
	return nil
}
