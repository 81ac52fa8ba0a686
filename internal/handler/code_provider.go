package handler

import (
	"github.com/drevops/vortex-sub001/api"
	"github.com/drevops/vortex-sub001/internal/materialize"
)

const (
	CodeProviderGitHub = "github"
	CodeProviderOther  = "other"
)

// CodeProvider selects where the repository is hosted.
type CodeProvider struct{ Base }

func (*CodeProvider) ID() string    { return IDCodeProvider }
func (*CodeProvider) Label() string { return "Repository provider" }
func (*CodeProvider) Kind() Kind    { return KindSelect }

func (*CodeProvider) Hint(*api.Responses) string {
	return "Vortex offers full automation with GitHub, while support for other providers is limited."
}

func (*CodeProvider) Options(*api.Responses) []Option {
	return []Option{
		{Value: CodeProviderGitHub, Label: "GitHub"},
		{Value: CodeProviderOther, Label: "Other"},
	}
}

func (h *CodeProvider) Discover() api.Value {
	if h.dstExists(".github") {
		return api.String(CodeProviderGitHub)
	}
	return api.String(CodeProviderOther)
}

func (*CodeProvider) Default(*api.Responses) api.Value { return api.String(CodeProviderGitHub) }

func (*CodeProvider) Process(r *api.Responses, t *materialize.Tree) error {
	github := r.Str(IDCodeProvider) == CodeProviderGitHub
	t.Token("CODE_PROVIDER_GITHUB", github)
	if !github {
		t.Remove(".github")
	}
	return nil
}

func isGitHub(r *api.Responses) bool {
	return r.Str(IDCodeProvider) == CodeProviderGitHub
}
