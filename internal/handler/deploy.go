package handler

import (
	"slices"
	"strings"

	"github.com/drevops/vortex-sub001/api"
	"github.com/drevops/vortex-sub001/internal/materialize"
)

const (
	DeployArtifact       = "artifact"
	DeployLagoon         = "lagoon"
	DeployContainerImage = "container_image"
	DeployWebhook        = "webhook"
)

var allDeployTypes = []string{DeployArtifact, DeployLagoon, DeployContainerImage, DeployWebhook}

// DeployTypes selects how code reaches the hosting environments.
type DeployTypes struct{ Base }

func (*DeployTypes) ID() string          { return IDDeployTypes }
func (*DeployTypes) Label() string       { return "Deployment types" }
func (*DeployTypes) Kind() Kind          { return KindMultiSelect }
func (*DeployTypes) DependsOn() []string { return []string{IDHostingProvider} }

func (*DeployTypes) Hint(*api.Responses) string {
	return "You can deploy code using one or more methods."
}

// Options offers Lagoon deployments only for Lagoon hosting.
func (*DeployTypes) Options(r *api.Responses) []Option {
	opts := []Option{
		{Value: DeployArtifact, Label: "Code artifact"},
		{Value: DeployLagoon, Label: "Lagoon webhook"},
		{Value: DeployContainerImage, Label: "Container image"},
		{Value: DeployWebhook, Label: "Custom webhook"},
	}
	if r == nil || r.Str(IDHostingProvider) != HostingLagoon {
		opts = slices.DeleteFunc(opts, func(o Option) bool { return o.Value == DeployLagoon })
	}
	return opts
}

func (h *DeployTypes) Discover() api.Value {
	v := h.dotenv("VORTEX_DEPLOY_TYPES")
	if !v.Present() {
		return v
	}
	var types []string
	for _, item := range SplitList(v.Str()) {
		if slices.Contains(allDeployTypes, item) {
			types = append(types, item)
		}
	}
	return api.List(types...)
}

func (*DeployTypes) Default(r *api.Responses) api.Value {
	switch r.Str(IDHostingProvider) {
	case HostingLagoon:
		return api.List(DeployLagoon)
	case HostingAcquia:
		return api.List(DeployArtifact)
	}
	return api.List(DeployWebhook)
}

func (*DeployTypes) Process(r *api.Responses, t *materialize.Tree) error {
	types := r.Items(IDDeployTypes)
	resolveTokens(t, "DEPLOY_TYPES", allDeployTypes, func(d string) bool {
		return slices.Contains(types, d)
	})
	return setEnv(t, "VORTEX_DEPLOY_TYPES", strings.Join(types, ","))
}
