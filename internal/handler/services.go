package handler

import (
	"slices"

	"github.com/drevops/vortex-sub001/api"
	"github.com/drevops/vortex-sub001/internal/discovery"
	"github.com/drevops/vortex-sub001/internal/materialize"
)

const (
	ServiceClamAV = "clamav"
	ServiceSolr   = "solr"
	ServiceValkey = "valkey"
)

// Services selects the auxiliary containers of the local stack.
type Services struct{ Base }

func (*Services) ID() string    { return IDServices }
func (*Services) Label() string { return "Services" }
func (*Services) Kind() Kind    { return KindMultiSelect }

func (*Services) Hint(*api.Responses) string {
	return "Select the services to add to the local and hosted stack."
}

func (*Services) Options(*api.Responses) []Option {
	return []Option{
		{Value: ServiceClamAV, Label: "ClamAV"},
		{Value: ServiceSolr, Label: "Solr"},
		{Value: ServiceValkey, Label: "Valkey"},
	}
}

// Discover lists the known services declared in docker-compose.yml.
func (h *Services) Discover() api.Value {
	if h.ctx == nil || h.ctx.Dst == nil {
		return api.None()
	}
	keys, ok := discovery.YAMLKeys(h.ctx.Dst, "docker-compose.yml", "services")
	if !ok {
		return api.None()
	}
	var found []string
	for _, s := range OptionValues(h.Options(nil)) {
		if slices.Contains(keys, s) {
			found = append(found, s)
		}
	}
	return api.List(found...)
}

func (h *Services) Default(*api.Responses) api.Value {
	return api.List(OptionValues(h.Options(nil))...)
}

func (h *Services) Process(r *api.Responses, t *materialize.Tree) error {
	selected := r.Items(IDServices)
	resolveTokens(t, "SERVICE", OptionValues(h.Options(r)), func(s string) bool {
		return slices.Contains(selected, s)
	})
	return nil
}
