package handler

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/drevops/vortex-sub001/api"
	"github.com/drevops/vortex-sub001/internal/materialize"
)

var domainRe = regexp.MustCompile(`^([a-z0-9]([a-z0-9-]*[a-z0-9])?\.)+[a-z]{2,}$`)

// Domain is the public domain of the site.
type Domain struct{ Base }

func (*Domain) ID() string          { return IDDomain }
func (*Domain) Label() string       { return "Public domain" }
func (*Domain) Kind() Kind          { return KindText }
func (*Domain) IsRequired() bool    { return true }
func (*Domain) DependsOn() []string { return []string{IDMachineName} }
func (*Domain) Placeholder() string { return "E.g. example.com" }

func (*Domain) Hint(*api.Responses) string {
	return "Domain name without protocol and trailing slash."
}

func (h *Domain) Discover() api.Value {
	origin := h.dotenv("DRUPAL_STAGE_FILE_PROXY_ORIGIN")
	if !origin.Present() {
		return api.None()
	}
	if d := normalizeDomain(origin.Str()); d != "" {
		return api.String(d)
	}
	return api.None()
}

func (*Domain) Default(r *api.Responses) api.Value {
	if kebab := ToKebab(r.Str(IDMachineName)); kebab != "" {
		return api.String(kebab + ".com")
	}
	return api.None()
}

func (*Domain) Validate(v api.Value) string {
	if !domainRe.MatchString(normalizeDomain(v.Str())) {
		return "Please enter a valid domain name."
	}
	return ""
}

func (*Domain) Transform(v api.Value) api.Value {
	if v.Kind() != api.KindString {
		return v
	}
	return api.String(normalizeDomain(v.Str()))
}

func (*Domain) Process(r *api.Responses, t *materialize.Tree) error {
	t.Replace("your-site-domain.example", r.Str(IDDomain))
	return nil
}

// normalizeDomain strips scheme, credentials, port, path and any leading
// "www." labels.
func normalizeDomain(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	host := u.Hostname()
	for strings.HasPrefix(host, "www.") {
		host = host[len("www."):]
	}
	return host
}
