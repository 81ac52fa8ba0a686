package handler

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/drevops/vortex-sub001/api"
	"github.com/drevops/vortex-sub001/internal/discovery"
	"github.com/drevops/vortex-sub001/internal/materialize"
)

// composerDescriptionRe matches the description the template writes into
// composer.json, capturing the site and organization names.
var composerDescriptionRe = regexp.MustCompile(`^Drupal \d+ (?:implementation|site) of (.+?) for (.+?)\.?$`)

var siteNameRe = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ._'&-]*$`)

// composerDescription returns the site and organization names recorded in
// the destination's composer.json.
func (b Base) composerDescription() (site, org string, ok bool) {
	if b.ctx == nil || b.ctx.Dst == nil {
		return "", "", false
	}
	desc, found := discovery.JSONString(b.ctx.Dst, "composer.json", "description")
	if !found {
		return "", "", false
	}
	m := composerDescriptionRe.FindStringSubmatch(strings.TrimSpace(desc))
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// Name is the human-readable site name.
type Name struct{ Base }

func (*Name) ID() string       { return IDName }
func (*Name) Label() string    { return "Site name" }
func (*Name) Kind() Kind       { return KindText }
func (*Name) IsRequired() bool { return true }

func (*Name) Hint(*api.Responses) string { return "We will use this name in the project and in the documentation." }
func (*Name) Placeholder() string        { return "E.g. My Site" }

func (h *Name) Discover() api.Value {
	if site, _, ok := h.composerDescription(); ok {
		return api.String(site)
	}
	return api.None()
}

func (h *Name) Default(*api.Responses) api.Value {
	if h.ctx == nil || h.ctx.DstPath == "" {
		return api.None()
	}
	if title := ToTitle(filepath.Base(h.ctx.DstPath)); title != "" {
		return api.String(title)
	}
	return api.None()
}

func (*Name) Validate(v api.Value) string {
	if !siteNameRe.MatchString(strings.TrimSpace(v.Str())) {
		return "Please enter a valid project name."
	}
	return ""
}

func (*Name) Transform(v api.Value) api.Value { return trimString(v) }

func (*Name) Process(r *api.Responses, t *materialize.Tree) error {
	t.Replace("YOURSITE", r.Str(IDName))
	return nil
}
