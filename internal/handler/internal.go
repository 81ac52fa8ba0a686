package handler

import (
	"fmt"
	"net/url"

	"github.com/drevops/vortex-sub001/api"
	"github.com/drevops/vortex-sub001/internal/config"
	"github.com/drevops/vortex-sub001/internal/materialize"
)

// installerOnlyPaths exist in the template for its own development and
// never ship with a generated project.
var installerOnlyPaths = []string{
	".vortex",
	".github/workflows/vortex-test-common.yml",
	".github/workflows/vortex-release-docs.yml",
}

// Internal applies template-wide housekeeping once every other setting has
// been processed: stripping template development blocks, stamping the
// template version and removing installer-only files. It is never asked.
type Internal struct{ Base }

func (*Internal) ID() string    { return IDInternal }
func (*Internal) Label() string { return "Internal" }
func (*Internal) Kind() Kind    { return KindText }

// DependsOn names every other setting so Internal always processes last.
func (*Internal) DependsOn() []string {
	return []string{
		IDName, IDMachineName, IDOrg, IDOrgMachineName, IDDomain, IDCodeProvider,
		IDProfile, IDProfileCustom, IDModulePrefix, IDTheme, IDHostingProvider,
		IDWebroot, IDServices, IDDeployTypes, IDProvisionType, IDDatabaseDownloadSource,
		IDDatabaseImage, IDCIProvider, IDDependencyUpdatesProvider, IDAssignAuthorPR,
		IDLabelMergeConflictsPR, IDPreserveDocsProject, IDAICodeInstructions, IDTimezone,
	}
}

func (h *Internal) ResolvedValue(*api.Responses) api.Value {
	return api.String(h.version())
}

func (*Internal) ResolvedMessage(_ *api.Responses, v api.Value) string {
	return fmt.Sprintf("Installing template version %s.", v.Str())
}

func (*Internal) Process(r *api.Responses, t *materialize.Tree) error {
	version := r.Str(IDInternal)
	t.Token("VORTEX_DEV", false)
	t.Replace("VORTEX_VERSION_URLENCODED", url.QueryEscape(version))
	t.Replace("VORTEX_VERSION", version)
	t.Remove(installerOnlyPaths...)
	return nil
}

func (h *Internal) version() string {
	if h.ctx == nil || h.ctx.Version == "" {
		return config.DefaultVersion
	}
	return h.ctx.Version
}
