package handler

import (
	"slices"

	"github.com/go-git/go-billy/v5/memfs"

	"github.com/drevops/vortex-sub001/api"
	"github.com/drevops/vortex-sub001/internal/config"
	"github.com/drevops/vortex-sub001/internal/materialize"
)

// Setting identifiers.
const (
	IDName                      = "name"
	IDMachineName               = "machine_name"
	IDOrg                       = "org"
	IDOrgMachineName            = "org_machine_name"
	IDDomain                    = "domain"
	IDCodeProvider              = "code_provider"
	IDProfile                   = "profile"
	IDProfileCustom             = "profile_custom"
	IDModulePrefix              = "module_prefix"
	IDTheme                     = "theme"
	IDHostingProvider           = "hosting_provider"
	IDWebroot                   = "webroot"
	IDServices                  = "services"
	IDDeployTypes               = "deploy_types"
	IDProvisionType             = "provision_type"
	IDDatabaseDownloadSource    = "database_download_source"
	IDDatabaseImage             = "database_image"
	IDCIProvider                = "ci_provider"
	IDDependencyUpdatesProvider = "dependency_updates_provider"
	IDAssignAuthorPR            = "assign_author_pr"
	IDLabelMergeConflictsPR     = "label_merge_conflicts_pr"
	IDPreserveDocsProject       = "preserve_docs_project"
	IDAICodeInstructions        = "ai_code_instructions"
	IDTimezone                  = "timezone"
	IDInternal                  = "internal"
)

// All returns every handler in registration order. The order is also a
// valid dependency order, so it is kept wherever dependencies allow.
func All(ctx *config.Context) []Handler {
	b := NewBase(ctx)
	return []Handler{
		&Name{Base: b},
		&MachineName{Base: b},
		&Org{Base: b},
		&OrgMachineName{Base: b},
		&Domain{Base: b},
		&CodeProvider{Base: b},
		&Profile{Base: b},
		&CustomProfile{Base: b},
		&ModulePrefix{Base: b},
		&Theme{Base: b},
		&HostingProvider{Base: b},
		&Webroot{Base: b},
		&Services{Base: b},
		&DeployTypes{Base: b},
		&ProvisionType{Base: b},
		&DatabaseDownloadSource{Base: b},
		&DatabaseImage{Base: b},
		&CIProvider{Base: b},
		&DependencyUpdatesProvider{Base: b},
		newAssignAuthorPR(b),
		newLabelMergeConflictsPR(b),
		&PreserveDocsProject{Base: b},
		&AICodeInstructions{Base: b},
		&Timezone{Base: b},
		&Internal{Base: b},
	}
}

// TokenNames lists the block tokens resolved by handlers, found by processing
// each of them against an empty tree.
func TokenNames(handlers []Handler) []string {
	tree := materialize.NewTree(memfs.New())
	r := api.NewResponses()
	for _, h := range handlers {
		_ = h.Process(r, tree)
	}

	var names []string
	for _, d := range tree.Log().Directives() {
		if td, ok := d.(materialize.TokenDirective); ok && !slices.Contains(names, td.Name) {
			names = append(names, td.Name)
		}
	}
	slices.Sort(names)
	return names
}
