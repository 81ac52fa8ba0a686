package handler

import (
	"regexp"
	"slices"

	"github.com/drevops/vortex-sub001/api"
	"github.com/drevops/vortex-sub001/internal/materialize"
)

const (
	ProvisionDatabase = "database"
	ProvisionProfile  = "profile"
)

// ProvisionType selects how a fresh environment gets its database.
type ProvisionType struct{ Base }

func (*ProvisionType) ID() string    { return IDProvisionType }
func (*ProvisionType) Label() string { return "Provision type" }
func (*ProvisionType) Kind() Kind    { return KindSelect }

func (*ProvisionType) Hint(*api.Responses) string {
	return "Selecting 'Profile' will install the site from a profile instead of importing a database dump."
}

func (*ProvisionType) Options(*api.Responses) []Option {
	return []Option{
		{Value: ProvisionDatabase, Label: "Import from database dump"},
		{Value: ProvisionProfile, Label: "Install from profile"},
	}
}

func (h *ProvisionType) Discover() api.Value { return h.dotenv("VORTEX_PROVISION_TYPE") }

func (*ProvisionType) Default(*api.Responses) api.Value { return api.String(ProvisionDatabase) }

func (*ProvisionType) Process(r *api.Responses, t *materialize.Tree) error {
	provision := r.Str(IDProvisionType)
	t.Token("PROVISION_TYPE_PROFILE", provision == ProvisionProfile)
	return setEnv(t, "VORTEX_PROVISION_TYPE", provision)
}

const (
	DBSourceURL               = "url"
	DBSourceFTP               = "ftp"
	DBSourceAcquia            = "acquia"
	DBSourceLagoon            = "lagoon"
	DBSourceContainerRegistry = "container_registry"
	DBSourceNone              = "none"
)

var allDBSources = []string{DBSourceURL, DBSourceFTP, DBSourceAcquia, DBSourceLagoon, DBSourceContainerRegistry, DBSourceNone}

// DatabaseDownloadSource selects where database dumps are fetched from.
// It only applies when environments are provisioned from a database.
type DatabaseDownloadSource struct{ Base }

func (*DatabaseDownloadSource) ID() string    { return IDDatabaseDownloadSource }
func (*DatabaseDownloadSource) Label() string { return "Database source" }
func (*DatabaseDownloadSource) Kind() Kind    { return KindSelect }

func (*DatabaseDownloadSource) DependsOn() []string {
	return []string{IDProvisionType, IDHostingProvider}
}

func (*DatabaseDownloadSource) Hint(*api.Responses) string {
	return "The database can be downloaded as an exported dump file or pre-packaged in a container image."
}

func (*DatabaseDownloadSource) ShouldRun(r *api.Responses) bool {
	return r.Str(IDProvisionType) == ProvisionDatabase
}

// Options offers the hosting-specific sources only for matching hosting.
func (*DatabaseDownloadSource) Options(r *api.Responses) []Option {
	opts := []Option{
		{Value: DBSourceURL, Label: "URL download"},
		{Value: DBSourceFTP, Label: "FTP download"},
		{Value: DBSourceAcquia, Label: "Acquia backup"},
		{Value: DBSourceLagoon, Label: "Lagoon environment"},
		{Value: DBSourceContainerRegistry, Label: "Container registry"},
		{Value: DBSourceNone, Label: "Other"},
	}
	hosting := ""
	if r != nil {
		hosting = r.Str(IDHostingProvider)
	}
	return slices.DeleteFunc(opts, func(o Option) bool {
		return (o.Value == DBSourceAcquia && hosting != HostingAcquia) ||
			(o.Value == DBSourceLagoon && hosting != HostingLagoon)
	})
}

func (h *DatabaseDownloadSource) Discover() api.Value {
	v := h.dotenv("VORTEX_DB_DOWNLOAD_SOURCE")
	if !slices.Contains(allDBSources, v.Str()) {
		return api.None()
	}
	return v
}

func (*DatabaseDownloadSource) Default(r *api.Responses) api.Value {
	switch r.Str(IDHostingProvider) {
	case HostingAcquia:
		return api.String(DBSourceAcquia)
	case HostingLagoon:
		return api.String(DBSourceLagoon)
	}
	return api.String(DBSourceURL)
}

func (*DatabaseDownloadSource) Process(r *api.Responses, t *materialize.Tree) error {
	source := r.Str(IDDatabaseDownloadSource)
	resolveTokens(t, "DB_DOWNLOAD_SOURCE", allDBSources, func(s string) bool { return s == source })
	return setEnv(t, "VORTEX_DB_DOWNLOAD_SOURCE", source)
}

var imageRe = regexp.MustCompile(`^[a-z0-9]+(?:[._-][a-z0-9]+)*/[a-z0-9]+(?:[._-][a-z0-9]+)*(?::[\w][\w.-]*)?$`)

// DatabaseImage names the container image that carries the database when
// dumps come from a container registry.
type DatabaseImage struct{ Base }

func (*DatabaseImage) ID() string          { return IDDatabaseImage }
func (*DatabaseImage) Label() string       { return "Database container image" }
func (*DatabaseImage) Kind() Kind          { return KindText }
func (*DatabaseImage) IsRequired() bool    { return true }
func (*DatabaseImage) Placeholder() string { return "E.g. my_org/my_site-data:latest" }

func (*DatabaseImage) DependsOn() []string {
	return []string{IDDatabaseDownloadSource, IDOrgMachineName, IDMachineName}
}

func (*DatabaseImage) Hint(*api.Responses) string {
	return "Use \"latest\" tag for the latest version. CI will be building this image overnight."
}

func (*DatabaseImage) ShouldRun(r *api.Responses) bool {
	return r.Str(IDDatabaseDownloadSource) == DBSourceContainerRegistry
}

func (h *DatabaseImage) Discover() api.Value { return h.dotenv("VORTEX_DB_IMAGE") }

func (*DatabaseImage) Default(r *api.Responses) api.Value {
	org, mn := r.Str(IDOrgMachineName), r.Str(IDMachineName)
	if org == "" || mn == "" {
		return api.None()
	}
	return api.String(org + "/" + mn + "-data:latest")
}

func (*DatabaseImage) Validate(v api.Value) string {
	if !imageRe.MatchString(v.Str()) {
		return "Please enter a valid container image name with an optional tag."
	}
	return ""
}

func (*DatabaseImage) Transform(v api.Value) api.Value { return trimString(v) }

// Process writes the image straight into .env so the placeholder
// substitutions of the flush cannot rewrite it.
func (*DatabaseImage) Process(r *api.Responses, t *materialize.Tree) error {
	return setEnv(t, "VORTEX_DB_IMAGE", r.Str(IDDatabaseImage))
}
