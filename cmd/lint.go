package cmd

import (
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/drevops/vortex-sub001/api"
	"github.com/drevops/vortex-sub001/internal/config"
	"github.com/drevops/vortex-sub001/internal/handler"
	"github.com/drevops/vortex-sub001/internal/linter"
)

func newLintCmd(opts *rootOptions) *cobra.Command {
	var template string

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check template block tokens",
		Long: `Checks every text file of the template for block tokens whose
sentinels do not pair up, and for tokens no setting resolves.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer func() { _ = opts.logger.Sync() }()

			if template == "" {
				template = os.Getenv(config.EnvTemplateDir)
			}
			if template == "" {
				return api.Configf("template directory is required")
			}
			info, err := os.Stat(template)
			if err != nil || !info.IsDir() {
				return api.Configf("template %q is not a directory", template)
			}

			names := handler.TokenNames(handler.All(&config.Context{}))
			diags, err := linter.LintTree(osfs.New(template), linter.KnownNames(names), ".git")
			if err != nil {
				return fmt.Errorf("lint %s: %w", template, err)
			}
			for _, d := range diags {
				fmt.Fprintln(cmd.OutOrStdout(), d)
			}
			if len(diags) > 0 {
				return api.Configf("%d problem(s) found", len(diags))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&template, "template", "t", "", "Template directory to check")
	return cmd
}
