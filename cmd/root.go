package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/drevops/vortex-sub001/internal/config"
	"github.com/drevops/vortex-sub001/internal/logging"
	"github.com/drevops/vortex-sub001/internal/prompt"
)

type rootOptions struct {
	template      string
	configSpec    string
	version       string
	noInteraction bool
	verbose       bool

	logger *zap.Logger
}

// NewRootCmd builds the installer command.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "installer [destination]",
		Short: "Install a project from the template into a directory",
		Long: `Installs a project from the template into the destination directory.

Every setting is discovered from an existing project in the destination,
defaulted, optionally asked for, and then applied to a copy of the template
before it is written to the destination.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.logger = logging.New(opts.verbose, cmd.ErrOrStderr())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer func() { _ = opts.logger.Sync() }()

			cfg, err := opts.config(cmd, args)
			if err != nil {
				return err
			}
			if cfg.Verbose && !opts.verbose {
				opts.logger = logging.New(true, cmd.ErrOrStderr())
			}
			opts.logger.Debug("loaded config", zap.Stringer("config", cfg))

			interactive := !cfg.NoInteraction
			if f, ok := cmd.InOrStdin().(*os.File); ok {
				interactive = interactive && prompt.IsInteractive(f)
			}

			return install(cfg, installIO{
				in:          cmd.InOrStdin(),
				out:         cmd.OutOrStdout(),
				interactive: interactive,
				logger:      opts.logger,
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.template, "template", "t", "", "Template directory to install from")
	f.StringVarP(&opts.configSpec, "config", "c", "", "Config file (YAML or JSON) or inline JSON answers")
	f.BoolVarP(&opts.noInteraction, "no-interaction", "n", false, "Accept discovered and default values without asking")
	f.StringVar(&opts.version, "version", "", "Template version recorded in the project")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log every resolution step")

	cmd.AddCommand(newLintCmd(opts))
	return cmd
}

// config layers flags and the destination argument over the loaded config.
func (o *rootOptions) config(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.Load(o.configSpec)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("template") {
		cfg.TemplateDir = o.template
	}
	if flags.Changed("version") {
		cfg.Version = o.version
	}
	if flags.Changed("no-interaction") {
		cfg.NoInteraction = o.noInteraction
	}
	if flags.Changed("verbose") {
		cfg.Verbose = o.verbose
	}
	if len(args) > 0 {
		cfg.Destination = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
