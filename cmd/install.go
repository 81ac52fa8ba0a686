package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"go.uber.org/zap"

	"github.com/drevops/vortex-sub001/internal/config"
	"github.com/drevops/vortex-sub001/internal/discovery"
	"github.com/drevops/vortex-sub001/internal/handler"
	"github.com/drevops/vortex-sub001/internal/linter"
	"github.com/drevops/vortex-sub001/internal/materialize"
	"github.com/drevops/vortex-sub001/internal/pipeline"
	"github.com/drevops/vortex-sub001/internal/prompt"
)

type installIO struct {
	in          io.Reader
	out         io.Writer
	interactive bool
	logger      *zap.Logger
}

// install copies the template into a temporary working tree, resolves and
// applies every setting there, and copies the result to the destination.
func install(cfg *config.Config, iop installIO) error {
	logger := iop.logger

	dstPath, err := filepath.Abs(cfg.Destination)
	if err != nil {
		return fmt.Errorf("resolve destination: %w", err)
	}
	if err := os.MkdirAll(dstPath, 0o755); err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	dst := osfs.New(dstPath)

	workPath, err := os.MkdirTemp("", "installer-")
	if err != nil {
		return fmt.Errorf("create working tree: %w", err)
	}
	defer func() { _ = os.RemoveAll(workPath) }()
	work := osfs.New(workPath)

	if err := materialize.Copy(work, osfs.New(cfg.TemplateDir), ".git"); err != nil {
		return fmt.Errorf("copy template: %w", err)
	}

	ctx := &config.Context{
		DstPath:     dstPath,
		Dst:         dst,
		WorkPath:    workPath,
		Work:        work,
		Preexisting: discovery.IsProject(dst),
		Interactive: iop.interactive,
		Version:     cfg.Version,
	}
	logger.Info("installing",
		zap.String("template", cfg.TemplateDir),
		zap.String("destination", dstPath),
		zap.Bool("existing_project", ctx.Preexisting),
		zap.Bool("interactive", ctx.Interactive))

	opts := []pipeline.Option{
		pipeline.WithAnswers(cfg.Answers),
		pipeline.WithLogger(logger),
	}
	if ctx.Interactive {
		opts = append(opts, pipeline.WithPrompter(prompt.NewTerminal(iop.in, iop.out)))
	}
	o, err := pipeline.New(ctx, handler.All(ctx), opts...)
	if err != nil {
		return err
	}

	tree := materialize.NewTree(work,
		materialize.WithLogger(logger),
		materialize.WithFormatter(materialize.FormatGo))
	r, stats, err := o.Run(tree)
	if err != nil {
		return err
	}

	// Every resolved token is gone after the flush; whatever is left was
	// never resolved by any setting.
	leftovers, err := linter.LintTree(work, linter.KnownNames(nil), ".git")
	if err != nil {
		return fmt.Errorf("check working tree: %w", err)
	}
	for _, d := range leftovers {
		logger.Warn("token left in project", zap.Stringer("at", d))
	}

	fmt.Fprintln(iop.out)
	if err := prompt.Summary(iop.out, o.Handlers(), r); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	if err := materialize.Copy(dst, work, ".git"); err != nil {
		return fmt.Errorf("copy to destination: %w", err)
	}
	logger.Info("installed",
		zap.String("destination", dstPath),
		zap.Int("files_changed", stats.FilesChanged),
		zap.Int("renamed", stats.Renamed))
	return nil
}
