package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jenquist/shared-agent-skills/internal/catalog"
	"github.com/jenquist/shared-agent-skills/internal/config"
	"github.com/jenquist/shared-agent-skills/internal/locate"
	"github.com/jenquist/shared-agent-skills/internal/logging"
	"github.com/jenquist/shared-agent-skills/internal/reconcile"
	"github.com/jenquist/shared-agent-skills/internal/report"
)

// session is the resolved environment one command runs in.
type session struct {
	root    string
	cfg     *config.Config
	logger  *slog.Logger
	closer  io.Closer
	printer *report.Printer
}

// getWorkDir returns the effective working directory.
func getWorkDir() (string, error) {
	if workDir != "" {
		return workDir, nil
	}
	return os.Getwd()
}

// newSession finds the root directory with findRoot, loads config from it
// and applies the command-line overrides.
func newSession(cmd *cobra.Command, findRoot func(string) (string, error)) (*session, error) {
	start, err := getWorkDir()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	root, err := findRoot(start)
	if err != nil {
		return nil, err
	}

	var cfg *config.Config
	if configFile != "" {
		cfg, err = config.Load(locate.Resolve(start, configFile))
	} else {
		cfg, err = config.LoadFromDir(root)
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if targetDir != "" {
		cfg.Link.Target = targetDir
	}
	if sourceDir != "" {
		cfg.Link.Source = locate.Resolve(start, sourceDir)
	}
	if verbose {
		cfg.Logging.Level = config.LogLevelDebug
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, closer, err := logging.NewFromConfig(cfg, root, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}

	mode := report.DetectColorMode()
	if noColor {
		mode = report.ColorNever
	}

	return &session{
		root:    root,
		cfg:     cfg,
		logger:  logging.WithFields(logger, "command", cmd.Name(), "root", root),
		closer:  closer,
		printer: report.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode, verbose),
	}, nil
}

// Close releases the log file, if any.
func (s *session) Close() {
	if s.closer != nil {
		s.closer.Close()
	}
}

// catalogRoot returns the explicit source when configured, otherwise the
// skills directory of the installed shared package.
func (s *session) catalogRoot() (string, error) {
	if s.cfg.Link.Source != "" {
		return locate.Resolve(s.root, s.cfg.Link.Source), nil
	}
	return locate.CatalogRoot(s.root, s.cfg.Link.Packages)
}

// loadCatalog reads and filters the catalog once for this run.
func (s *session) loadCatalog() (*catalog.Catalog, error) {
	root, err := s.catalogRoot()
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(root)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("loaded catalog", "root", cat.Root, "skills", cat.Len())

	return cat.Filter(s.cfg.Link.Include, s.cfg.Link.Exclude)
}

// target returns the absolute target directory.
func (s *session) target() string {
	return locate.Resolve(s.root, s.cfg.Link.Target)
}

// runMode runs mode against the target directory and prints the results.
func runMode(cmd *cobra.Command, mode reconcile.Mode) error {
	s, err := newSession(cmd, locate.ProjectRoot)
	if err != nil {
		return err
	}
	defer s.Close()

	cat, err := s.loadCatalog()
	if err != nil {
		return err
	}

	display := s.cfg.Link.Target
	if mode == reconcile.ModeClean {
		s.printer.CleanStart(display)
	}

	r := reconcile.New(reconcile.WithLogger(s.logger))
	summary, err := r.Reconcile(cat, s.target(), mode)
	if err != nil {
		return err
	}

	if summary.CreatedTarget {
		s.printer.CreatedTarget(display)
	}
	s.printer.Entries(summary)
	s.printer.Summary(summary, display)

	if summary.HasErrors() {
		return fmt.Errorf("%w: %w", ErrReported, summary.Err())
	}
	return nil
}
