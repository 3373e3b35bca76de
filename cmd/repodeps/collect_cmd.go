package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/observatory-platform/repodeps/internal/collector"
	"github.com/observatory-platform/repodeps/internal/config"
	"github.com/observatory-platform/repodeps/internal/pkgmgr"
	"github.com/observatory-platform/repodeps/internal/utils/logger"
)

// Collect command flags
var (
	collectRoot    string
	collectWorkDir string
	collectTool    string
)

// createCollectCommand creates the collect subcommand
func createCollectCommand() *cobra.Command {
	collectCmd := &cobra.Command{
		Use:   "collect <repository> [repository ...]",
		Short: "Collect package metadata for the given repositories",
		Long: `Collect lists the available packages whose repository matches at least
one of the given patterns, then runs the info and deplist queries for each
of them. The results land in <root>.list, <root>.info and <root>.dep;
stderr from the queries is kept in <root>.errors when any was produced.

Output files are staged and only promoted once the whole run succeeds, so
an interrupted run never leaves partial results behind.

Examples:
  repodeps collect gemini-production
  repodeps collect gemini-production gemini-testing
  repodeps collect --root gemini 'gemini-.*'`,
		Args: cobra.MinimumNArgs(1),
		RunE: executeCollect,
	}

	collectCmd.Flags().StringVar(&collectRoot, "root", "",
		"Output file root name (default from config, normally 'pkg')")
	collectCmd.Flags().StringVar(&collectWorkDir, "workdir", "",
		"Directory for the output files (default from config)")
	collectCmd.Flags().StringVar(&collectTool, "pkg-manager", "",
		"Repository query tool: yum, dnf or tdnf (default: detect from host OS)")

	return collectCmd
}

// executeCollect handles the collect command execution logic
func executeCollect(cmd *cobra.Command, args []string) error {
	log := logger.Logger()

	// A signal during collection cancels the context; the collector then
	// removes its staging files and aborts without promoting anything.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tool := collectTool
	if tool == "" {
		tool = config.GlConfig.PkgManager
	}
	mgr, err := pkgmgr.New(ctx, tool)
	if err != nil {
		return err
	}

	root := collectRoot
	if root == "" {
		root = config.GlConfig.Root
	}
	workDir := collectWorkDir
	if workDir == "" {
		workDir = config.GlConfig.WorkDir
	}

	log.Infof("collecting packages from repositories %v", args)
	c := collector.New(mgr, collector.Options{Root: root, WorkDir: workDir})
	return c.Run(ctx, args)
}
