package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/observatory-platform/repodeps/internal/config"
	"github.com/observatory-platform/repodeps/internal/format"
	"github.com/observatory-platform/repodeps/internal/pkgdep"
	"github.com/observatory-platform/repodeps/internal/utils/logger"
)

// Format command flags
var (
	outFormat  string
	inputRoot  string
	includeAll bool
	prettyJSON bool
)

// createFormatCommand creates the format subcommand
func createFormatCommand() *cobra.Command {
	formatCmd := &cobra.Command{
		Use:   "format",
		Short: "Render a dependency report from collected metadata",
		Long: `Format reads the <root>.info and <root>.dep files written by collect and
prints the package dependency report to standard output.

Unless --all is given, only internal dependencies are listed: dependencies
with at least one provider that is itself part of the collected package set.

Examples:
  repodeps format -o text
  repodeps format -o csv --all > deps.csv
  repodeps format -o wiki -i gemini
  repodeps format -o json --pretty`,
		Args: cobra.NoArgs,
		RunE: executeFormat,
	}

	formatCmd.Flags().StringVarP(&outFormat, "output-format", "o", format.FormatText,
		"Output format: text, csv, wiki or json")
	formatCmd.Flags().StringVarP(&inputRoot, "input-root", "i", "",
		"Input file root name (default from config, normally 'pkg')")
	formatCmd.Flags().BoolVarP(&includeAll, "all", "a", false,
		"Include external dependencies in the report")
	formatCmd.Flags().BoolVar(&prettyJSON, "pretty", false,
		"Pretty-print JSON output (only for -o json)")

	return formatCmd
}

// executeFormat handles the format command execution logic
func executeFormat(cmd *cobra.Command, args []string) error {
	log := logger.Logger()

	root := inputRoot
	if root == "" {
		root = config.GlConfig.Root
	}
	root = filepath.Join(config.GlConfig.WorkDir, root)

	log.Debugf("reading collected metadata from %s.info and %s.dep", root, root)
	model, err := pkgdep.ParseFiles(root)
	if err != nil {
		return err
	}
	log.Infof("loaded %d packages from %s.*", model.PackageCount(), root)

	return format.Render(cmd.OutOrStdout(), model, format.Options{
		Format: outFormat,
		All:    includeAll,
		Pretty: prettyJSON,
	})
}
