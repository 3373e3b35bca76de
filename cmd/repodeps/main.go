package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/observatory-platform/repodeps/internal/config"
	"github.com/observatory-platform/repodeps/internal/utils/logger"
)

// Global command flags
var (
	logLevel   string
	verbose    bool
	configPath string
)

// createRootCommand builds the root command with all subcommands attached
func createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "repodeps",
		Short: "Collect and report package dependencies from named repositories",
		Long: `repodeps collects package metadata from a package manager's repositories
by shelling out to its query tool (yum, dnf or tdnf) and stores the results
in flat files for later formatting.

The collect subcommand builds pkg.list, pkg.info and pkg.dep for every
package whose repository matches one of the given patterns. The format
subcommand reads those files and renders a dependency report.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to the configuration file (default: "+config.DefaultFileName+")")

	rootCmd.AddCommand(createCollectCommand())
	rootCmd.AddCommand(createFormatCommand())

	attachLoggingHooks(rootCmd)
	return rootCmd
}

// resolveRequestedLogLevel returns the log level requested on the command
// line. An explicit --log-level wins over --verbose; an empty string means
// the configuration decides.
func resolveRequestedLogLevel(cmd *cobra.Command) string {
	if logLevel != "" {
		return logLevel
	}
	if cmd != nil {
		if flag := cmd.Flags().Lookup("verbose"); flag != nil && flag.Changed {
			return "debug"
		}
	}
	return ""
}

// attachLoggingHooks installs a PersistentPreRunE on every subcommand that
// loads the configuration and initializes the logger before the command runs.
func attachLoggingHooks(root *cobra.Command) {
	for _, cmd := range root.Commands() {
		cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			level := resolveRequestedLogLevel(cmd)
			if level == "" {
				level = cfg.Logging.Level
			}
			if err := logger.Init(level); err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			return nil
		}
	}
}

func main() {
	if err := createRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
