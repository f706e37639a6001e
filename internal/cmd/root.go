// Package cmd implements the waymark CLI: ingesting extraction payloads into
// a trip and inspecting canonical site hierarchies.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/waymarkhq/waymark/internal/config"
	"github.com/waymarkhq/waymark/pkg/logging"
)

var (
	cfg       *config.Config
	sitesPath string
	logLevel  string
)

// New builds the root command.
func New(version string) *cobra.Command {
	root := &cobra.Command{
		Use:     "waymark",
		Short:   "Reconcile extracted trip facts into canonical records",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
			if sitesPath != "" {
				cfg.SitesPath = sitesPath
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if cfg.LogLevel != "" {
				logging.SetLevel(cfg.LogLevel)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&sitesPath, "sites", "", "canonical site hierarchy document (default $SITES_PATH)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	root.AddCommand(newIngestCommand())
	root.AddCommand(newAnalyzeCommand())
	root.AddCommand(newSitesCommand())
	return root
}

// Execute runs the CLI and exits non-zero on error.
func Execute(version string) {
	if err := New(version).Execute(); err != nil {
		logging.Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
