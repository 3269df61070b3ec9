package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"opportunity-finder/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfigDir  string
	flagConfigName string
)

var rootCmd = &cobra.Command{
	Use:           "opportunity-finder",
	Short:         "Browse and filter analyzed Reddit opportunities",
	Long:          "opportunity-finder serves a dashboard over pre-analyzed Reddit opportunity records and offers the same queries on the command line and over MCP.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "./configs", "directory containing the config file")
	rootCmd.PersistentFlags().StringVar(&flagConfigName, "config-name", "config", "config file name without extension")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(subredditsCmd)
	rootCmd.AddCommand(keywordsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(mcpCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "opportunity-finder %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfigDir, flagConfigName)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, scoreLow("Error:"), err)
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
