/*
Copyright © 2026 ソニーレベル <C7kali3@gmail.com>

*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sony-level/stackscan/internal/config"
	"github.com/sony-level/stackscan/internal/logger"
	"github.com/sony-level/stackscan/internal/report"
)

// version is set at build time with -ldflags "-X .../cmd.version=..."
var version = "dev"

var (
	// Global flags
	configFile    string
	keepWorkspace bool
	jsonOutput    bool
	outputFile    string

	v = config.New()
)

// rootCmd scans the given project when invoked without a subcommand
var rootCmd = &cobra.Command{
	Use:   "stackscan [path|url]",
	Short: "Detect the technology stack of a JavaScript/TypeScript project",
	Long: `stackscan inspects a project directory, or a GitHub/GitLab repository it
clones, and reports the technologies it uses across 17 categories: framework,
package manager, testing, styling, database, ORM, API, state management,
UI components, forms, auth, analytics, payments, email, deployment,
monorepo tooling and MCP servers.

Every result carries a 0-100 confidence score and the evidence behind it.

Examples:
  stackscan .
  stackscan ./apps/web --min-confidence 60
  stackscan https://github.com/user/repo --json
  stackscan . --include-low-confidence -v
  stackscan categories
  stackscan mcp`,
	Version:       version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeScan(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves flags, env and config file into one configuration
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return nil, err
	}
	if jsonOutput {
		cfg.Output.Format = report.FormatJSON
	}
	if cfg.Output.Verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logger.New(cfg.Log)
}

func bindFlag(key, flag string) {
	if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", flag, err))
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (default: .stackscan.yaml, then ~/.config/stackscan/config.yaml)")
	flags.Int("min-confidence", 40, "Drop results below this confidence (0-100)")
	flags.Bool("include-low-confidence", false, "Keep every non-zero result regardless of --min-confidence")
	flags.BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	flags.BoolP("verbose", "v", false, "Show evidence for every result and debug logs")
	flags.StringVarP(&outputFile, "output", "o", "", "Also write the JSON result to this file")
	flags.BoolVar(&keepWorkspace, "keep", false, "Keep the cloned repository of a remote scan")
	flags.String("log-format", "text", "Log format: text or json")

	bindFlag(config.KeyMinConfidence, "min-confidence")
	bindFlag(config.KeyIncludeLowConfidence, "include-low-confidence")
	bindFlag(config.KeyOutputVerbose, "verbose")
	bindFlag(config.KeyLogFormat, "log-format")
}
