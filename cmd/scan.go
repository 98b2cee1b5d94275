/*
Copyright © 2026 ソニーレベル <C7kali3@gmail.com>

*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sony-level/stackscan/internal/fetcher"
	"github.com/sony-level/stackscan/internal/report"
	"github.com/sony-level/stackscan/internal/scanner"
	"github.com/sony-level/stackscan/internal/stacks"
	"github.com/sony-level/stackscan/internal/workspace"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [path|url]",
	Short: "Detect the stack of a project",
	Long: `Scan a project and report its detected stack.

Arguments:
  path    Local project directory (default: current directory)
  url     GitHub/GitLab repository URL to clone and scan

Examples:
  stackscan scan .
  stackscan scan https://gitlab.com/group/repo --keep
  stackscan scan . -o stack.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeScan(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func executeScan(cmd *cobra.Command, args []string) error {
	source := "."
	if len(args) > 0 {
		source = args[0]
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	if cfg.File != "" {
		log.Debug("config loaded", "file", cfg.File)
	}

	ctx := cmd.Context()
	fetchOpts := []fetcher.Option{fetcher.WithLogger(log)}
	if cfg.Output.Verbose {
		fetchOpts = append(fetchOpts, fetcher.WithProgress(cmd.ErrOrStderr()))
	}

	src, release, err := fetcher.New(fetchOpts...).Checkout(ctx, source, workspace.Config{Keep: keepWorkspace})
	if err != nil {
		return err
	}
	defer func() {
		if err := release(); err != nil {
			log.Warn("workspace cleanup failed", "error", err)
		}
	}()
	if src.Cloned && keepWorkspace {
		fmt.Fprintf(cmd.ErrOrStderr(), "Clone kept at %s\n", src.Root)
	}

	registry := stacks.NewDefaultRegistry(stacks.WithLogger(log))
	sc := scanner.New(cfg.ScanOptions(), scanner.WithRegistry(registry), scanner.WithLogger(log))

	result, err := sc.Scan(ctx, src.Root)
	if err != nil {
		return err
	}
	if result.HasErrors() {
		log.Warn("scan completed with errors", "count", len(result.Errors))
	}

	if outputFile != "" {
		if err := writeJSON(outputFile, result); err != nil {
			return err
		}
	}

	return report.Render(cmd.OutOrStdout(), result, cfg.Output.Format, report.TextOptions{
		Evidence: cfg.Output.Verbose,
	})
}

// writeJSON saves the result, creating parent directories as needed
func writeJSON(path string, result *scanner.ScanResult) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := report.JSON(file, result); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
