/*
Copyright © 2026 ソニーレベル <C7kali3@gmail.com>

*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sony-level/stackscan/internal/mcpserver"
)

// mcpCmd serves stack detection over MCP on stdio
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the detect_stack tool over MCP (stdio)",
	Long: `Start a Model Context Protocol server on stdin/stdout exposing one tool,
detect_stack, which scans a project path or repository URL and returns the
result as JSON or text. Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		s := mcpserver.NewServer(version,
			mcpserver.WithScanOptions(cfg.ScanOptions()),
			mcpserver.WithLogger(newLogger(cfg)),
		)
		return s.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
