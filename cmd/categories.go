/*
Copyright © 2026 ソニーレベル <C7kali3@gmail.com>

*/
package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sony-level/stackscan/internal/stacks"
)

// categoriesCmd lists categories with their policy and detectors
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List detection categories and their detectors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := stacks.NewDefaultRegistry()

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CATEGORY\tPOLICY\tDETECTORS")
		for _, c := range stacks.AllCategories() {
			var names []string
			for _, d := range registry.Detectors(c) {
				names = append(names, d.Name())
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", c, c.Policy(), strings.Join(names, ", "))
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
