// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/jcodagnone/wardcheck/ward"
	"github.com/spf13/cobra"
)

var wardsCmd = &cobra.Command{
	Use:   "wards [file]",
	Short: "Lists the wards of a boundaries file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		var path string
		if len(args) > 0 {
			path = args[0]
		} else {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			path = cfg.Boundaries
		}

		registry, err := ward.Load(path)
		if err != nil {
			return err
		}

		a, b, c := strings.Repeat("─", 6), strings.Repeat("─", 30), strings.Repeat("─", 8)
		fmt.Printf("Wards in %s:\n", path)
		fmt.Printf("╭─%-6s─┬─%-30s─┬─%-8s─╮\n", a, b, c)
		fmt.Printf("│ %-6s │ %-30s │ %8s │\n", "Id", "Name", "Vertices")
		fmt.Printf("├─%-6s─┼─%-30s─┼─%-8s─┤\n", a, b, c)

		for _, id := range registry.IDs() {
			boundary, err := registry.Lookup(id)
			if err != nil {
				return err
			}

			fmt.Printf("│ %-6s │ %-30s │ %8d │\n", boundary.ID, boundary.Label(), len(boundary.Polygon))
		}

		fmt.Printf("╰─%-6s─┴─%-30s─┴─%-8s─╯\n", a, b, c)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(wardsCmd)
}
