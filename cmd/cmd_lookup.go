// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jcodagnone/wardcheck/lookup"
	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "South African postal code and province reference data",
}

var lookupPostalCmd = &cobra.Command{
	Use:   "postal <code>",
	Short: "Validates a postal code and names its province and region",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		pc, err := lookup.ValidatePostalCode(args[0])
		if err != nil {
			for _, s := range lookup.SuggestPostalCodes(args[0]) {
				fmt.Printf("Did you mean %s (%s)?\n", s.Code, s.Province)
			}

			return err
		}

		fmt.Printf("%s: %s, %s\n", pc.Code, pc.Province, pc.Region)

		return nil
	},
}

var lookupProvinceCmd = &cobra.Command{
	Use:   "province [name]",
	Short: "Validates a province name, or lists the provinces",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if len(args) == 0 {
			a, b, c := strings.Repeat("─", 4), strings.Repeat("─", 14), strings.Repeat("─", 17)
			fmt.Printf("╭─%-4s─┬─%-14s─┬─%-17s─╮\n", a, b, c)
			fmt.Printf("│ %-4s │ %-14s │ %-17s │\n", "Code", "Name", "Capital")
			fmt.Printf("├─%-4s─┼─%-14s─┼─%-17s─┤\n", a, b, c)

			for _, p := range lookup.Provinces() {
				fmt.Printf("│ %-4s │ %-14s │ %-17s │\n", p.Code, p.Name, p.Capital)
			}

			fmt.Printf("╰─%-4s─┴─%-14s─┴─%-17s─╯\n", a, b, c)

			return nil
		}

		p, err := lookup.ValidateProvince(args[0])
		if err != nil {
			var pErr *lookup.ProvinceError
			if errors.As(err, &pErr) && len(pErr.Suggestions) > 0 {
				fmt.Printf("Did you mean %s?\n", strings.Join(pErr.Suggestions, ", "))
			}

			return err
		}

		fmt.Printf("%s (%s), capital %s\n", p.Name, p.Code, p.Capital)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.AddCommand(lookupPostalCmd)
	lookupCmd.AddCommand(lookupProvinceCmd)
}
