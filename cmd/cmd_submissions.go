// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/jcodagnone/wardcheck/utils/textutils"
	"github.com/spf13/cobra"
)

var submissionsLimit int

var submissionsCmd = &cobra.Command{
	Use:   "submissions",
	Short: "Lists the checks recorded in the local DuckDB store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if cfg.Submission.DuckDBPath == "" {
			return errors.New("no DuckDB store configured (submission.duckdb_path)")
		}

		store, err := openStore(cfg.Submission.DuckDBPath)
		if err != nil {
			return err
		}
		defer store.DB().Close()

		total, err := store.Count(cmd.Context())
		if err != nil {
			return fmt.Errorf("counting submissions: %w", err)
		}

		records, err := store.List(cmd.Context(), submissionsLimit)
		if err != nil {
			return err
		}

		for _, r := range records {
			fmt.Printf("%s  %-12s %-8s %-24s %s, %s  [%s]\n",
				r.SubmittedAt.Format("2006-01-02 15:04:05"),
				r.Result, r.Ward, r.GPSPin(),
				r.StreetAddress, r.Suburb,
				r.FirstName+" "+r.LastName,
			)
		}

		fmt.Printf("%s of %s submissions\n", textutils.FormatCount(len(records)), textutils.FormatCount(total))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(submissionsCmd)
	submissionsCmd.Flags().IntVar(&submissionsLimit, "limit", 20, "Maximum records to show, 0 for all")
}
