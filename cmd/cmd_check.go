// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/jcodagnone/wardcheck/session"
	"github.com/jcodagnone/wardcheck/spatial"
	"github.com/spf13/cobra"
)

var checkInput session.AddressInput

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Checks whether an address lies inside the ward",
	Long: `
check geocodes the street address and suburb, tests the location against the
ward boundary and reports the check to the configured submission sinks.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		resolver, err := buildResolver(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		sink, closeSink, err := buildSink(cfg)
		if err != nil {
			return err
		}
		defer closeSink()

		_, boundary := loadBoundary(cfg)

		s := session.New(session.Options{
			Resolver:  resolver,
			Presenter: &textPresenter{w: os.Stdout},
			Sink:      sink,
			Boundary:  boundary,
			WardID:    cfg.Ward,
		})

		outcome, err := s.Submit(cmd.Context(), checkInput)
		if err != nil {
			if errors.Is(err, session.ErrSubmission) {
				return fmt.Errorf("%s checked but not recorded: %w", outcome.Eligibility, err)
			}

			return err
		}

		return nil
	},
}

var probeCmd = &cobra.Command{
	Use:   "probe <lat> <lng>",
	Short: "Checks a coordinate against the ward boundary",
	Long: `
probe classifies a coordinate the way a click on the map does in manual mode.
Nothing is geocoded and nothing is recorded.
`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		lat, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("parsing latitude: %w", err)
		}

		lng, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("parsing longitude: %w", err)
		}

		p := spatial.Point{Lat: lat, Lng: lng}
		if err := p.Valid(); err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		_, boundary := loadBoundary(cfg)

		s := session.New(session.Options{
			Presenter: &textPresenter{w: os.Stdout},
			Boundary:  boundary,
			WardID:    cfg.Ward,
		})
		s.EnterManualMode()

		_, err = s.Click(p)

		return err
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(probeCmd)

	flags := checkCmd.Flags()
	flags.StringVar(&checkInput.FirstName, "first-name", "", "First name")
	flags.StringVar(&checkInput.LastName, "last-name", "", "Last name")
	flags.StringVar(&checkInput.StreetAddress, "street", "", "Street address, e.g. \"123 Main St\"")
	flags.StringVar(&checkInput.Suburb, "suburb", "", "Suburb, e.g. \"Hatfield\"")
	flags.StringVar(&checkInput.Cellphone, "cellphone", "", "Cellphone number")
}
