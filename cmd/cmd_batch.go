// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/jcodagnone/wardcheck/session"
	"github.com/jcodagnone/wardcheck/utils/textutils"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// batchColumns maps the accepted CSV headers to the form fields.
var batchColumns = map[string]func(*session.AddressInput, string){
	"first_name":     func(in *session.AddressInput, v string) { in.FirstName = v },
	"last_name":      func(in *session.AddressInput, v string) { in.LastName = v },
	"street_address": func(in *session.AddressInput, v string) { in.StreetAddress = v },
	"suburb":         func(in *session.AddressInput, v string) { in.Suburb = v },
	"cellphone":      func(in *session.AddressInput, v string) { in.Cellphone = v },
}

func readBatch(r io.Reader) ([]session.AddressInput, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	setters := make([]func(*session.AddressInput, string), len(header))
	for i, h := range header {
		setters[i] = batchColumns[strings.ToLower(strings.TrimSpace(h))]
	}

	var inputs []session.AddressInput

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(inputs)+2, err)
		}

		var in session.AddressInput

		for i, v := range row {
			if i < len(setters) && setters[i] != nil {
				setters[i](&in, strings.TrimSpace(v))
			}
		}

		inputs = append(inputs, in)
	}

	return inputs, nil
}

// batchTotals counts the outcomes of a batch run.
type batchTotals struct {
	Inside, Outside, Undetermined, NotFound, Failed int
}

func (t *batchTotals) add(o session.Outcome) {
	switch {
	case o.Location == nil:
		t.NotFound++
	case o.Eligibility == session.Inside:
		t.Inside++
	case o.Eligibility == session.Outside:
		t.Outside++
	default:
		t.Undetermined++
	}
}

func (t batchTotals) summary(rows int) string {
	return fmt.Sprintf("%s inside, %s outside, %s undetermined, %s not found, %s failed from %s rows",
		textutils.FormatCount(t.Inside),
		textutils.FormatCount(t.Outside),
		textutils.FormatCount(t.Undetermined),
		textutils.FormatCount(t.NotFound),
		textutils.FormatCount(t.Failed),
		textutils.FormatCount(rows),
	)
}

// runBatch checks the inputs one after the other; the geocoder is rate
// limited so nothing is gained by running them concurrently.
func runBatch(ctx context.Context, s *session.Session, inputs []session.AddressInput) (batchTotals, error) {
	var totals batchTotals

	var bar *progressbar.ProgressBar
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.NewOptions(len(inputs),
			progressbar.OptionSetDescription("Checking addresses"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	var errs []error

	for i, in := range inputs {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())

			break
		}

		outcome, err := s.Submit(ctx, in)
		if err == nil || errors.Is(err, session.ErrSubmission) {
			totals.add(outcome)
		}

		if err != nil {
			totals.Failed++
			errs = append(errs, fmt.Errorf("row %d (%s, %s): %w", i+2, in.StreetAddress, in.Suburb, err))
		}

		if bar == nil {
			log.Printf("[%d/%d] %s, %s: %s", i+1, len(inputs), in.StreetAddress, in.Suburb, outcome.Eligibility)
		} else if err := bar.Add(1); err != nil {
			errs = append(errs, fmt.Errorf("updating progress bar: %w", err))
		}
	}

	for _, err := range errs {
		log.Printf("Check failed - %s", err)
	}

	return totals, errors.Join(errs...)
}

var batchCmd = &cobra.Command{
	Use:   "batch <file.csv>",
	Short: "Checks every address of a CSV file",
	Long: `
batch reads a CSV file with the columns first_name, last_name, street_address,
suburb and cellphone, checks every row and reports it to the configured
submission sinks.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening batch file: %w", err)
		}
		defer f.Close()

		inputs, err := readBatch(f)
		if err != nil {
			return err
		}

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
			Resolver: resolver,
			Sink:     sink,
			Boundary: boundary,
			WardID:   cfg.Ward,
		})

		totals, err := runBatch(cmd.Context(), s, inputs)
		log.Printf("Ward %s batch - %s", s.WardID(), totals.summary(len(inputs)))

		return err
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
}
