// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})

	rootCmd.PersistentFlags().StringVar(
		&rootOptions.ConfigPath,
		"config",
		"",
		"TOML configuration file",
	)
	rootCmd.PersistentFlags().StringSliceVar(
		&rootOptions.EnvFiles,
		"env-file",
		[]string{".env"},
		"Files with WARDCHECK_* variables; missing files are skipped",
	)
	rootCmd.PersistentFlags().BoolVar(
		&rootOptions.TraceHTTP,
		"trace-http",
		false,
		"Dump geocoding and submission HTTP traffic to stderr",
	)
	rootCmd.PersistentFlags().StringVar(
		&rootOptions.Ward,
		"ward",
		"",
		"Ward to check, overrides the configuration",
	)
}

var rootOptions = struct {
	ConfigPath string
	EnvFiles   []string
	TraceHTTP  bool
	Ward       string
}{}

var rootCmd = &cobra.Command{
	Use:   "wardcheck",
	Short: "ward eligibility checker",
	Long: `
wardcheck tells whether a street address lies inside a municipal ward. The
address is geocoded, tested against the ward boundary and the check is
reported to the configured submission sinks.
`,
	SilenceUsage: true,
}

var Version = "dev"

func Execute(version string) {
	Version = version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}
