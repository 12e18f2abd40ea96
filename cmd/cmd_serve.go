// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/jcodagnone/wardcheck/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the eligibility check HTTP API",
	Args:  cobra.NoArgs,
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

		addr := cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}

		srv := server.NewServer(server.Options{
			Resolver: resolver,
			Sink:     sink,
			Boundary: boundary,
			WardID:   cfg.Ward,
		})

		return srv.Run(addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address, overrides the configuration")
}
