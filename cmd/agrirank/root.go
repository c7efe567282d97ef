// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/agrirank/internal/agronomy"
	"github.com/tomtom215/agrirank/internal/bootstrap"
	"github.com/tomtom215/agrirank/internal/config"
	"github.com/tomtom215/agrirank/internal/logging"
)

var version = "dev"

// cli holds flag values and the dependencies each command needs.
type cli struct {
	logLevel string
	asJSON   bool
	timeout  time.Duration

	catalog *agronomy.Catalog

	// loadConfig and startRuntime are replaced in tests.
	loadConfig   func() (*config.Config, error)
	startRuntime func(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*bootstrap.Runtime, error)
}

func newCLI() *cli {
	return &cli{
		catalog:      agronomy.DefaultCatalog(),
		loadConfig:   config.Load,
		startRuntime: bootstrap.Start,
	}
}

func newRootCmd() *cobra.Command {
	return newCLI().rootCmd()
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "agrirank",
		Short: "Crop ranking and soil health recommendations",
		Long: `agrirank ranks crops for an Indian state and district by predicted yield,
recommends a fertilizer from soil and weather readings, and prints nutrient
guidance and regional suitability.

Model artifacts are located through the same configuration as the server
(config.yaml, ASSETS_DIR and related environment variables).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.Init(logging.Config{Level: c.logLevel, Format: "console"})
		},
	}

	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&c.asJSON, "json", false, "print JSON instead of text")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 30*time.Second, "timeout for startup and inference")

	root.AddCommand(
		c.rankCmd(),
		c.statesCmd(),
		c.districtsCmd(),
		c.fertilizerCmd(),
		c.vocabularyCmd(),
		c.guidanceCmd(),
		c.suitabilityCmd(),
	)
	return root
}

// withRuntime loads configuration, starts the inference runtime, and runs fn
// under the command timeout.
func (c *cli) withRuntime(cmd *cobra.Command, fn func(ctx context.Context, rt *bootstrap.Runtime, cfg *config.Config) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), c.timeout)
	defer cancel()

	rt, err := c.startRuntime(ctx, cfg, logging.WithComponent("cli"))
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing database")
		}
	}()

	return fn(ctx, rt, cfg)
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
