// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

// Command agrirank runs crop rankings, fertilizer recommendations and
// agronomy lookups from the command line, using the same configuration and
// model artifacts as the server.
//
//	agrirank rank punjab ludhiana --top 5
//	agrirank fertilizer 26 52 38 Sandy Maize 100 0 0
//	agrirank guidance rice --n 60 --p 30 --k 40 --json
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		cancel()
		os.Exit(1) //nolint:gocritic // cancel already called
	}
}
