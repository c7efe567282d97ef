// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

/*
Package supervisor provides process supervision for AgriRank using suture v4.

The tree organizes long-running services into two layers:

	RootSupervisor ("agrirank")
	├── InferenceSupervisor ("inference-layer")
	│   └── CacheJanitorService (ranking cache expiry)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A janitor crash restarts only the janitor; the HTTP server keeps serving.
Supervisor events are logged through sutureslog, which takes a *slog.Logger;
main builds one with logging.NewSlogLogger so the events reach zerolog.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddInferenceService(services.NewCacheJanitorService(engine, cfg.Ranking.JanitorInterval, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor stopped with error")
	}
*/
package supervisor
