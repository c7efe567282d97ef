// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

/*
Package main is the entry point for the AgriRank server application.

AgriRank ranks crops for an Indian state and district by predicted yield,
recommends a fertilizer from soil and weather readings, and serves the
rule-based agronomy dashboard data (nutrient guidance, regional suitability,
map layers).

# Application Architecture

	RootSupervisor ("agrirank")
	├── InferenceSupervisor ("inference-layer")
	│   └── Cache janitor (expired ranking eviction)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config.yaml, and environment variables
 2. Logging: zerolog with JSON/console output modes
 3. Assets: every model artifact and reference table must exist
 4. Database: in-memory DuckDB loaded from the historical and requirement CSVs
 5. Engine: tree ensemble regressor, random forest classifier, encoders
 6. Supervisor Tree: Suture v4 process supervision
 7. HTTP Server: Chi router with middleware stack

A missing artifact stops startup with a message naming every missing file.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server stops accepting
connections and waits up to 10s for in-flight requests, then the database
is closed.

# Example Usage

	export ASSETS_DIR=/srv/agrirank/assets
	export HTTP_PORT=8080
	./agrirank-server

	curl 'http://localhost:8080/api/v1/crops/rank?state=punjab&district=ludhiana&top_n=5'
*/
package main
