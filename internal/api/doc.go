// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

/*
Package api provides the HTTP interface of AgriRank.

Routes are registered on a Chi router. Every JSON response uses the
models.APIResponse envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "...", "query_time_ms": 3}
	}

Endpoints:

	GET  /api/v1/health/live
	GET  /api/v1/health/ready
	GET  /metrics
	GET  /api/v1/crops/rank?state=&district=&top_n=
	GET  /api/v1/crops/states
	GET  /api/v1/crops/states/{state}/districts
	GET  /api/v1/crops/catalog?group=
	POST /api/v1/fertilizer/recommend
	GET  /api/v1/fertilizer/vocabulary
	GET  /api/v1/guidance?crop=&n=&p=&k=
	GET  /api/v1/regions
	GET  /api/v1/regions/rankings?limit=
	GET  /api/v1/regions/{region}/suitability?n=&p=&k=&top_n=
	GET  /api/v1/map/layers/{kind}

Middleware order: request ID, real IP, panic recovery and CORS apply to
every route. Each route group then adds its rate limit, security headers
and Prometheus instrumentation.

Domain errors from the recommend and agronomy packages are mapped to HTTP
statuses by respondServiceError.
*/
package api
