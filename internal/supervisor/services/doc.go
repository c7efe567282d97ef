// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

// Package services provides suture.Service wrappers for AgriRank components.
//
// Every service blocks in Serve until its context is canceled and returns
// ctx.Err() on shutdown, and implements fmt.Stringer so suture can name it
// in supervisor events.
package services
