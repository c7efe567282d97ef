// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package agronomy

import (
	"cmp"
	"math"
	"slices"
)

// Layer kinds accepted by MapLayer.
const (
	LayerScatter = "scatter"
	LayerColumn  = "column"
)

// DefaultRegionRankingLimit is used when RegionRankings gets a non-positive limit.
const DefaultRegionRankingLimit = 5

// ViewState is the initial camera of a map.
type ViewState struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      float64 `json:"zoom"`
	Pitch     float64 `json:"pitch"`
	Bearing   float64 `json:"bearing"`
}

// MapPoint is one region drawn on a layer. Position is [lon, lat].
type MapPoint struct {
	Region     string     `json:"region"`
	Position   [2]float64 `json:"position"`
	Color      [4]int     `json:"color"`
	Elevation  float64    `json:"elevation,omitempty"`
	Yield      float64    `json:"yield"`
	SoilHealth float64    `json:"soil_health"`
	TopCrop    string     `json:"top_crop"`
	AvgTemp    float64    `json:"avg_temp"`
	Rainfall   float64    `json:"rainfall"`
}

// Layer is a renderer-neutral description of a deck.gl style map layer.
type Layer struct {
	Kind           string     `json:"kind"`
	Type           string     `json:"type"`
	Radius         float64    `json:"radius"`
	ElevationScale float64    `json:"elevation_scale,omitempty"`
	View           ViewState  `json:"view"`
	Points         []MapPoint `json:"points"`
}

var indiaView = ViewState{Latitude: 22.5, Longitude: 79.5, Zoom: 4.2}

// MapLayer builds the "scatter" region picker layer or the "column" yield
// and soil health layer.
func (c *Catalog) MapLayer(kind string) (*Layer, error) {
	switch kind {
	case LayerScatter:
		l := &Layer{Kind: kind, Type: "ScatterplotLayer", Radius: 40000, View: indiaView}
		for _, r := range c.regions {
			p := newMapPoint(r)
			p.Color = [4]int{34, 197, 94, 200}
			l.Points = append(l.Points, p)
		}
		return l, nil

	case LayerColumn:
		view := indiaView
		view.Pitch = 45
		view.Bearing = -15
		l := &Layer{Kind: kind, Type: "ColumnLayer", Radius: 35000, ElevationScale: 80, View: view}
		for _, r := range c.regions {
			p := newMapPoint(r)
			p.Elevation = r.Yield
			p.Color = soilHealthColor(r.SoilHealth)
			l.Points = append(l.Points, p)
		}
		return l, nil

	default:
		return nil, &NotFoundError{Kind: "layer", Name: kind}
	}
}

func newMapPoint(r Region) MapPoint {
	return MapPoint{
		Region:     r.Name,
		Position:   [2]float64{r.Lon, r.Lat},
		Yield:      r.Yield,
		SoilHealth: r.SoilHealth,
		TopCrop:    r.TopCrop,
		AvgTemp:    r.AvgTemp,
		Rainfall:   r.Rainfall,
	}
}

// soilHealthColor shades from red (poor soil) to green (healthy soil).
func soilHealthColor(soil float64) [4]int {
	return [4]int{
		int(math.Min(255, (100-soil)*3)),
		int(math.Min(255, soil*2.8)),
		80,
		200,
	}
}

// RegionRank is one row of a regional leaderboard.
type RegionRank struct {
	Rank    int     `json:"rank"`
	Region  string  `json:"region"`
	Value   float64 `json:"value"`
	TopCrop string  `json:"top_crop"`
}

// RegionRankings holds the leaderboards by yield and by soil health.
type RegionRankings struct {
	ByYield      []RegionRank `json:"by_yield"`
	BySoilHealth []RegionRank `json:"by_soil_health"`
}

// RegionRankings returns the top regions by yield and by soil health.
// Equal values keep catalog order.
func (c *Catalog) RegionRankings(limit int) RegionRankings {
	if limit <= 0 {
		limit = DefaultRegionRankingLimit
	}
	return RegionRankings{
		ByYield:      c.leaderboard(limit, func(r Region) float64 { return r.Yield }),
		BySoilHealth: c.leaderboard(limit, func(r Region) float64 { return r.SoilHealth }),
	}
}

func (c *Catalog) leaderboard(limit int, value func(Region) float64) []RegionRank {
	sorted := slices.Clone(c.regions)
	slices.SortStableFunc(sorted, func(a, b Region) int {
		return cmp.Compare(value(b), value(a))
	})
	if limit < len(sorted) {
		sorted = sorted[:limit]
	}
	out := make([]RegionRank, len(sorted))
	for i, r := range sorted {
		out[i] = RegionRank{Rank: i + 1, Region: r.Name, Value: value(r), TopCrop: r.TopCrop}
	}
	return out
}
