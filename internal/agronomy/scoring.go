// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package agronomy

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
)

// DefaultSuitabilityTopN is used when SuitabilityRanking gets a non-positive topN.
const DefaultSuitabilityTopN = 10

// Score weights. They sum to 100.
const (
	weightTemp = 30.0
	weightRain = 25.0
	weightPH   = 25.0
	weightNPK  = 20.0
)

// ScoreCrop rates how well a crop fits the given soil nutrients and climate,
// from 0 to 100 with one decimal. Each in-range factor earns its full weight;
// out of range, the weight decays linearly with distance from the range midpoint.
func ScoreCrop(c Crop, n, p, k, temp, rain, ph float64) float64 {
	score := 0.0

	if c.OptimalTemp.Contains(temp) {
		score += weightTemp
	} else {
		score += math.Max(0, weightTemp-math.Abs(temp-c.OptimalTemp.Mid())*2)
	}

	if c.OptimalRain.Contains(rain) {
		score += weightRain
	} else {
		score += math.Max(0, weightRain-math.Abs(rain-c.OptimalRain.Mid())/10)
	}

	if c.OptimalPH.Contains(ph) {
		score += weightPH
	} else {
		score += math.Max(0, weightPH-math.Abs(ph-c.OptimalPH.Mid())*10)
	}

	npkDiff := (math.Abs(n-c.IdealN) + math.Abs(p-c.IdealP) + math.Abs(k-c.IdealK)) / 3
	score += math.Max(0, weightNPK-npkDiff/5)

	return round1(math.Min(100, math.Max(0, score)))
}

// round1 rounds x to one decimal from its exact binary value, ties to even.
func round1(x float64) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 1, 64), 64)
	return v
}

// Suitability is one row of a region's suitability ranking.
type Suitability struct {
	Rank        int     `json:"rank"`
	Crop        string  `json:"crop"`
	Emoji       string  `json:"emoji"`
	Group       string  `json:"group"`
	Score       float64 `json:"score"`
	Suitability string  `json:"suitability"`
	MarketPrice int     `json:"market_price"`
}

// SuitabilityReport is the result of SuitabilityRanking.
type SuitabilityReport struct {
	Region Region        `json:"region"`
	Crops  []Suitability `json:"crops"`
}

// SuitabilityRanking scores every catalog crop against a region's climate and
// the given soil nutrients, best first. Equal scores keep catalog order.
func (c *Catalog) SuitabilityRanking(region string, n, p, k float64, topN int) (*SuitabilityReport, error) {
	r, err := c.Region(region)
	if err != nil {
		return nil, err
	}
	if topN <= 0 {
		topN = DefaultSuitabilityTopN
	}

	rows := make([]Suitability, len(c.crops))
	for i, crop := range c.crops {
		s := ScoreCrop(crop, n, p, k, r.AvgTemp, r.Rainfall, r.WaterPH)
		rows[i] = Suitability{
			Crop:        crop.Name,
			Emoji:       crop.Emoji,
			Group:       crop.Group,
			Score:       s,
			Suitability: fmt.Sprintf("%.1f%%", s),
			MarketPrice: crop.MarketPrice,
		}
	}
	slices.SortStableFunc(rows, func(a, b Suitability) int {
		return cmp.Compare(b.Score, a.Score)
	})

	if topN < len(rows) {
		rows = rows[:topN]
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return &SuitabilityReport{Region: r, Crops: rows}, nil
}
