// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package recommend

import (
	"cmp"
	"math"
	"slices"
	"strconv"
)

// InverseYield undoes the log1p training transform and floors the result at 0.
// NaN scores are treated as 0.
func InverseYield(raw []float64) []float64 {
	out := make([]float64, len(raw))
	for i, v := range raw {
		y := math.Expm1(v)
		if math.IsNaN(y) || y < 0 {
			y = 0
		}
		out[i] = y
	}
	return out
}

// FormatYield renders a yield with two decimals, for example "2153.47".
func FormatYield(y float64) string {
	return strconv.FormatFloat(y, 'f', 2, 64)
}

// Rank pairs crops with yields and units, sorts descending by yield and keeps
// the first topN. crops, yields and units must have equal length. Equal
// yields keep their input order.
func Rank(crops []string, yields []float64, units []string, topN int) []RankedCrop {
	ranked := make([]RankedCrop, len(crops))
	for i := range crops {
		ranked[i] = RankedCrop{
			Crop:           crops[i],
			Yield:          yields[i],
			PredictedYield: FormatYield(yields[i]),
			Unit:           units[i],
		}
	}

	slices.SortStableFunc(ranked, func(a, b RankedCrop) int {
		return cmp.Compare(b.Yield, a.Yield)
	})

	if topN >= 0 && topN < len(ranked) {
		ranked = ranked[:topN]
	}
	return ranked
}
