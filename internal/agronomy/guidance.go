// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package agronomy

import "math"

// Nutrient thresholds as fractions of the crop's ideal value.
const (
	lowThreshold  = 0.15
	highThreshold = 0.20
)

// Nutrient statuses.
const (
	StatusLow  = "low"
	StatusOK   = "ok"
	StatusHigh = "high"
)

// highWaterRain is the upper rainfall bound above which a crop counts as high-water.
const highWaterRain = 200

// NutrientStatus compares one measured nutrient with the crop's ideal.
type NutrientStatus struct {
	Nutrient        string  `json:"nutrient"`
	Value           float64 `json:"value"`
	Ideal           float64 `json:"ideal"`
	Delta           float64 `json:"delta"`
	Status          string  `json:"status"`
	WithinTolerance bool    `json:"within_tolerance"`
}

// PHGuidance gives the optimal pH range and the amendment for each side of it.
type PHGuidance struct {
	Optimal  Range  `json:"optimal"`
	BelowMin Advice `json:"below_min"`
	AboveMax Advice `json:"above_max"`
}

// IrrigationTips summarizes the crop's water and temperature needs.
type IrrigationTips struct {
	Temperature Range  `json:"temperature"`
	Rainfall    Range  `json:"rainfall"`
	HighWater   bool   `json:"high_water"`
	Advice      string `json:"advice"`
}

// Guidance is the full soil and crop management report for one crop.
type Guidance struct {
	Crop        string           `json:"crop"`
	Emoji       string           `json:"emoji"`
	Group       string           `json:"group"`
	Nutrients   []NutrientStatus `json:"nutrients"`
	Fertilizers []Advice         `json:"fertilizers"`
	Balanced    bool             `json:"balanced"`
	PH          PHGuidance       `json:"ph"`
	Pests       []Pest           `json:"pests"`
	Irrigation  IrrigationTips   `json:"irrigation"`
	MarketPrice int              `json:"market_price"`
}

// Guidance compares measured N, P and K (kg/ha) with the crop's ideal and
// assembles fertilizer, pH, pest and irrigation advice. An unknown crop
// fails with *NotFoundError.
func (c *Catalog) Guidance(crop string, n, p, k float64) (*Guidance, error) {
	cr, err := c.Crop(crop)
	if err != nil {
		return nil, err
	}

	g := &Guidance{
		Crop:        cr.Name,
		Emoji:       cr.Emoji,
		Group:       cr.Group,
		Fertilizers: []Advice{},
		PH: PHGuidance{
			Optimal:  cr.OptimalPH,
			BelowMin: c.advice[AdviceLowPH],
			AboveMax: c.advice[AdviceHighPH],
		},
		Pests: c.Pests(cr.Group),
		Irrigation: IrrigationTips{
			Temperature: cr.OptimalTemp,
			Rainfall:    cr.OptimalRain,
			HighWater:   cr.OptimalRain.Max > highWaterRain,
		},
		MarketPrice: cr.MarketPrice,
	}
	if g.Pests == nil {
		g.Pests = []Pest{}
	}
	if g.Irrigation.HighWater {
		g.Irrigation.Advice = "High water crop: ensure consistent irrigation. Consider drip for efficiency."
	} else {
		g.Irrigation.Advice = "Low-medium water crop: sprinkler or furrow irrigation recommended."
	}

	nutrients := []struct {
		name, low, high string
		value, ideal    float64
	}{
		{"N", AdviceLowN, AdviceHighN, n, cr.IdealN},
		{"P", AdviceLowP, AdviceHighP, p, cr.IdealP},
		{"K", AdviceLowK, AdviceHighK, k, cr.IdealK},
	}
	for _, nt := range nutrients {
		st := assessNutrient(nt.name, nt.value, nt.ideal)
		g.Nutrients = append(g.Nutrients, st)
		switch st.Status {
		case StatusLow:
			g.Fertilizers = append(g.Fertilizers, c.advice[nt.low])
		case StatusHigh:
			g.Fertilizers = append(g.Fertilizers, c.advice[nt.high])
		}
	}
	g.Balanced = len(g.Fertilizers) == 0

	return g, nil
}

func assessNutrient(name string, value, ideal float64) NutrientStatus {
	delta := value - ideal
	st := NutrientStatus{
		Nutrient:        name,
		Value:           value,
		Ideal:           ideal,
		Delta:           delta,
		Status:          StatusOK,
		WithinTolerance: math.Abs(delta) <= ideal*highThreshold,
	}
	switch {
	case delta < -ideal*lowThreshold:
		st.Status = StatusLow
	case delta > ideal*highThreshold:
		st.Status = StatusHigh
	}
	return st
}
