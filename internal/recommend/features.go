// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package recommend

import "fmt"

// candidateSet is the encoder output: one feature row per crop plus the side
// lists needed to zip predictions back to crops.
type candidateSet struct {
	rows  FeatureRows
	crops []string
	units []string

	// fallbacks counts global-mean substitutions per target-encoded column.
	fallbacks map[string]int
}

// buildCandidates synthesizes one row per crop requirement for the region.
// defaultUnit is used for crops whose requirement row carries no unit.
func (a *Assets) buildCandidates(region RegionContext, defaultUnit string) (*candidateSet, error) {
	set := &candidateSet{
		rows:      make(FeatureRows, 0, len(a.requirements)),
		crops:     make([]string, 0, len(a.requirements)),
		units:     make([]string, 0, len(a.requirements)),
		fallbacks: make(map[string]int),
	}

	for _, req := range a.requirements {
		row := make(map[string]float64, len(req.Attributes)+len(region.Averages)+len(a.targets)+len(a.oneHot))
		for k, v := range req.Attributes {
			row[k] = v
		}
		for k, v := range region.Averages {
			row[k] = v
		}

		identity := map[string]string{
			ColState:    region.State,
			ColDistrict: region.District,
			ColCrop:     req.Crop,
		}
		for _, enc := range a.targets {
			known, err := enc.EncodeInto(identity[enc.Column()], row)
			if err != nil {
				return nil, fmt.Errorf("encode %s: %w", enc.Column(), err)
			}
			if !known {
				set.fallbacks[enc.Column()]++
			}
		}

		descriptive := map[string]string{
			ColSeason:             req.Season,
			ColCropSeason:         req.Season,
			ColCropSoilTexture:    req.SoilTexture,
			ColCropIrrigationType: req.IrrigationType,
		}
		for _, enc := range a.oneHot {
			if _, err := enc.EncodeInto(descriptive[enc.Column()], row); err != nil {
				return nil, fmt.Errorf("encode %s: %w", enc.Column(), err)
			}
		}

		unit := req.Unit
		if unit == "" {
			unit = defaultUnit
		}

		set.rows = append(set.rows, row)
		set.crops = append(set.crops, req.Crop)
		set.units = append(set.units, unit)
	}
	return set, nil
}

// fertilizerRow assembles the classifier input in FertilizerColumns order.
func (a *Assets) fertilizerRow(in FertilizerInput) ([]float64, error) {
	row := map[string]float64{
		"Temparature": in.Temperature,
		"Humidity":    in.Humidity,
		"Moisture":    in.Moisture,
		"Nitrogen":    in.Nitrogen,
		"Potassium":   in.Potassium,
		"Phosphorous": in.Phosphorous,
	}

	_, soilErr := a.soil.EncodeInto(in.SoilType, row)
	_, cropErr := a.crop.EncodeInto(in.CropType, row)
	if soilErr != nil || cropErr != nil {
		field, value := LabelSoilType, in.SoilType
		if soilErr == nil {
			field, value = LabelCropType, in.CropType
		}
		return nil, &InvalidCategoryError{
			Field:      field,
			Value:      value,
			ValidSoils: a.soil.Classes(),
			ValidCrops: a.crop.Classes(),
		}
	}

	out := make([]float64, len(FertilizerColumns))
	for i, col := range FertilizerColumns {
		out[i] = row[col]
	}
	return out, nil
}
