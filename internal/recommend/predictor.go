// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package recommend

import "gonum.org/v1/gonum/mat"

// Predictor is a regression model with a fixed input schema.
// Predict fails with *SchemaMismatchError when the matrix width differs
// from len(ExpectedColumns()).
type Predictor interface {
	Predict(x mat.Matrix) ([]float64, error)
	ExpectedColumns() []string
}

// Classifier is a classification model with a fixed input schema and label space.
// Classify returns one class index in [0, NumClasses()) per row.
type Classifier interface {
	Classify(x mat.Matrix) ([]int, error)
	ExpectedColumns() []string
	NumClasses() int
}
