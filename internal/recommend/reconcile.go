// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package recommend

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// ReconciliationReport records how a feature set was aligned to a model schema.
type ReconciliationReport struct {
	// Synthesized are expected columns that were absent and filled with 0, in schema order.
	Synthesized []string `json:"synthesized"`
	// Dropped are produced columns the model does not expect, sorted.
	Dropped []string `json:"dropped"`
}

// Reconcile compares the produced columns with the expected schema.
func Reconcile(actual, expected []string) ReconciliationReport {
	have := make(map[string]struct{}, len(actual))
	for _, c := range actual {
		have[c] = struct{}{}
	}
	want := make(map[string]struct{}, len(expected))
	for _, c := range expected {
		want[c] = struct{}{}
	}

	report := ReconciliationReport{Synthesized: []string{}, Dropped: []string{}}
	for _, c := range expected {
		if _, ok := have[c]; !ok {
			report.Synthesized = append(report.Synthesized, c)
		}
	}
	for c := range have {
		if _, ok := want[c]; !ok {
			report.Dropped = append(report.Dropped, c)
		}
	}
	slices.Sort(report.Dropped)
	return report
}

// FeatureRows is a sparse set of named feature rows, one per candidate.
type FeatureRows []map[string]float64

// Columns returns the union of column names across all rows, sorted.
func (f FeatureRows) Columns() []string {
	seen := make(map[string]struct{})
	var cols []string
	for _, row := range f {
		for c := range row {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				cols = append(cols, c)
			}
		}
	}
	slices.Sort(cols)
	return cols
}

// Align builds a dense matrix whose columns are exactly expected, in order.
// A column missing from a row is 0 in that row.
func Align(rows FeatureRows, expected []string) (*mat.Dense, ReconciliationReport, error) {
	if len(rows) == 0 {
		return nil, ReconciliationReport{}, fmt.Errorf("%w: no feature rows to align", ErrSchemaMismatch)
	}
	if len(expected) == 0 {
		return nil, ReconciliationReport{}, fmt.Errorf("%w: model declares no feature columns", ErrSchemaMismatch)
	}

	report := Reconcile(rows.Columns(), expected)

	m := mat.NewDense(len(rows), len(expected), nil)
	for i, row := range rows {
		for j, col := range expected {
			if v, ok := row[col]; ok {
				m.Set(i, j, v)
			}
		}
	}
	return m, report, nil
}
