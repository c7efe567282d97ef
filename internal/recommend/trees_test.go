// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package recommend

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestTreeEnsembleRegressor_Predict(t *testing.T) {
	t.Parallel()

	m := testRegressor()
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	x := mat.NewDense(4, 4, []float64{
		8, 0, 1, 0, // 3.0 + 0.5
		6, 0, 1, 0, // 2.0 + 0.5
		3, 0, 0, 0, // 1.0
		5, 0, 0, 0, // threshold is exclusive under "lt": 2.0
	})
	got, err := m.Predict(x)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	want := []float64{3.5, 2.5, 1.0, 2.0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Predict()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTreeEnsembleRegressor_SplitRules(t *testing.T) {
	t.Parallel()

	build := func(rule string) *TreeEnsembleRegressor {
		return &TreeEnsembleRegressor{
			FeatureNames: []string{"x"},
			SplitRule:    rule,
			Trees: []Tree{{Nodes: []TreeNode{
				{Feature: 0, Threshold: 1, Left: 1, Right: 2, DefaultLeft: true},
				{IsLeaf: true, Leaf: -1},
				{IsLeaf: true, Leaf: 1},
			}}},
		}
	}

	x := mat.NewDense(2, 1, []float64{1, math.NaN()})

	lt, err := build(SplitLess).Predict(x)
	if err != nil {
		t.Fatalf("Predict(lt) error = %v", err)
	}
	le, err := build(SplitLessEqual).Predict(x)
	if err != nil {
		t.Fatalf("Predict(le) error = %v", err)
	}

	if lt[0] != 1 || le[0] != -1 {
		t.Errorf("value on threshold: lt = %v, le = %v, want 1 and -1", lt[0], le[0])
	}
	if lt[1] != -1 || le[1] != -1 {
		t.Errorf("NaN should follow default_left: lt = %v, le = %v", lt[1], le[1])
	}
}

func TestTreeEnsembleRegressor_WidthMismatch(t *testing.T) {
	t.Parallel()

	_, err := testRegressor().Predict(mat.NewDense(1, 2, nil))
	var sm *SchemaMismatchError
	if !errors.As(err, &sm) {
		t.Fatalf("Predict() error = %v, want *SchemaMismatchError", err)
	}
	if sm.Expected != 4 || sm.Actual != 2 {
		t.Errorf("SchemaMismatchError = %+v", sm)
	}
}

func TestTreeEnsembleRegressor_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*TreeEnsembleRegressor)
	}{
		{"no features", func(m *TreeEnsembleRegressor) { m.FeatureNames = nil }},
		{"bad split rule", func(m *TreeEnsembleRegressor) { m.SplitRule = "gt" }},
		{"no trees", func(m *TreeEnsembleRegressor) { m.Trees = nil }},
		{"empty tree", func(m *TreeEnsembleRegressor) { m.Trees[0].Nodes = nil }},
		{"feature out of range", func(m *TreeEnsembleRegressor) { m.Trees[0].Nodes[0].Feature = 9 }},
		{"child out of range", func(m *TreeEnsembleRegressor) { m.Trees[0].Nodes[0].Right = 42 }},
		{"child points at root", func(m *TreeEnsembleRegressor) { m.Trees[0].Nodes[2].Left = 0 }},
		{"shared child", func(m *TreeEnsembleRegressor) { m.Trees[0].Nodes[2].Left = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := testRegressor()
			tt.mutate(m)
			if err := m.Validate(); err == nil {
				t.Error("Validate() expected error")
			}
		})
	}
}

func TestRandomForestClassifier_Classify(t *testing.T) {
	t.Parallel()

	m := testClassifier()
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	x := mat.NewDense(3, 8, []float64{
		26, 52, 38, 4, 2, 37, 0, 0,
		26, 52, 38, 4, 2, 20, 0, 0, // on threshold under "le": left
		26, 52, 38, 4, 2, 5, 0, 0,
	})
	got, err := m.Classify(x)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	want := []int{1, 2, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Classify()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestRandomForestClassifier_AveragesTrees(t *testing.T) {
	t.Parallel()

	leafTree := func(v ...float64) Tree {
		return Tree{Nodes: []TreeNode{{IsLeaf: true, Value: v}}}
	}
	m := &RandomForestClassifier{
		FeatureNames: []string{"x"},
		Classes:      3,
		SplitRule:    SplitLessEqual,
		Trees: []Tree{
			// Raw counts differ in scale; normalized votes make class 2 win.
			leafTree(100, 0, 90),
			leafTree(0, 1, 9),
		},
	}
	got, err := m.Classify(mat.NewDense(1, 1, []float64{0}))
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if got[0] != 2 {
		t.Errorf("Classify() = %d, want 2", got[0])
	}

	tie := &RandomForestClassifier{
		FeatureNames: []string{"x"},
		Classes:      2,
		SplitRule:    SplitLessEqual,
		Trees:        []Tree{leafTree(1, 1)},
	}
	got, err = tie.Classify(mat.NewDense(1, 1, []float64{0}))
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if got[0] != 0 {
		t.Errorf("tie Classify() = %d, want lowest index 0", got[0])
	}
}

func TestRandomForestClassifier_Validate(t *testing.T) {
	t.Parallel()

	m := testClassifier()
	m.Trees[0].Nodes[1].Value = []float64{1, 2}
	if err := m.Validate(); err == nil {
		t.Error("Validate() expected error for short leaf value")
	}

	m = testClassifier()
	m.Classes = 0
	if err := m.Validate(); err == nil {
		t.Error("Validate() expected error for zero classes")
	}
}
