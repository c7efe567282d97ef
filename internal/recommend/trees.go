// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package recommend

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Split rules. Gradient-boosted exports use "lt" (go left when x < threshold),
// random forest exports use "le" (go left when x <= threshold).
const (
	SplitLess      = "lt"
	SplitLessEqual = "le"
)

// TreeNode is one node of an exported decision tree. Left and Right index into
// the owning tree's Nodes slice.
type TreeNode struct {
	IsLeaf      bool      `json:"is_leaf"`
	Feature     int       `json:"feature"`
	Threshold   float64   `json:"threshold"`
	Left        int       `json:"left"`
	Right       int       `json:"right"`
	DefaultLeft bool      `json:"default_left"`
	Leaf        float64   `json:"leaf"`
	Value       []float64 `json:"value,omitempty"`
}

// Tree is a decision tree rooted at Nodes[0].
type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

// validate checks node references and that the tree is acyclic.
func (t *Tree) validate(numFeatures, numClasses int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("tree has no nodes")
	}
	visited := make([]bool, len(t.Nodes))
	stack := []int{0}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[i] {
			return fmt.Errorf("node %d is reachable twice", i)
		}
		visited[i] = true

		n := t.Nodes[i]
		if n.IsLeaf {
			if numClasses > 0 && len(n.Value) != numClasses {
				return fmt.Errorf("leaf %d has %d class values, want %d", i, len(n.Value), numClasses)
			}
			continue
		}
		if n.Feature < 0 || n.Feature >= numFeatures {
			return fmt.Errorf("node %d splits on feature %d, model has %d", i, n.Feature, numFeatures)
		}
		for _, child := range []int{n.Left, n.Right} {
			if child <= 0 || child >= len(t.Nodes) {
				return fmt.Errorf("node %d has child %d out of range", i, child)
			}
			stack = append(stack, child)
		}
	}
	return nil
}

// leaf walks the tree for one row and returns the reached leaf.
func (t *Tree) leaf(row []float64, rule string) *TreeNode {
	i := 0
	for {
		n := &t.Nodes[i]
		if n.IsLeaf {
			return n
		}
		x := row[n.Feature]
		var left bool
		switch {
		case math.IsNaN(x):
			left = n.DefaultLeft
		case rule == SplitLessEqual:
			left = x <= n.Threshold
		default:
			left = x < n.Threshold
		}
		if left {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// TreeEnsembleRegressor is an additive ensemble of regression trees.
// The prediction is BaseScore plus the sum of the reached leaf values.
type TreeEnsembleRegressor struct {
	FeatureNames []string `json:"feature_names"`
	BaseScore    float64  `json:"base_score"`
	SplitRule    string   `json:"split_rule"`
	Trees        []Tree   `json:"trees"`
}

// Validate checks the model structure once after loading.
func (m *TreeEnsembleRegressor) Validate() error {
	if len(m.FeatureNames) == 0 {
		return fmt.Errorf("regressor declares no feature names")
	}
	if err := validateSplitRule(m.SplitRule); err != nil {
		return err
	}
	if len(m.Trees) == 0 {
		return fmt.Errorf("regressor has no trees")
	}
	for i := range m.Trees {
		if err := m.Trees[i].validate(len(m.FeatureNames), 0); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return nil
}

// ExpectedColumns returns a copy of the feature schema.
func (m *TreeEnsembleRegressor) ExpectedColumns() []string {
	return slices.Clone(m.FeatureNames)
}

// Predict returns one raw score per row.
func (m *TreeEnsembleRegressor) Predict(x mat.Matrix) ([]float64, error) {
	r, c := x.Dims()
	if c != len(m.FeatureNames) {
		return nil, &SchemaMismatchError{Model: "crop yield regressor", Expected: len(m.FeatureNames), Actual: c}
	}

	out := make([]float64, r)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, x)
		sum := m.BaseScore
		for t := range m.Trees {
			sum += m.Trees[t].leaf(row, m.SplitRule).Leaf
		}
		out[i] = sum
	}
	return out, nil
}

// RandomForestClassifier averages per-tree class probabilities and picks the
// most probable class. Ties go to the lowest class index.
type RandomForestClassifier struct {
	FeatureNames []string `json:"feature_names"`
	Classes      int      `json:"n_classes"`
	SplitRule    string   `json:"split_rule"`
	Trees        []Tree   `json:"trees"`
}

// Validate checks the model structure once after loading.
func (m *RandomForestClassifier) Validate() error {
	if len(m.FeatureNames) == 0 {
		return fmt.Errorf("classifier declares no feature names")
	}
	if m.Classes < 1 {
		return fmt.Errorf("classifier declares %d classes", m.Classes)
	}
	if err := validateSplitRule(m.SplitRule); err != nil {
		return err
	}
	if len(m.Trees) == 0 {
		return fmt.Errorf("classifier has no trees")
	}
	for i := range m.Trees {
		if err := m.Trees[i].validate(len(m.FeatureNames), m.Classes); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return nil
}

// ExpectedColumns returns a copy of the feature schema.
func (m *RandomForestClassifier) ExpectedColumns() []string {
	return slices.Clone(m.FeatureNames)
}

// NumClasses returns the size of the label space.
func (m *RandomForestClassifier) NumClasses() int { return m.Classes }

// Classify returns the predicted class index per row.
func (m *RandomForestClassifier) Classify(x mat.Matrix) ([]int, error) {
	r, c := x.Dims()
	if c != len(m.FeatureNames) {
		return nil, &SchemaMismatchError{Model: "fertilizer classifier", Expected: len(m.FeatureNames), Actual: c}
	}

	out := make([]int, r)
	row := make([]float64, c)
	proba := make([]float64, m.Classes)
	for i := 0; i < r; i++ {
		mat.Row(row, i, x)
		clear(proba)
		for t := range m.Trees {
			leaf := m.Trees[t].leaf(row, m.SplitRule)
			total := 0.0
			for _, v := range leaf.Value {
				total += v
			}
			if total <= 0 {
				continue
			}
			for k, v := range leaf.Value {
				proba[k] += v / total
			}
		}
		best := 0
		for k := 1; k < len(proba); k++ {
			if proba[k] > proba[best] {
				best = k
			}
		}
		out[i] = best
	}
	return out, nil
}

func validateSplitRule(rule string) error {
	if rule != SplitLess && rule != SplitLessEqual {
		return fmt.Errorf("unknown split_rule %q, want %q or %q", rule, SplitLess, SplitLessEqual)
	}
	return nil
}
