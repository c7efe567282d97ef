// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package recommend

import (
	"fmt"
	"slices"
)

// FallbackPolicy describes what an encoder does with a category it has not seen.
type FallbackPolicy int

const (
	// FallbackGlobalMean substitutes the global training mean.
	FallbackGlobalMean FallbackPolicy = iota
	// FallbackZeroColumns emits an indicator the model does not expect; schema
	// reconciliation drops it and every expected indicator stays 0.
	FallbackZeroColumns
	// FallbackReject fails with an error.
	FallbackReject
)

func (p FallbackPolicy) String() string {
	switch p {
	case FallbackGlobalMean:
		return "global_mean"
	case FallbackZeroColumns:
		return "zero_columns"
	case FallbackReject:
		return "reject"
	default:
		return fmt.Sprintf("FallbackPolicy(%d)", int(p))
	}
}

// CategoricalEncoder writes the encoded form of one categorical value into a feature row.
type CategoricalEncoder interface {
	Column() string
	Policy() FallbackPolicy
	// EncodeInto sets the features for value in row. known is false when
	// the fallback policy was applied.
	EncodeInto(value string, row map[string]float64) (known bool, err error)
}

// TargetMeanEncoder replaces a category with its training target mean.
type TargetMeanEncoder struct {
	column     string
	means      map[string]float64
	globalMean float64
}

// NewTargetMeanEncoder creates a target-mean encoder for column.
func NewTargetMeanEncoder(column string, means map[string]float64, globalMean float64) *TargetMeanEncoder {
	return &TargetMeanEncoder{column: column, means: means, globalMean: globalMean}
}

// Column returns the encoded column name.
func (e *TargetMeanEncoder) Column() string { return e.column }

// Policy returns FallbackGlobalMean.
func (e *TargetMeanEncoder) Policy() FallbackPolicy { return FallbackGlobalMean }

// Encode returns the mean for value, or the global mean when value is unseen.
func (e *TargetMeanEncoder) Encode(value string) (float64, bool) {
	if m, ok := e.means[value]; ok {
		return m, true
	}
	return e.globalMean, false
}

// EncodeInto sets row[Column()].
func (e *TargetMeanEncoder) EncodeInto(value string, row map[string]float64) (bool, error) {
	v, known := e.Encode(value)
	row[e.column] = v
	return known, nil
}

// OneHotEncoder expands a category into a single <column>_<value> indicator.
// It has no vocabulary: whether an indicator is meaningful is decided by
// reconciliation against the model schema.
type OneHotEncoder struct {
	column string
}

// NewOneHotEncoder creates a one-hot encoder for column.
func NewOneHotEncoder(column string) *OneHotEncoder {
	return &OneHotEncoder{column: column}
}

// Column returns the source column name.
func (e *OneHotEncoder) Column() string { return e.column }

// Policy returns FallbackZeroColumns.
func (e *OneHotEncoder) Policy() FallbackPolicy { return FallbackZeroColumns }

// FeatureName returns the indicator column name for value.
func (e *OneHotEncoder) FeatureName(value string) string {
	return e.column + "_" + value
}

// EncodeInto sets row[FeatureName(value)] = 1. Empty values produce no
// indicator, matching how missing values are dummied during training.
func (e *OneHotEncoder) EncodeInto(value string, row map[string]float64) (bool, error) {
	if value == "" {
		return false, nil
	}
	row[e.FeatureName(value)] = 1
	return true, nil
}

// LabelEncoder maps a closed set of classes to their index.
type LabelEncoder struct {
	column  string
	classes []string
	index   map[string]int
}

// NewLabelEncoder creates an encoder whose codes are the positions in classes.
func NewLabelEncoder(column string, classes []string) (*LabelEncoder, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("label encoder %q has no classes", column)
	}
	index := make(map[string]int, len(classes))
	for i, c := range classes {
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("label encoder %q has duplicate class %q", column, c)
		}
		index[c] = i
	}
	return &LabelEncoder{column: column, classes: slices.Clone(classes), index: index}, nil
}

// Column returns the encoded column name.
func (e *LabelEncoder) Column() string { return e.column }

// Policy returns FallbackReject.
func (e *LabelEncoder) Policy() FallbackPolicy { return FallbackReject }

// Classes returns a copy of the class list in code order.
func (e *LabelEncoder) Classes() []string { return slices.Clone(e.classes) }

// Encode returns the code for value.
func (e *LabelEncoder) Encode(value string) (int, bool) {
	code, ok := e.index[value]
	return code, ok
}

// Decode returns the class for code.
func (e *LabelEncoder) Decode(code int) (string, error) {
	if code < 0 || code >= len(e.classes) {
		return "", fmt.Errorf("label encoder %q: code %d out of range [0,%d)", e.column, code, len(e.classes))
	}
	return e.classes[code], nil
}

// EncodeInto sets row[Column()] to the class code or fails with ErrInvalidCategory.
func (e *LabelEncoder) EncodeInto(value string, row map[string]float64) (bool, error) {
	code, ok := e.index[value]
	if !ok {
		return false, fmt.Errorf("%w: %s %q", ErrInvalidCategory, e.column, value)
	}
	row[e.column] = float64(code)
	return true, nil
}
