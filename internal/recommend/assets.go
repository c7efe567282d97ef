// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package recommend

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/agrirank/internal/metrics"
)

// DefaultGlobalMean is substituted for unseen target-encoded categories when
// the encoding map artifact does not carry its own global mean.
const DefaultGlobalMean = 1.0

// Label encoder keys in the fertilizer encoder artifact.
const (
	LabelSoilType       = "Soil Type"
	LabelCropType       = "Crop Type"
	LabelFertilizerName = "Fertilizer Name"
)

// FertilizerColumns is the classifier's training column order.
var FertilizerColumns = []string{
	"Temparature", "Humidity", "Moisture", LabelSoilType, LabelCropType, "Nitrogen", "Potassium", "Phosphorous",
}

// AssetFiles locates every artifact read at startup.
type AssetFiles struct {
	CropModel          string
	EncodingMaps       string
	CropRequirements   string
	Historical         string
	FertilizerModel    string
	FertilizerEncoders string
}

// list returns the files in a fixed order.
func (f AssetFiles) list() []string {
	return []string{f.CropModel, f.EncodingMaps, f.CropRequirements, f.Historical, f.FertilizerModel, f.FertilizerEncoders}
}

// CheckAssetFiles returns an *AssetMissingError naming every file that does not exist.
func CheckAssetFiles(files AssetFiles) error {
	var missing []string
	for _, path := range files.list() {
		if path == "" {
			missing = append(missing, "(unset)")
			continue
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			missing = append(missing, path)
		}
	}
	if len(missing) > 0 {
		return &AssetMissingError{Missing: missing}
	}
	return nil
}

// EncodingMaps is the target-mean encoding artifact.
type EncodingMaps struct {
	GlobalMean *float64                      `json:"global_mean,omitempty"`
	Maps       map[string]map[string]float64 `json:"maps"`
}

// FertilizerEncoders is the label encoder artifact, keyed by column name.
type FertilizerEncoders map[string][]string

// Assets is the immutable inference context shared by every request.
type Assets struct {
	regressor    Predictor
	targets      []*TargetMeanEncoder
	oneHot       []*OneHotEncoder
	requirements []CropRequirement
	globalMean   float64

	classifier Classifier
	soil       *LabelEncoder
	crop       *LabelEncoder
	fertilizer *LabelEncoder
}

// LoadAssets reads the JSON artifacts named in files and combines them with
// the crop requirement rows already loaded from the reference store.
// Missing files fail with *AssetMissingError before anything is parsed.
func LoadAssets(files AssetFiles, requirements []CropRequirement) (*Assets, error) {
	if err := CheckAssetFiles(files); err != nil {
		return nil, err
	}

	var regressor TreeEnsembleRegressor
	if err := readJSON("crop_model", files.CropModel, &regressor); err != nil {
		return nil, err
	}
	if err := regressor.Validate(); err != nil {
		return nil, fmt.Errorf("invalid crop model %s: %w", files.CropModel, err)
	}

	var maps EncodingMaps
	if err := readJSON("encoding_maps", files.EncodingMaps, &maps); err != nil {
		return nil, err
	}

	var classifier RandomForestClassifier
	if err := readJSON("fertilizer_model", files.FertilizerModel, &classifier); err != nil {
		return nil, err
	}
	if err := classifier.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fertilizer model %s: %w", files.FertilizerModel, err)
	}

	var encoders FertilizerEncoders
	if err := readJSON("fertilizer_encoders", files.FertilizerEncoders, &encoders); err != nil {
		return nil, err
	}

	return NewAssets(&regressor, maps, requirements, &classifier, encoders)
}

// NewAssets assembles an Assets value from already-decoded parts.
func NewAssets(regressor Predictor, maps EncodingMaps, requirements []CropRequirement, classifier Classifier, encoders FertilizerEncoders) (*Assets, error) {
	if regressor == nil || classifier == nil {
		return nil, fmt.Errorf("both a regressor and a classifier are required")
	}
	if len(regressor.ExpectedColumns()) == 0 {
		return nil, fmt.Errorf("%w: crop model declares no feature columns", ErrSchemaMismatch)
	}
	if len(requirements) == 0 {
		return nil, fmt.Errorf("crop requirement table is empty")
	}

	a := &Assets{
		regressor:  regressor,
		classifier: classifier,
		globalMean: DefaultGlobalMean,
	}
	if maps.GlobalMean != nil {
		a.globalMean = *maps.GlobalMean
	}

	for _, col := range TargetEncodedColumns {
		means, ok := maps.Maps[col]
		if !ok {
			return nil, fmt.Errorf("encoding maps have no %q column", col)
		}
		a.targets = append(a.targets, NewTargetMeanEncoder(col, means, a.globalMean))
	}
	for _, col := range OneHotColumns {
		a.oneHot = append(a.oneHot, NewOneHotEncoder(col))
	}

	a.requirements = make([]CropRequirement, len(requirements))
	for i, req := range requirements {
		req.Crop = NormalizeName(req.Crop)
		if req.Crop == "" {
			return nil, fmt.Errorf("crop requirement row %d has no crop name", i)
		}
		req.Attributes = cloneAttributes(req.Attributes)
		a.requirements[i] = req
	}

	if !slices.Equal(classifier.ExpectedColumns(), FertilizerColumns) {
		return nil, fmt.Errorf("%w: fertilizer classifier columns %v, want %v",
			ErrSchemaMismatch, classifier.ExpectedColumns(), FertilizerColumns)
	}

	var err error
	if a.soil, err = labelEncoder(encoders, LabelSoilType); err != nil {
		return nil, err
	}
	if a.crop, err = labelEncoder(encoders, LabelCropType); err != nil {
		return nil, err
	}
	if a.fertilizer, err = labelEncoder(encoders, LabelFertilizerName); err != nil {
		return nil, err
	}
	if n := len(a.fertilizer.classes); n != classifier.NumClasses() {
		return nil, fmt.Errorf("fertilizer classifier has %d classes but the label encoder has %d", classifier.NumClasses(), n)
	}

	return a, nil
}

// Requirements returns a copy of the crop requirement rows.
func (a *Assets) Requirements() []CropRequirement {
	out := make([]CropRequirement, len(a.requirements))
	for i, r := range a.requirements {
		r.Attributes = cloneAttributes(r.Attributes)
		out[i] = r
	}
	return out
}

// GlobalMean returns the fallback value for unseen target-encoded categories.
func (a *Assets) GlobalMean() float64 { return a.globalMean }

// ExpectedColumns returns the crop model schema.
func (a *Assets) ExpectedColumns() []string { return a.regressor.ExpectedColumns() }

// Vocabulary returns the fertilizer classifier label spaces.
func (a *Assets) Vocabulary() Vocabulary {
	return Vocabulary{
		Soils:       a.soil.Classes(),
		Crops:       a.crop.Classes(),
		Fertilizers: a.fertilizer.Classes(),
	}
}

func labelEncoder(encoders FertilizerEncoders, column string) (*LabelEncoder, error) {
	classes, ok := encoders[column]
	if !ok {
		return nil, fmt.Errorf("fertilizer encoders have no %q entry", column)
	}
	return NewLabelEncoder(column, classes)
}

func cloneAttributes(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func readJSON(asset, path string, v interface{}) error {
	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	metrics.RecordAssetLoad(asset, time.Since(start))
	return nil
}
