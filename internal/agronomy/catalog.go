// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

// Package agronomy holds the rule-based side of AgriRank: the built-in crop
// and region catalogs, climate suitability scoring, nutrient guidance and
// the map layers drawn by the dashboard. Nothing here touches the ML models.
package agronomy

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrNotFound matches every lookup miss in this package.
var ErrNotFound = errors.New("not found")

// NotFoundError names the catalog entry that was not found.
type NotFoundError struct {
	Kind string // "crop", "region", "group" or "layer"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found.", capitalize(e.Kind), e.Name)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// Range is an inclusive interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within the range, bounds included.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Mid returns the midpoint.
func (r Range) Mid() float64 { return (r.Min + r.Max) / 2 }

// Crop is one catalog crop with its optimal growing conditions.
type Crop struct {
	Name        string  `json:"name"`
	Emoji       string  `json:"emoji"`
	Group       string  `json:"group"`
	OptimalTemp Range   `json:"optimal_temp"` // °C
	OptimalRain Range   `json:"optimal_rain"` // mm per season
	OptimalPH   Range   `json:"optimal_ph"`
	IdealN      float64 `json:"ideal_n"` // kg/ha
	IdealP      float64 `json:"ideal_p"`
	IdealK      float64 `json:"ideal_k"`
	MarketPrice int     `json:"market_price"` // ₹ per quintal
}

// Region is one state with its headline agricultural and climate figures.
type Region struct {
	Name       string  `json:"region"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Yield      float64 `json:"yield"`       // kg/ha
	SoilHealth float64 `json:"soil_health"` // percent
	TopCrop    string  `json:"top_crop"`
	AvgTemp    float64 `json:"avg_temp"`
	Humidity   float64 `json:"humidity"`
	Rainfall   float64 `json:"rainfall"`
	WaterPH    float64 `json:"water_ph"`
}

// Advice is a fertilizer or soil amendment recommendation.
type Advice struct {
	Fertilizer string `json:"fertilizer"`
	Dosage     string `json:"dosage"`
	Note       string `json:"note"`
}

// Pest is a pest or disease with its recommended control.
type Pest struct {
	Pest    string `json:"pest"`
	Product string `json:"product"`
	Dosage  string `json:"dosage"`
}

// Advice keys.
const (
	AdviceLowN   = "low_n"
	AdviceHighN  = "high_n"
	AdviceLowP   = "low_p"
	AdviceHighP  = "high_p"
	AdviceLowK   = "low_k"
	AdviceHighK  = "high_k"
	AdviceLowPH  = "low_ph"
	AdviceHighPH = "high_ph"
)

// Catalog is the immutable reference data. The zero value is empty; use
// DefaultCatalog for the built-in tables.
type Catalog struct {
	crops   []Crop
	regions []Region
	advice  map[string]Advice
	pests   map[string][]Pest
}

// NewCatalog builds a catalog from the given tables. Crop and region names must be unique.
func NewCatalog(crops []Crop, regions []Region, advice map[string]Advice, pests map[string][]Pest) (*Catalog, error) {
	seen := make(map[string]bool, len(crops))
	for _, c := range crops {
		key := strings.ToLower(c.Name)
		if c.Name == "" || seen[key] {
			return nil, fmt.Errorf("crop name %q is empty or duplicated", c.Name)
		}
		seen[key] = true
	}
	seen = make(map[string]bool, len(regions))
	for _, r := range regions {
		key := strings.ToLower(r.Name)
		if r.Name == "" || seen[key] {
			return nil, fmt.Errorf("region name %q is empty or duplicated", r.Name)
		}
		seen[key] = true
	}
	return &Catalog{
		crops:   slices.Clone(crops),
		regions: slices.Clone(regions),
		advice:  advice,
		pests:   pests,
	}, nil
}

// DefaultCatalog returns the built-in catalog of 12 crops and 20 regions.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultCrops, defaultRegions, defaultAdvice, defaultPests)
	if err != nil {
		panic(err)
	}
	return c
}

// Crops returns the crops of group, or every crop when group is empty.
// Crops keep catalog order.
func (c *Catalog) Crops(group string) ([]Crop, error) {
	if group == "" {
		return slices.Clone(c.crops), nil
	}
	var out []Crop
	for _, crop := range c.crops {
		if strings.EqualFold(crop.Group, group) {
			out = append(out, crop)
		}
	}
	if len(out) == 0 {
		return nil, &NotFoundError{Kind: "group", Name: group}
	}
	return out, nil
}

// Crop looks a crop up by name, ignoring case and surrounding space.
func (c *Catalog) Crop(name string) (Crop, error) {
	name = strings.TrimSpace(name)
	for _, crop := range c.crops {
		if strings.EqualFold(crop.Name, name) {
			return crop, nil
		}
	}
	return Crop{}, &NotFoundError{Kind: "crop", Name: name}
}

// Groups returns the distinct crop groups, sorted.
func (c *Catalog) Groups() []string {
	var groups []string
	for _, crop := range c.crops {
		if !slices.Contains(groups, crop.Group) {
			groups = append(groups, crop.Group)
		}
	}
	slices.Sort(groups)
	return groups
}

// Regions returns every region in catalog order.
func (c *Catalog) Regions() []Region {
	return slices.Clone(c.regions)
}

// Region looks a region up by name, ignoring case and surrounding space.
func (c *Catalog) Region(name string) (Region, error) {
	name = strings.TrimSpace(name)
	for _, r := range c.regions {
		if strings.EqualFold(r.Name, name) {
			return r, nil
		}
	}
	return Region{}, &NotFoundError{Kind: "region", Name: name}
}

// Pests returns the pest management list for a crop group.
func (c *Catalog) Pests(group string) []Pest {
	return slices.Clone(c.pests[group])
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
