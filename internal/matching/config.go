package matching

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Weights defines the points awarded by each recommendation rule.
// The defaults add up to 100.
type Weights struct {
	BudgetInRange  float64 `yaml:"budget_in_range" json:"budget_in_range"`
	BudgetWithin10 float64 `yaml:"budget_within_10" json:"budget_within_10"`
	BudgetWithin25 float64 `yaml:"budget_within_25" json:"budget_within_25"`
	Location       float64 `yaml:"location" json:"location"`
	PropertyType   float64 `yaml:"property_type" json:"property_type"`
	BedroomsExact  float64 `yaml:"bedrooms_exact" json:"bedrooms_exact"`
	BedroomsNear   float64 `yaml:"bedrooms_near" json:"bedrooms_near"`
	AmenityEach    float64 `yaml:"amenity_each" json:"amenity_each"`
	AmenityCap     float64 `yaml:"amenity_cap" json:"amenity_cap"`
}

func DefaultWeights() Weights {
	return Weights{
		BudgetInRange:  35,
		BudgetWithin10: 25,
		BudgetWithin25: 15,
		Location:       25,
		PropertyType:   15,
		BedroomsExact:  15,
		BedroomsNear:   8,
		AmenityEach:    2,
		AmenityCap:     10,
	}
}

// LoadWeightsFromFile reads a YAML (or JSON) weights file. Keys missing from
// the file keep their default value; on error the defaults are returned too.
func LoadWeightsFromFile(path string) (Weights, error) {
	w := DefaultWeights()
	b, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("read weights file: %w", err)
	}
	if err := yaml.Unmarshal(b, &w); err != nil {
		return DefaultWeights(), fmt.Errorf("unmarshal weights: %w", err)
	}
	return w, nil
}
