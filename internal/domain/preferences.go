package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrInvalidBudgetRange = errors.New("min budget exceeds max budget")
	ErrInvalidInput       = errors.New("invalid input")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// UserPreferences is built fresh for every recommendation request.
// A zero budget bound means that side is unbounded.
type UserPreferences struct {
	MinBudget             int64  `json:"min_budget" validate:"gte=0"`
	MaxBudget             int64  `json:"max_budget" validate:"gte=0"`
	PreferredLocation     string `json:"preferred_location" validate:"max=100"`
	PreferredPropertyType string `json:"preferred_property_type" validate:"max=50"`
	PreferredBedrooms     int    `json:"preferred_bedrooms" validate:"gte=0,lte=20"`
}

// NewUserPreferences validates p and returns it with text fields trimmed.
func NewUserPreferences(p UserPreferences) (UserPreferences, error) {
	p.PreferredLocation = strings.TrimSpace(p.PreferredLocation)
	p.PreferredPropertyType = strings.TrimSpace(p.PreferredPropertyType)

	if err := validate.Struct(p); err != nil {
		return UserPreferences{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if p.MaxBudget > 0 && p.MinBudget > p.MaxBudget {
		return UserPreferences{}, ErrInvalidBudgetRange
	}
	return p, nil
}

// ReviewInput is the user-supplied part of a review.
type ReviewInput struct {
	Author  string `json:"author" validate:"required,max=100"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

func (in ReviewInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// NormalizeName trims, collapses inner whitespace and title-cases s,
// so "  new   delhi" becomes "New Delhi".
func NormalizeName(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	return cases.Title(language.English).String(s)
}

// ParsePropertyType matches s case-insensitively against known types.
func ParsePropertyType(s string) (PropertyType, bool) {
	s = strings.TrimSpace(s)
	for _, t := range PropertyTypes {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}
	return "", false
}

func ParseListingType(s string) (ListingType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy", "sale", "sell":
		return ListingBuy, true
	case "rent":
		return ListingRent, true
	}
	return "", false
}

func ParseStatus(s string) (Status, bool) {
	norm := strings.NewReplacer("_", " ", "-", " ").Replace(strings.ToLower(strings.TrimSpace(s)))
	for _, st := range []Status{StatusAvailable, StatusSold, StatusUnderConstruction, StatusRented} {
		if strings.ToLower(string(st)) == norm {
			return st, true
		}
	}
	return "", false
}
