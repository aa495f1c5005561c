// Package alerts decides whether a listing satisfies a saved search.
package alerts

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/denisok6893-rgb/property-insights/internal/domain"
)

var (
	ErrEmptyCriteria   = errors.New("alert criteria must set at least one field")
	ErrInvalidCriteria = errors.New("invalid alert criteria")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Criteria holds the optional filters of a saved search. A nil field
// does not constrain the match. Build values with NewCriteria.
type Criteria struct {
	Location     *string              `json:"location,omitempty" validate:"omitempty,min=1,max=100"`
	PropertyType *domain.PropertyType `json:"property_type,omitempty"`
	ListingType  *domain.ListingType  `json:"listing_type,omitempty"`
	MinPrice     *int64               `json:"min_price,omitempty" validate:"omitempty,gte=0"`
	MaxPrice     *int64               `json:"max_price,omitempty" validate:"omitempty,gt=0"`
	MinBedrooms  *int                 `json:"min_bedrooms,omitempty" validate:"omitempty,gte=0,lte=20"`
}

// CriteriaInput is the loosely typed form received from clients.
type CriteriaInput struct {
	Location     string `json:"location"`
	PropertyType string `json:"property_type"`
	ListingType  string `json:"listing_type"`
	MinPrice     *int64 `json:"min_price"`
	MaxPrice     *int64 `json:"max_price"`
	MinBedrooms  *int   `json:"min_bedrooms"`
}

// NewCriteria validates in and resolves enum names. Unknown enum values
// are rejected instead of silently matching nothing.
func NewCriteria(in CriteriaInput) (Criteria, error) {
	var c Criteria

	if loc := domain.NormalizeName(in.Location); loc != "" {
		c.Location = &loc
	}
	if s := strings.TrimSpace(in.PropertyType); s != "" {
		pt, ok := domain.ParsePropertyType(s)
		if !ok {
			return Criteria{}, fmt.Errorf("%w: unknown property type %q", ErrInvalidCriteria, s)
		}
		c.PropertyType = &pt
	}
	if s := strings.TrimSpace(in.ListingType); s != "" {
		lt, ok := domain.ParseListingType(s)
		if !ok {
			return Criteria{}, fmt.Errorf("%w: unknown listing type %q", ErrInvalidCriteria, s)
		}
		c.ListingType = &lt
	}
	c.MinPrice = in.MinPrice
	c.MaxPrice = in.MaxPrice
	c.MinBedrooms = in.MinBedrooms

	if err := c.Validate(); err != nil {
		return Criteria{}, err
	}
	return c, nil
}

// Validate checks the invariants NewCriteria establishes. It is also used
// on criteria read back from storage.
func (c Criteria) Validate() error {
	if c.IsEmpty() {
		return ErrEmptyCriteria
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
	}
	if c.MaxPrice != nil && *c.MaxPrice <= 0 {
		return fmt.Errorf("%w: max price must be positive", ErrInvalidCriteria)
	}
	if c.MinPrice != nil && c.MaxPrice != nil && *c.MinPrice > *c.MaxPrice {
		return fmt.Errorf("%w: %w", ErrInvalidCriteria, domain.ErrInvalidBudgetRange)
	}
	return nil
}

func (c Criteria) IsEmpty() bool {
	return c.Location == nil && c.PropertyType == nil && c.ListingType == nil &&
		c.MinPrice == nil && c.MaxPrice == nil && c.MinBedrooms == nil
}

// Matches reports whether p satisfies every set field. Location matches
// case-insensitively as a substring, so "Pune" matches "Pune West".
func (c Criteria) Matches(p domain.Property) bool {
	if c.Location != nil && !strings.Contains(strings.ToLower(p.Location), strings.ToLower(*c.Location)) {
		return false
	}
	if c.PropertyType != nil && p.PropertyType != *c.PropertyType {
		return false
	}
	if c.ListingType != nil && p.ListingType != *c.ListingType {
		return false
	}
	if c.MinPrice != nil && p.Price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && p.Price > *c.MaxPrice {
		return false
	}
	if c.MinBedrooms != nil && p.Bedrooms < *c.MinBedrooms {
		return false
	}
	return true
}

// Filter returns the available properties matching c, in input order.
func (c Criteria) Filter(props []domain.Property) []domain.Property {
	var out []domain.Property
	for _, p := range props {
		if p.Status == domain.StatusAvailable && c.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Alert is a saved search owned by a user.
type Alert struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Criteria  Criteria  `json:"criteria"`
	CreatedAt time.Time `json:"created_at"`
}
