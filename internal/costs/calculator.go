// Package costs computes the one-time government and tax costs that come
// on top of a property's listed price.
package costs

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultStampDutyRate = 5.0
	RegistrationRate     = 1.0
	gstAffordableRate    = 1.0
	gstStandardRate      = 5.0

	// MaxPropertyPrice keeps the price and every derived sum inside int64.
	MaxPropertyPrice = 1e15

	statusUnderConstruction = "under_construction"
	typeAffordable          = "affordable"
)

var ErrInvalidRequest = errors.New("invalid hidden costs request")

// stampDutyRates is keyed by lower-cased state or city name.
var stampDutyRates = map[string]float64{
	"maharashtra":   6,
	"mumbai":        6,
	"pune":          6,
	"karnataka":     5,
	"bangalore":     5,
	"bengaluru":     5,
	"delhi":         6,
	"tamil nadu":    7,
	"chennai":       7,
	"telangana":     6,
	"hyderabad":     6,
	"west bengal":   6,
	"kolkata":       6,
	"gujarat":       4.9,
	"ahmedabad":     4.9,
	"uttar pradesh": 7,
	"noida":         7,
	"haryana":       7,
	"gurgaon":       7,
}

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type Request struct {
	PropertyPrice  float64 `json:"propertyPrice" validate:"required,gt=0,lte=1e15"`
	State          string  `json:"state" validate:"required"`
	PropertyStatus string  `json:"propertyStatus"`
	PropertyType   string  `json:"propertyType"`
}

// Breakdown amounts are whole units of the property's price currency.
type Breakdown struct {
	StampDuty         int64   `json:"stampDuty"`
	StampDutyRate     float64 `json:"stampDutyRate"`
	Registration      int64   `json:"registration"`
	RegistrationRate  float64 `json:"registrationRate"`
	GST               int64   `json:"gst"`
	GSTRate           float64 `json:"gstRate"`
	TotalOneTimeCosts int64   `json:"totalOneTimeCosts"`
	TotalAllInPrice   int64   `json:"totalAllInPrice"`
}

// Calculate is the local implementation of the hidden-costs calculator.
func Calculate(req Request) (Breakdown, error) {
	req.State = strings.TrimSpace(req.State)
	if err := validate.Struct(req); err != nil {
		return Breakdown{}, fmt.Errorf("%w: %s", ErrInvalidRequest, describe(err))
	}

	price := req.PropertyPrice
	stampRate := StampDutyRate(req.State)
	gstRate := GSTRate(req.PropertyStatus, req.PropertyType)

	b := Breakdown{
		StampDuty:        percentOf(price, stampRate),
		StampDutyRate:    stampRate,
		Registration:     percentOf(price, RegistrationRate),
		RegistrationRate: RegistrationRate,
		GST:              percentOf(price, gstRate),
		GSTRate:          gstRate,
	}
	b.TotalOneTimeCosts = b.StampDuty + b.Registration + b.GST
	b.TotalAllInPrice = int64(math.Round(price)) + b.TotalOneTimeCosts
	return b, nil
}

// StampDutyRate returns the percentage for state, or the default 5%.
func StampDutyRate(state string) float64 {
	key := strings.ToLower(strings.Join(strings.Fields(state), " "))
	if r, ok := stampDutyRates[key]; ok {
		return r
	}
	return DefaultStampDutyRate
}

// GSTRate is non-zero only for properties still under construction.
func GSTRate(status, propertyType string) float64 {
	if normalizeToken(status) != statusUnderConstruction {
		return 0
	}
	if normalizeToken(propertyType) == typeAffordable {
		return gstAffordableRate
	}
	return gstStandardRate
}

func normalizeToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

func percentOf(amount, rate float64) int64 {
	return int64(math.Round(amount * rate / 100))
}

// describe turns validator errors into a short client-facing message.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		default:
			parts = append(parts, fe.Field()+" must be "+fe.Tag()+" "+fe.Param())
		}
	}
	return strings.Join(parts, ", ")
}
