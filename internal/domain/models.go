package domain

import "time"

type PropertyType string

const (
	TypeApartment       PropertyType = "Apartment"
	TypeVilla           PropertyType = "Villa"
	TypeIndependentHome PropertyType = "Independent House"
	TypePlot            PropertyType = "Plot"
	TypeCommercial      PropertyType = "Commercial"
	TypePG              PropertyType = "PG"
)

// PropertyTypes lists every known property type in display order.
var PropertyTypes = []PropertyType{TypeApartment, TypeVilla, TypeIndependentHome, TypePlot, TypeCommercial, TypePG}

type ListingType string

const (
	ListingBuy  ListingType = "Buy"
	ListingRent ListingType = "Rent"
)

type Status string

const (
	StatusAvailable         Status = "Available"
	StatusSold              Status = "Sold"
	StatusUnderConstruction Status = "Under Construction"
	StatusRented            Status = "Rented"
)

// Property is immutable reference data; scoring never mutates it.
type Property struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Price        int64        `json:"price"`
	Location     string       `json:"location"`
	Bedrooms     int          `json:"bedrooms"`
	Bathrooms    int          `json:"bathrooms"`
	AreaSqft     float64      `json:"area_sqft"`
	Amenities    []string     `json:"amenities"`
	PropertyType PropertyType `json:"property_type"`
	ListingType  ListingType  `json:"listing_type"`
	Status       Status       `json:"status"`
	ImageURLs    []string     `json:"image_urls"`
	CreatedAt    time.Time    `json:"created_at"`
}

// PricePerSqft returns 0 when the area is unknown.
func (p Property) PricePerSqft() float64 {
	if p.AreaSqft <= 0 {
		return 0
	}
	return float64(p.Price) / p.AreaSqft
}

type ScoredProperty struct {
	Property Property `json:"property"`
	Score    float64  `json:"score"`
	Reasons  []string `json:"reasons"`
}

// QualityBreakdown holds the five parts of a quality score.
type QualityBreakdown struct {
	PriceFairness  float64 `json:"price_fairness"`
	Amenities      float64 `json:"amenities"`
	LocationRating float64 `json:"location_rating"`
	UserInterest   float64 `json:"user_interest"`
	ReviewRating   float64 `json:"review_rating"`
}

type QualityScore struct {
	Total     int              `json:"total"`
	Breakdown QualityBreakdown `json:"breakdown"`
}

type DemandLevel string

const (
	DemandHigh   DemandLevel = "High"
	DemandMedium DemandLevel = "Medium"
	DemandLow    DemandLevel = "Low"
)

type InvestmentAnalysis struct {
	RentalYield          float64     `json:"rental_yield"`
	PriceVsAreaAverage   float64     `json:"price_vs_area_average"`
	Appreciation3Y       float64     `json:"appreciation_3y"`
	Appreciation5Y       float64     `json:"appreciation_5y"`
	DemandLevel          DemandLevel `json:"demand_level"`
	DemandScore          int         `json:"demand_score"`
	PricePerSqft         float64     `json:"price_per_sqft"`
	EstimatedMonthlyRent float64     `json:"estimated_monthly_rent"`
}

// AreaMarketData is a per-city benchmark used only as a constant table.
type AreaMarketData struct {
	AvgPricePerSqft  float64 `json:"avg_price_per_sqft"`
	AppreciationRate float64 `json:"appreciation_rate"`
	DemandMultiplier float64 `json:"demand_multiplier"`
}

type Review struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	Author     string    `json:"author"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

type Favorite struct {
	UserID     string    `json:"user_id"`
	PropertyID string    `json:"property_id"`
	CreatedAt  time.Time `json:"created_at"`
}
