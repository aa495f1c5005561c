package matching

import (
	"math"

	"github.com/denisok6893-rgb/property-insights/internal/domain"
)

// PremiumAmenities earn an extra 1.25 points each in the quality score.
var PremiumAmenities = []string{"Swimming Pool", "Gym", "Clubhouse", "Concierge", "Smart Home", "Spa"}

const (
	neutralPriceFairness = 12.5
	premiumAmenityPoints = 1.25
)

// QualitySignals are the optional market and engagement inputs to
// QualityScore. Zero means unknown.
type QualitySignals struct {
	AreaAvgPricePerSqft float64 `json:"area_avg_price_per_sqft"`
	ViewCount           int     `json:"view_count"`
	SaveCount           int     `json:"save_count"`
	AvgRating           float64 `json:"avg_rating"`
}

// QualityScore rates p on a 0..100 scale. It never fails: missing signals
// fall back to neutral or zero contributions.
func QualityScore(p domain.Property, s QualitySignals) domain.QualityScore {
	b := domain.QualityBreakdown{
		PriceFairness:  priceFairness(p, s.AreaAvgPricePerSqft),
		Amenities:      amenitiesScore(p.Amenities),
		LocationRating: locationRating(p.Location),
		UserInterest:   userInterest(s.ViewCount, s.SaveCount),
		ReviewRating:   reviewRating(s.AvgRating),
	}
	sum := b.PriceFairness + b.Amenities + b.LocationRating + b.UserInterest + b.ReviewRating
	total := int(clamp(math.Round(sum), 0, 100))
	return domain.QualityScore{Total: total, Breakdown: b}
}

func priceFairness(p domain.Property, areaAvg float64) float64 {
	ppsf := p.PricePerSqft()
	if areaAvg <= 0 || ppsf <= 0 {
		return neutralPriceFairness
	}
	delta := (ppsf - areaAvg) / areaAvg * 100
	switch {
	case delta <= -20:
		return 25
	case delta <= -10:
		return 20
	case delta <= 0:
		return 15
	case delta <= 10:
		return 10
	case delta < 20:
		return 5
	}
	return 0
}

// amenitiesScore gives 1.5 points per amenity up to 15, plus the premium
// bonus, capped at 20.
func amenitiesScore(amenities []string) float64 {
	base := math.Min(float64(len(amenities))*1.5, 15)
	premium := float64(countMatching(amenities, PremiumAmenities)) * premiumAmenityPoints
	return math.Round(math.Min(base+premium, 20))
}

func locationRating(city string) float64 {
	score := 15.0
	key := cityKey(city)
	if _, ok := tier1Cities[key]; ok {
		score += 10
	} else if _, ok := tier2Cities[key]; ok {
		score += 5
	}
	return math.Min(score, 25)
}

func userInterest(views, saves int) float64 {
	v := math.Max(float64(views), 0)
	s := math.Max(float64(saves), 0)
	return math.Round(math.Min(v/100*10, 10) + math.Min(s/10*5, 5))
}

func reviewRating(avg float64) float64 {
	return round2(clamp(avg, 0, 5) / 5 * 15)
}
