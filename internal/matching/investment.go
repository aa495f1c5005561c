package matching

import (
	"math"

	"github.com/denisok6893-rgb/property-insights/internal/domain"
)

const baseAnnualYield = 2.5

var (
	yieldMultiplier = map[domain.PropertyType]float64{
		domain.TypeApartment: 1.1,
		domain.TypePG:        1.3,
		domain.TypeVilla:     0.9,
	}
	demandTypeBonus = map[domain.PropertyType]float64{
		domain.TypeApartment: 10,
		domain.TypeVilla:     5,
		domain.TypePG:        8,
	}
)

// Analyze derives investment metrics for p from the static market table.
func Analyze(p domain.Property) domain.InvestmentAnalysis {
	market, _ := MarketData(p.Location)

	rent := EstimateMonthlyRent(p)
	ppsf := p.PricePerSqft()

	var rentalYield, vsAverage float64
	if p.Price > 0 {
		rentalYield = rent * 12 / float64(p.Price) * 100
	}
	if ppsf > 0 && market.AvgPricePerSqft > 0 {
		vsAverage = (ppsf - market.AvgPricePerSqft) / market.AvgPricePerSqft * 100
	}

	score := demandScore(p, market, vsAverage)

	return domain.InvestmentAnalysis{
		RentalYield:          round2(rentalYield),
		PriceVsAreaAverage:   round2(vsAverage),
		Appreciation3Y:       round2(appreciation(market.AppreciationRate, 3)),
		Appreciation5Y:       round2(appreciation(market.AppreciationRate, 5)),
		DemandLevel:          DemandLevelFor(score),
		DemandScore:          score,
		PricePerSqft:         math.Round(ppsf),
		EstimatedMonthlyRent: math.Round(rent),
	}
}

// EstimateMonthlyRent returns the listed price for rentals; otherwise it
// applies the flat yield adjusted by type and amenity count.
func EstimateMonthlyRent(p domain.Property) float64 {
	if p.ListingType == domain.ListingRent {
		return float64(p.Price)
	}
	mult, ok := yieldMultiplier[p.PropertyType]
	if !ok {
		mult = 1.0
	}
	yield := baseAnnualYield * mult * (1 + 0.01*float64(len(p.Amenities)))
	return float64(p.Price) * yield / 100 / 12
}

func appreciation(rate float64, years int) float64 {
	return (math.Pow(1+rate/100, float64(years)) - 1) * 100
}

func demandScore(p domain.Property, market domain.AreaMarketData, vsAverage float64) int {
	score := 50 + market.DemandMultiplier*15

	switch {
	case vsAverage < 0:
		score += 15
	case vsAverage <= 10:
		score += 5
	default:
		score -= 10
	}

	score += demandTypeBonus[p.PropertyType]
	if p.Bedrooms == 2 || p.Bedrooms == 3 {
		score += 10
	}
	score += math.Min(float64(len(p.Amenities))*2, 10)

	return int(clamp(math.Round(score), 0, 100))
}

func DemandLevelFor(score int) domain.DemandLevel {
	switch {
	case score >= 70:
		return domain.DemandHigh
	case score >= 40:
		return domain.DemandMedium
	}
	return domain.DemandLow
}
