package matching

import (
	"sort"
	"strings"

	"github.com/denisok6893-rgb/property-insights/internal/domain"
)

const fallbackCity = "bangalore"

var areaMarket = map[string]domain.AreaMarketData{
	"bangalore": {AvgPricePerSqft: 6500, AppreciationRate: 8.5, DemandMultiplier: 1.2},
	"mumbai":    {AvgPricePerSqft: 18000, AppreciationRate: 7.0, DemandMultiplier: 1.3},
	"delhi":     {AvgPricePerSqft: 11000, AppreciationRate: 6.5, DemandMultiplier: 1.1},
	"pune":      {AvgPricePerSqft: 7000, AppreciationRate: 7.5, DemandMultiplier: 1.1},
	"hyderabad": {AvgPricePerSqft: 6000, AppreciationRate: 9.0, DemandMultiplier: 1.25},
	"chennai":   {AvgPricePerSqft: 6200, AppreciationRate: 6.0, DemandMultiplier: 1.0},
	"gurgaon":   {AvgPricePerSqft: 9500, AppreciationRate: 8.0, DemandMultiplier: 1.15},
	"noida":     {AvgPricePerSqft: 6000, AppreciationRate: 7.0, DemandMultiplier: 1.05},
	"kolkata":   {AvgPricePerSqft: 5000, AppreciationRate: 5.5, DemandMultiplier: 0.9},
	"ahmedabad": {AvgPricePerSqft: 4500, AppreciationRate: 6.5, DemandMultiplier: 0.95},
}

var (
	tier1Cities = map[string]struct{}{
		"mumbai": {}, "bangalore": {}, "delhi": {}, "hyderabad": {}, "pune": {}, "gurgaon": {},
	}
	tier2Cities = map[string]struct{}{
		"chennai": {}, "kolkata": {}, "noida": {}, "ahmedabad": {}, "jaipur": {}, "kochi": {},
	}
)

// MarketData returns the benchmark for city, falling back to Bangalore.
// The bool reports whether city itself was listed.
func MarketData(city string) (domain.AreaMarketData, bool) {
	if d, ok := areaMarket[cityKey(city)]; ok {
		return d, true
	}
	return areaMarket[fallbackCity], false
}

// MarketCities lists the cities with their own benchmark, sorted.
func MarketCities() []string {
	out := make([]string, 0, len(areaMarket))
	for c := range areaMarket {
		out = append(out, domain.NormalizeName(c))
	}
	sort.Strings(out)
	return out
}

func cityKey(city string) string {
	return strings.ToLower(strings.Join(strings.Fields(city), " "))
}
