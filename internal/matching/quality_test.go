package matching

import (
	"math"
	"testing"

	"github.com/denisok6893-rgb/property-insights/internal/domain"
)

func TestPriceFairnessBands(t *testing.T) {
	t.Parallel()

	// area 1000 sqft, area average 1000/sqft: price maps 1:1 to delta.
	tests := []struct {
		price int64
		want  float64
	}{
		{700_000, 25},
		{800_000, 25},
		{850_000, 20},
		{900_000, 20},
		{950_000, 15},
		{1_000_000, 15},
		{1_050_000, 10},
		{1_100_000, 10},
		{1_150_000, 5},
		{1_200_000, 0},
		{2_000_000, 0},
	}
	for _, tt := range tests {
		p := domain.Property{Price: tt.price, AreaSqft: 1000}
		if got := priceFairness(p, 1000); got != tt.want {
			t.Errorf("price=%d fairness=%v want %v", tt.price, got, tt.want)
		}
	}
}

func TestPriceFairness_NeutralWhenUnknown(t *testing.T) {
	t.Parallel()

	if got := priceFairness(domain.Property{Price: 100, AreaSqft: 10}, 0); got != 12.5 {
		t.Errorf("no average: %v want 12.5", got)
	}
	if got := priceFairness(domain.Property{Price: 100}, 5000); got != 12.5 {
		t.Errorf("zero area: %v want 12.5", got)
	}
}

func TestAmenitiesScore(t *testing.T) {
	t.Parallel()

	if got := amenitiesScore(nil); got != 0 {
		t.Errorf("no amenities: %v want 0", got)
	}

	plain := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	if got := amenitiesScore(plain); got != 15 {
		t.Errorf("12 plain amenities: %v want 15", got)
	}

	// 2*1.5 + 2*1.25 = 5.5, rounds to 6
	if got := amenitiesScore([]string{"Gym", "Spa"}); got != 6 {
		t.Errorf("two premium: %v want 6", got)
	}

	withPremium := append(append([]string{}, plain...), PremiumAmenities...)
	if got := amenitiesScore(withPremium); got != 20 {
		t.Errorf("saturated: %v want 20", got)
	}
}

func TestLocationRating(t *testing.T) {
	t.Parallel()

	for city, want := range map[string]float64{
		"Mumbai":  25,
		" pune ":  25,
		"Chennai": 20,
		"Kochi":   20,
		"Shimla":  15,
		"":        15,
	} {
		if got := locationRating(city); got != want {
			t.Errorf("%q: %v want %v", city, got, want)
		}
	}
}

func TestUserInterestAndReviews(t *testing.T) {
	t.Parallel()

	if got := userInterest(0, 0); got != 0 {
		t.Errorf("no engagement: %v", got)
	}
	if got := userInterest(50, 4); got != 7 {
		t.Errorf("50 views 4 saves: %v want 7", got)
	}
	if got := userInterest(10_000, 500); got != 15 {
		t.Errorf("saturated: %v want 15", got)
	}
	if got := userInterest(-5, -5); got != 0 {
		t.Errorf("negative counts: %v want 0", got)
	}

	if got := reviewRating(5); got != 15 {
		t.Errorf("rating 5: %v", got)
	}
	if got := reviewRating(4); got != 12 {
		t.Errorf("rating 4: %v", got)
	}
	if got := reviewRating(9); got != 15 {
		t.Errorf("rating 9 should clamp: %v", got)
	}
}

func TestQualityScore_TotalWithinRange(t *testing.T) {
	t.Parallel()

	many := make([]string, 100)
	for i := range many {
		many[i] = "x"
	}

	cases := []struct {
		name string
		p    domain.Property
		s    QualitySignals
	}{
		{"empty", domain.Property{}, QualitySignals{}},
		{"zero area", domain.Property{Price: 1_000_000}, QualitySignals{AreaAvgPricePerSqft: 5000}},
		{"maxed", domain.Property{Price: 1, AreaSqft: 1000, Location: "Mumbai", Amenities: append(many, PremiumAmenities...)},
			QualitySignals{AreaAvgPricePerSqft: 5000, ViewCount: math.MaxInt32, SaveCount: math.MaxInt32, AvgRating: 1e9}},
		{"negative", domain.Property{Price: -100, AreaSqft: -3}, QualitySignals{AreaAvgPricePerSqft: -1, ViewCount: -1, SaveCount: -1, AvgRating: -10}},
	}

	for _, tc := range cases {
		got := QualityScore(tc.p, tc.s)
		if got.Total < 0 || got.Total > 100 {
			t.Errorf("%s: total=%d out of range", tc.name, got.Total)
		}
	}

	if got := QualityScore(cases[2].p, cases[2].s); got.Total != 100 {
		t.Errorf("maxed: total=%d want 100", got.Total)
	}
}

func TestQualityScore_Breakdown(t *testing.T) {
	t.Parallel()

	p := domain.Property{Price: 5_000_000, AreaSqft: 1000, Location: "Chennai", Amenities: []string{"Parking", "Gym"}}
	got := QualityScore(p, QualitySignals{AreaAvgPricePerSqft: 6200, ViewCount: 100, SaveCount: 10, AvgRating: 3})

	want := domain.QualityBreakdown{
		PriceFairness:  20, // ~ -19.4%
		Amenities:      4,  // 3 + 1.25
		LocationRating: 20,
		UserInterest:   15,
		ReviewRating:   9,
	}
	if got.Breakdown != want {
		t.Fatalf("breakdown=%+v want %+v", got.Breakdown, want)
	}
	if got.Total != 68 {
		t.Fatalf("total=%d want 68", got.Total)
	}
}
