package fixtures

import (
	"reflect"
	"testing"
	"time"

	"github.com/denisok6893-rgb/property-insights/internal/domain"
	"github.com/denisok6893-rgb/property-insights/internal/matching"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()

	a := Generate(Options{Count: 25, Seed: 7, Now: fixedNow})
	b := Generate(Options{Count: 25, Seed: 7, Now: fixedNow})
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different output")
	}

	c := Generate(Options{Count: 25, Seed: 8, Now: fixedNow})
	if reflect.DeepEqual(a, c) {
		t.Fatal("different seeds produced identical output")
	}
}

func TestGenerate_RecordsAreWellFormed(t *testing.T) {
	t.Parallel()

	props := Generate(Options{Count: 200, Seed: 42, Now: fixedNow})
	if len(props) != 200 {
		t.Fatalf("len=%d", len(props))
	}

	ids := make(map[string]bool, len(props))
	for _, p := range props {
		if ids[p.ID] {
			t.Fatalf("duplicate id %s", p.ID)
		}
		ids[p.ID] = true

		if p.Price <= 0 || p.AreaSqft <= 0 {
			t.Fatalf("non-positive price/area: %+v", p)
		}
		if _, ok := matching.MarketData(p.Location); !ok {
			t.Fatalf("city %q has no market data", p.Location)
		}
		if _, ok := domain.ParsePropertyType(string(p.PropertyType)); !ok {
			t.Fatalf("bad type %q", p.PropertyType)
		}
		if p.ListingType == domain.ListingRent && (p.Status == domain.StatusSold || p.Status == domain.StatusUnderConstruction) {
			t.Fatalf("rental with sale status: %+v", p)
		}
		if p.ListingType == domain.ListingBuy && p.Status == domain.StatusRented {
			t.Fatalf("sale listing marked rented: %+v", p)
		}
		seen := map[string]bool{}
		for _, a := range p.Amenities {
			if seen[a] {
				t.Fatalf("duplicate amenity %q in %s", a, p.ID)
			}
			seen[a] = true
		}
		if len(p.ImageURLs) == 0 {
			t.Fatalf("no images for %s", p.ID)
		}
		if p.CreatedAt.After(fixedNow) {
			t.Fatalf("created in the future: %v", p.CreatedAt)
		}
	}
}

func TestGenerate_NonPositiveCount(t *testing.T) {
	t.Parallel()

	if got := Generate(Options{Count: 0}); got == nil || len(got) != 0 {
		t.Fatalf("got %v", got)
	}
}

func TestEveryMarketCityIsGenerated(t *testing.T) {
	t.Parallel()

	for _, city := range matching.MarketCities() {
		if len(localities[city]) == 0 {
			t.Errorf("%s has no localities", city)
		}
		if band, ok := pricePerSqft[city]; !ok || band[0] >= band[1] {
			t.Errorf("%s has no price band", city)
		}
	}
	if len(cities) != len(matching.MarketCities()) {
		t.Fatalf("cities=%d market cities=%d", len(cities), len(matching.MarketCities()))
	}
}
