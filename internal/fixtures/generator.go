// Package fixtures generates randomized but reproducible property listings
// for seeding a catalogue.
package fixtures

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/denisok6893-rgb/property-insights/internal/domain"
)

// idNamespace scopes generated ids so the same seed yields the same ids.
var idNamespace = uuid.MustParse("5b0cf2f4-6a3e-4c61-9a55-0e3f7f0c2a11")

var cities = []string{
	"Bangalore", "Mumbai", "Delhi", "Pune", "Hyderabad",
	"Chennai", "Gurgaon", "Noida", "Kolkata", "Ahmedabad",
}

// localities give titles some variety; they are not used for scoring.
var localities = map[string][]string{
	"Bangalore": {"Whitefield", "Koramangala", "HSR Layout", "Indiranagar"},
	"Mumbai":    {"Andheri", "Bandra", "Powai", "Thane"},
	"Delhi":     {"Dwarka", "Saket", "Rohini", "Vasant Kunj"},
	"Pune":      {"Hinjewadi", "Baner", "Kharadi", "Wakad"},
	"Hyderabad": {"Gachibowli", "Madhapur", "Kondapur", "Banjara Hills"},
	"Chennai":   {"Adyar", "Velachery", "OMR", "Anna Nagar"},
	"Gurgaon":   {"Golf Course Road", "Sohna Road", "DLF Phase 3"},
	"Noida":     {"Sector 62", "Sector 150", "Sector 137"},
	"Kolkata":   {"Salt Lake", "New Town", "Ballygunge"},
	"Ahmedabad": {"Satellite", "Bopal", "Prahlad Nagar"},
}

var amenityPool = []string{
	"Parking", "Gym", "Swimming Pool", "Security", "Power Backup", "Lift",
	"Garden", "Clubhouse", "Concierge", "Smart Home", "Spa", "Play Area",
	"Balcony", "Intercom", "Rainwater Harvesting",
}

// Per-sqft sale price range per city; rents are derived from it.
var pricePerSqft = map[string][2]float64{
	"Bangalore": {4500, 9500},
	"Mumbai":    {12000, 26000},
	"Delhi":     {7000, 16000},
	"Pune":      {5000, 9500},
	"Hyderabad": {4200, 8500},
	"Chennai":   {4500, 8500},
	"Gurgaon":   {6500, 13000},
	"Noida":     {4200, 8000},
	"Kolkata":   {3500, 7000},
	"Ahmedabad": {3200, 6000},
}

type Options struct {
	Count int
	Seed  uint64
	// Now anchors created_at; defaults to the current time.
	Now time.Time
}

// Generate returns opts.Count properties. The same Count, Seed and Now
// always produce the same output.
func Generate(opts Options) []domain.Property {
	if opts.Count <= 0 {
		return []domain.Property{}
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}
	r := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	out := make([]domain.Property, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		out = append(out, generateOne(r, opts.Seed, i, opts.Now))
	}
	return out
}

func generateOne(r *rand.Rand, seed uint64, i int, now time.Time) domain.Property {
	city := pick(r, cities)
	locality := pick(r, localities[city])
	ptype := pickWeighted(r, domain.PropertyTypes, []int{45, 15, 12, 10, 8, 10})

	listing := domain.ListingBuy
	if ptype == domain.TypePG || r.IntN(100) < 25 {
		listing = domain.ListingRent
	}

	bedrooms := 1 + r.IntN(4)
	switch ptype {
	case domain.TypePlot, domain.TypeCommercial:
		bedrooms = 0
	case domain.TypeVilla:
		bedrooms = 3 + r.IntN(3)
	case domain.TypePG:
		bedrooms = 1
	}
	bathrooms := max(bedrooms-r.IntN(2), 1)
	if bedrooms == 0 {
		bathrooms = r.IntN(2)
	}

	area := float64(350+bedrooms*450) * (0.8 + 0.4*r.Float64())
	if ptype == domain.TypePlot {
		area = float64(1200 + r.IntN(3800))
	}
	area = math.Round(area)

	band := pricePerSqft[city]
	ppsf := band[0] + (band[1]-band[0])*r.Float64()
	price := roundTo(area*ppsf, 10_000)
	if listing == domain.ListingRent {
		// roughly 2.5-4% annual yield
		price = roundTo(area*ppsf*(0.025+0.015*r.Float64())/12, 500)
	}

	status := domain.StatusAvailable
	switch n := r.IntN(100); {
	case n < 10 && listing == domain.ListingBuy:
		status = domain.StatusSold
	case n < 10:
		status = domain.StatusRented
	case n < 18 && listing == domain.ListingBuy:
		status = domain.StatusUnderConstruction
	}

	id := uuid.NewSHA1(idNamespace, []byte(fmt.Sprintf("%d/%d", seed, i))).String()

	return domain.Property{
		ID:           id,
		Title:        title(bedrooms, ptype, locality, city),
		Description:  fmt.Sprintf("%s in %s, %s with %.0f sq ft of space.", ptype, locality, city, area),
		Price:        price,
		Location:     city,
		Bedrooms:     bedrooms,
		Bathrooms:    bathrooms,
		AreaSqft:     area,
		Amenities:    sample(r, amenityPool, r.IntN(8)),
		PropertyType: ptype,
		ListingType:  listing,
		Status:       status,
		ImageURLs:    images(id, 1+r.IntN(4)),
		CreatedAt:    now.Add(-time.Duration(r.IntN(180*24)) * time.Hour).Truncate(time.Second),
	}
}

func title(bedrooms int, ptype domain.PropertyType, locality, city string) string {
	if bedrooms == 0 {
		return fmt.Sprintf("%s in %s, %s", ptype, locality, city)
	}
	return fmt.Sprintf("%d BHK %s in %s, %s", bedrooms, ptype, locality, city)
}

func images(id string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("https://images.example.com/properties/%s/%d.jpg", id, i+1)
	}
	return out
}

func pick[T any](r *rand.Rand, items []T) T {
	return items[r.IntN(len(items))]
}

func pickWeighted[T any](r *rand.Rand, items []T, weights []int) T {
	total := 0
	for _, w := range weights {
		total += w
	}
	n := r.IntN(total)
	for i, w := range weights {
		if n < w {
			return items[i]
		}
		n -= w
	}
	return items[len(items)-1]
}

// sample returns n distinct items in pool order.
func sample(r *rand.Rand, pool []string, n int) []string {
	idx := r.Perm(len(pool))[:min(n, len(pool))]
	chosen := make(map[int]bool, len(idx))
	for _, i := range idx {
		chosen[i] = true
	}
	out := make([]string, 0, len(idx))
	for i, a := range pool {
		if chosen[i] {
			out = append(out, a)
		}
	}
	return out
}

func roundTo(v float64, step int64) int64 {
	return int64(math.Round(v/float64(step))) * step
}
