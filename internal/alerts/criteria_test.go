package alerts

import (
	"errors"
	"testing"

	"github.com/denisok6893-rgb/property-insights/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestNewCriteria(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      CriteriaInput
		wantErr error
	}{
		{"location only", CriteriaInput{Location: " pune "}, nil},
		{"price range", CriteriaInput{MinPrice: ptr[int64](100), MaxPrice: ptr[int64](200)}, nil},
		{"empty", CriteriaInput{}, ErrEmptyCriteria},
		{"blank strings", CriteriaInput{Location: "  ", PropertyType: " "}, ErrEmptyCriteria},
		{"inverted price", CriteriaInput{MinPrice: ptr[int64](300), MaxPrice: ptr[int64](200)}, ErrInvalidCriteria},
		{"negative min", CriteriaInput{MinPrice: ptr[int64](-1)}, ErrInvalidCriteria},
		{"unknown type", CriteriaInput{PropertyType: "castle"}, ErrInvalidCriteria},
		{"unknown listing", CriteriaInput{ListingType: "lease-to-own"}, ErrInvalidCriteria},
		{"too many bedrooms", CriteriaInput{MinBedrooms: ptr(99)}, ErrInvalidCriteria},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCriteria(tt.in)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("err=%v want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewCriteria_NormalizesEnums(t *testing.T) {
	t.Parallel()

	c, err := NewCriteria(CriteriaInput{Location: "new  delhi", PropertyType: "villa", ListingType: "RENT"})
	if err != nil {
		t.Fatal(err)
	}
	if *c.Location != "New Delhi" || *c.PropertyType != domain.TypeVilla || *c.ListingType != domain.ListingRent {
		t.Fatalf("got %q %q %q", *c.Location, *c.PropertyType, *c.ListingType)
	}
}

func TestCriteriaMatches(t *testing.T) {
	t.Parallel()

	p := domain.Property{
		Price:        5_000_000,
		Location:     "Pune West",
		Bedrooms:     3,
		PropertyType: domain.TypeApartment,
		ListingType:  domain.ListingBuy,
	}

	tests := []struct {
		name string
		in   CriteriaInput
		want bool
	}{
		{"location substring", CriteriaInput{Location: "pune"}, true},
		{"other city", CriteriaInput{Location: "Mumbai"}, false},
		{"type match", CriteriaInput{PropertyType: "Apartment"}, true},
		{"type mismatch", CriteriaInput{PropertyType: "Villa"}, false},
		{"listing mismatch", CriteriaInput{ListingType: "Rent"}, false},
		{"in price range", CriteriaInput{MinPrice: ptr[int64](5_000_000), MaxPrice: ptr[int64](5_000_000)}, true},
		{"too cheap for alert", CriteriaInput{MinPrice: ptr[int64](6_000_000)}, false},
		{"too expensive", CriteriaInput{MaxPrice: ptr[int64](4_000_000)}, false},
		{"enough bedrooms", CriteriaInput{MinBedrooms: ptr(3)}, true},
		{"too few bedrooms", CriteriaInput{MinBedrooms: ptr(4)}, false},
		{"all fields", CriteriaInput{Location: "Pune", PropertyType: "apartment", ListingType: "buy", MaxPrice: ptr[int64](6_000_000), MinBedrooms: ptr(2)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCriteria(tt.in)
			if err != nil {
				t.Fatalf("NewCriteria: %v", err)
			}
			if got := c.Matches(p); got != tt.want {
				t.Fatalf("Matches=%v want %v", got, tt.want)
			}
		})
	}
}

func TestCriteriaFilter_SkipsUnavailable(t *testing.T) {
	t.Parallel()

	c, _ := NewCriteria(CriteriaInput{Location: "Pune"})
	props := []domain.Property{
		{ID: "a", Location: "Pune", Status: domain.StatusAvailable},
		{ID: "b", Location: "Pune", Status: domain.StatusSold},
		{ID: "c", Location: "Delhi", Status: domain.StatusAvailable},
		{ID: "d", Location: "pune", Status: domain.StatusAvailable},
	}
	got := c.Filter(props)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "d" {
		t.Fatalf("got %+v", got)
	}
}
