package domain

import (
	"errors"
	"testing"
)

func TestNewUserPreferences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      UserPreferences
		wantErr error
	}{
		{"valid range", UserPreferences{MinBudget: 100, MaxBudget: 200}, nil},
		{"equal bounds", UserPreferences{MinBudget: 200, MaxBudget: 200}, nil},
		{"unbounded max", UserPreferences{MinBudget: 500}, nil},
		{"inverted range", UserPreferences{MinBudget: 300, MaxBudget: 200}, ErrInvalidBudgetRange},
		{"negative min", UserPreferences{MinBudget: -1}, ErrInvalidInput},
		{"too many bedrooms", UserPreferences{PreferredBedrooms: 50}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUserPreferences(tt.in)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("err=%v want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewUserPreferences_TrimsText(t *testing.T) {
	t.Parallel()

	p, err := NewUserPreferences(UserPreferences{PreferredLocation: "  Pune ", PreferredPropertyType: " Villa"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.PreferredLocation != "Pune" || p.PreferredPropertyType != "Villa" {
		t.Fatalf("got %q/%q", p.PreferredLocation, p.PreferredPropertyType)
	}
}

func TestReviewInputValidate(t *testing.T) {
	t.Parallel()

	if err := (ReviewInput{Author: "a", Rating: 5}).Validate(); err != nil {
		t.Fatalf("valid review rejected: %v", err)
	}
	for _, r := range []int{0, 6, -1} {
		if err := (ReviewInput{Author: "a", Rating: r}).Validate(); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("rating %d: err=%v want ErrInvalidInput", r, err)
		}
	}
	if err := (ReviewInput{Rating: 3}).Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("missing author accepted")
	}
}

func TestParsers(t *testing.T) {
	t.Parallel()

	if got := NormalizeName("  new   delhi "); got != "New Delhi" {
		t.Errorf("NormalizeName=%q", got)
	}
	if pt, ok := ParsePropertyType("apartment"); !ok || pt != TypeApartment {
		t.Errorf("ParsePropertyType=%q,%v", pt, ok)
	}
	if _, ok := ParsePropertyType("castle"); ok {
		t.Errorf("unknown type accepted")
	}
	if lt, ok := ParseListingType("RENT"); !ok || lt != ListingRent {
		t.Errorf("ParseListingType=%q,%v", lt, ok)
	}
	if st, ok := ParseStatus("under_construction"); !ok || st != StatusUnderConstruction {
		t.Errorf("ParseStatus=%q,%v", st, ok)
	}
}

func TestPricePerSqft(t *testing.T) {
	t.Parallel()

	if got := (Property{Price: 1000}).PricePerSqft(); got != 0 {
		t.Errorf("zero area: got %v", got)
	}
	if got := (Property{Price: 1000, AreaSqft: 10}).PricePerSqft(); got != 100 {
		t.Errorf("got %v want 100", got)
	}
}
