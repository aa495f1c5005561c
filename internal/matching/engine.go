package matching

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/denisok6893-rgb/property-insights/internal/domain"
)

const defaultRecommendationLimit = 5

// PopularAmenities earn the capped amenity bonus in recommendations.
var PopularAmenities = []string{
	"Parking", "Gym", "Swimming Pool", "Security",
	"Power Backup", "Lift", "Garden", "Clubhouse",
}

type Engine struct {
	weights Weights
}

func NewEngine(w Weights) *Engine {
	return &Engine{weights: w}
}

// Recommend keeps available properties with a positive score, ordered by
// score (input order on ties) and truncated to limit.
func (e *Engine) Recommend(pref domain.UserPreferences, properties []domain.Property, limit int) []domain.ScoredProperty {
	out := make([]domain.ScoredProperty, 0, len(properties))

	for _, p := range properties {
		if p.Status != domain.StatusAvailable {
			continue
		}
		score, reasons := e.Score(pref, p)
		if score <= 0 {
			continue
		}
		out = append(out, domain.ScoredProperty{
			Property: p,
			Score:    score,
			Reasons:  reasons,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Score sums the rule points for p against pref. Reasons follow rule order.
func (e *Engine) Score(pref domain.UserPreferences, p domain.Property) (float64, []string) {
	var score float64
	var reasons []string

	add := func(points float64, reason string) {
		if points <= 0 {
			return
		}
		score += points
		reasons = append(reasons, reason)
	}

	add(e.budgetPoints(p.Price, pref.MinBudget, pref.MaxBudget))

	if loc := strings.TrimSpace(pref.PreferredLocation); loc != "" && strings.EqualFold(strings.TrimSpace(p.Location), loc) {
		add(e.weights.Location, "Located in "+p.Location)
	}

	if pt := strings.TrimSpace(pref.PreferredPropertyType); pt != "" && strings.EqualFold(string(p.PropertyType), pt) {
		add(e.weights.PropertyType, "Matches your preferred type: "+string(p.PropertyType))
	}

	if pref.PreferredBedrooms > 0 {
		switch diff := p.Bedrooms - pref.PreferredBedrooms; {
		case diff == 0:
			add(e.weights.BedroomsExact, fmt.Sprintf("Exactly %d bedrooms", p.Bedrooms))
		case diff == 1 || diff == -1:
			add(e.weights.BedroomsNear, fmt.Sprintf("%d bedrooms, close to your preference", p.Bedrooms))
		}
	}

	if n := countMatching(p.Amenities, PopularAmenities); n > 0 {
		add(math.Min(float64(n)*e.weights.AmenityEach, e.weights.AmenityCap),
			fmt.Sprintf("Has %d popular amenities", n))
	}

	return clamp(score, 0, 100), reasons
}

func (e *Engine) budgetPoints(price, minBudget, maxBudget int64) (float64, string) {
	if minBudget <= 0 && maxBudget <= 0 {
		return 0, ""
	}
	aboveMin := minBudget <= 0 || price >= minBudget
	belowMax := maxBudget <= 0 || price <= maxBudget
	if aboveMin && belowMax {
		return e.weights.BudgetInRange, "Within your budget"
	}

	dist := budgetDistance(price, minBudget, maxBudget)
	switch {
	case dist <= 0.10:
		return e.weights.BudgetWithin10, "Within 10% of your budget"
	case dist <= 0.25:
		return e.weights.BudgetWithin25, "Within 25% of your budget"
	}
	return 0, ""
}

// budgetDistance is the relative distance of price from the nearest violated bound.
func budgetDistance(price, minBudget, maxBudget int64) float64 {
	var below, above float64
	if minBudget > 0 && price < minBudget {
		below = float64(minBudget-price) / float64(minBudget)
	}
	if maxBudget > 0 && price > maxBudget {
		above = float64(price-maxBudget) / float64(maxBudget)
	}
	return math.Max(below, above)
}

// countMatching counts entries of have that appear in list, ignoring case.
// Duplicate entries in have are counted once.
func countMatching(have, list []string) int {
	want := make(map[string]struct{}, len(list))
	for _, a := range list {
		want[strings.ToLower(a)] = struct{}{}
	}
	seen := make(map[string]struct{}, len(have))
	n := 0
	for _, a := range have {
		k := strings.ToLower(strings.TrimSpace(a))
		if _, ok := want[k]; !ok {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		n++
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
