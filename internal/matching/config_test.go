package matching

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultWeightsSumTo100(t *testing.T) {
	t.Parallel()

	w := DefaultWeights()
	sum := w.BudgetInRange + w.Location + w.PropertyType + w.BedroomsExact + w.AmenityCap
	if sum != 100 {
		t.Fatalf("max score=%v want 100", sum)
	}
}

func TestLoadWeightsFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "weights.yaml")
	if err := os.WriteFile(yamlPath, []byte("budget_in_range: 30\nlocation: 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := LoadWeightsFromFile(yamlPath)
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	if w.BudgetInRange != 30 || w.Location != 30 {
		t.Fatalf("overrides not applied: %+v", w)
	}
	if w.PropertyType != DefaultWeights().PropertyType {
		t.Fatalf("unset key lost its default: %+v", w)
	}

	jsonPath := filepath.Join(dir, "weights.json")
	if err := os.WriteFile(jsonPath, []byte(`{"amenity_cap": 12}`), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err = LoadWeightsFromFile(jsonPath)
	if err != nil {
		t.Fatalf("load json: %v", err)
	}
	if w.AmenityCap != 12 {
		t.Fatalf("amenity cap=%v want 12", w.AmenityCap)
	}
}

func TestLoadWeightsFromFile_Errors(t *testing.T) {
	t.Parallel()

	w, err := LoadWeightsFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if w != DefaultWeights() {
		t.Fatalf("missing file should return defaults, got %+v", w)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("location: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadWeightsFromFile(bad); err == nil {
		t.Fatal("expected error for malformed file")
	}
}

func TestShippedWeightsMatchDefaults(t *testing.T) {
	t.Parallel()

	w, err := LoadWeightsFromFile(filepath.Join("..", "..", "configs", "weights.yaml"))
	if err != nil {
		t.Fatalf("load shipped weights: %v", err)
	}
	if w != DefaultWeights() {
		t.Fatalf("configs/weights.yaml drifted from defaults: %+v", w)
	}
}
