package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/denisok6893-rgb/property-insights/internal/alerts"
	"github.com/denisok6893-rgb/property-insights/internal/domain"
	"github.com/denisok6893-rgb/property-insights/internal/storage"
)

func newTestServer(t *testing.T) (*httptest.Server, *storage.SQLiteStore) {
	t.Helper()

	st, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	if err := st.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("schema: %v", err)
	}

	srv := NewServer(Deps{
		Store:  st,
		State:  st.State(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts, st
}

// seedCatalogue stores three Pune/Mumbai listings, one of them sold.
func seedCatalogue(t *testing.T, st *storage.SQLiteStore) {
	t.Helper()

	created := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	props := []domain.Property{
		{
			ID: "p-1", Title: "2 BHK in Baner", Price: 3_200_000, Location: "Pune",
			Bedrooms: 2, Bathrooms: 2, AreaSqft: 800, Amenities: []string{"Gym", "Parking"},
			PropertyType: domain.TypeApartment, ListingType: domain.ListingBuy, Status: domain.StatusAvailable,
			CreatedAt: created,
		},
		{
			ID: "p-2", Title: "2 BHK in Wakad", Price: 3_200_000, Location: "Pune",
			Bedrooms: 2, Bathrooms: 1, AreaSqft: 780,
			PropertyType: domain.TypeApartment, ListingType: domain.ListingBuy, Status: domain.StatusSold,
			CreatedAt: created.Add(time.Hour),
		},
		{
			ID: "p-3", Title: "Sea view villa", Price: 20_000_000, Location: "Mumbai",
			Bedrooms: 4, Bathrooms: 4, AreaSqft: 2500,
			PropertyType: domain.TypeVilla, ListingType: domain.ListingBuy, Status: domain.StatusAvailable,
			CreatedAt: created.Add(2 * time.Hour),
		},
	}
	if err := st.UpsertMany(context.Background(), props); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

// do sends body (JSON-encoded unless it is a string) and returns the
// response with its body read.
func do(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()

	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rdr = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, out
}

func decode(t *testing.T, b []byte, dst any) {
	t.Helper()
	if err := json.Unmarshal(b, dst); err != nil {
		t.Fatalf("decode %s: %v", b, err)
	}
}

func expectStatus(t *testing.T, resp *http.Response, body []byte, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("%s %s status=%d want=%d body=%s", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, want, body)
	}
}

// expectError checks for a JSON {"error": ...} body with the given status.
func expectError(t *testing.T, resp *http.Response, body []byte, want int) {
	t.Helper()
	expectStatus(t, resp, body, want)
	var e struct {
		Error string `json:"error"`
	}
	decode(t, body, &e)
	if e.Error == "" {
		t.Fatalf("missing error message in %s", body)
	}
}

func alertsInput(location, propertyType string, maxPrice *int64) alerts.CriteriaInput {
	return alerts.CriteriaInput{Location: location, PropertyType: propertyType, MaxPrice: maxPrice}
}
