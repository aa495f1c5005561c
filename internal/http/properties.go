package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/denisok6893-rgb/property-insights/internal/domain"
	"github.com/denisok6893-rgb/property-insights/internal/storage"
)

type PropertiesListResponse struct {
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
	Total  int               `json:"total"`
	Items  []domain.Property `json:"items"`
}

func (s *Server) handlePropertiesList(w http.ResponseWriter, r *http.Request) {
	f, err := parseListFilter(r)
	if err != nil {
		fail(w, r, err)
		return
	}

	items, total, err := s.store.ListProperties(r.Context(), f)
	if err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, PropertiesListResponse{
		Limit:  f.Limit,
		Offset: f.Offset,
		Total:  total,
		Items:  items,
	})
}

func parseListFilter(r *http.Request) (storage.ListFilter, error) {
	q := r.URL.Query()
	limit, offset := parseLimitOffset(r, 20, 0)
	f := storage.ListFilter{
		Limit:    limit,
		Offset:   offset,
		Location: strings.TrimSpace(q.Get("location")),
		Sort:     q.Get("sort"),
	}

	var err error
	if f.MinPrice, err = queryInt64(r, "min_price"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = queryInt64(r, "max_price"); err != nil {
		return f, err
	}
	if f.MaxPrice > 0 && f.MinPrice > f.MaxPrice {
		return f, fmt.Errorf("%w: min_price exceeds max_price", domain.ErrInvalidInput)
	}
	if v := q.Get("min_bedrooms"); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n < 0 {
			return f, fmt.Errorf("%w: min_bedrooms must be a non-negative integer", domain.ErrInvalidInput)
		}
		f.MinBedrooms = n
	}
	if v := q.Get("property_type"); v != "" {
		pt, ok := domain.ParsePropertyType(v)
		if !ok {
			return f, fmt.Errorf("%w: unknown property_type %q", domain.ErrInvalidInput, v)
		}
		f.PropertyType = pt
	}
	if v := q.Get("listing_type"); v != "" {
		lt, ok := domain.ParseListingType(v)
		if !ok {
			return f, fmt.Errorf("%w: unknown listing_type %q", domain.ErrInvalidInput, v)
		}
		f.ListingType = lt
	}
	if v := q.Get("status"); v != "" {
		st, ok := domain.ParseStatus(v)
		if !ok {
			return f, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, v)
		}
		f.Status = st
	}
	return f, nil
}

type CreatePropertyRequest struct {
	Title        string   `json:"title" validate:"required,max=200"`
	Description  string   `json:"description" validate:"max=5000"`
	Price        int64    `json:"price" validate:"gt=0"`
	Location     string   `json:"location" validate:"required,max=100"`
	Bedrooms     int      `json:"bedrooms" validate:"gte=0,lte=50"`
	Bathrooms    int      `json:"bathrooms" validate:"gte=0,lte=50"`
	AreaSqft     float64  `json:"area_sqft" validate:"gte=0"`
	Amenities    []string `json:"amenities" validate:"max=50,dive,required,max=100"`
	PropertyType string   `json:"property_type" validate:"required"`
	ListingType  string   `json:"listing_type"`
	Status       string   `json:"status"`
	ImageURLs    []string `json:"image_urls" validate:"max=20,dive,url"`
}

func (req CreatePropertyRequest) toProperty() (domain.Property, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validate.Struct(req); err != nil {
		return domain.Property{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	p := domain.Property{
		Title:       req.Title,
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Location:    domain.NormalizeName(req.Location),
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		AreaSqft:    req.AreaSqft,
		Amenities:   req.Amenities,
		ImageURLs:   req.ImageURLs,
	}

	var ok bool
	if p.PropertyType, ok = domain.ParsePropertyType(req.PropertyType); !ok {
		return domain.Property{}, fmt.Errorf("%w: unknown property_type %q", domain.ErrInvalidInput, req.PropertyType)
	}
	if req.ListingType != "" {
		if p.ListingType, ok = domain.ParseListingType(req.ListingType); !ok {
			return domain.Property{}, fmt.Errorf("%w: unknown listing_type %q", domain.ErrInvalidInput, req.ListingType)
		}
	}
	if req.Status != "" {
		if p.Status, ok = domain.ParseStatus(req.Status); !ok {
			return domain.Property{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, req.Status)
		}
	}
	return p, nil
}

func (s *Server) handlePropertiesCreate(w http.ResponseWriter, r *http.Request) {
	var req CreatePropertyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	p, err := req.toProperty()
	if err != nil {
		fail(w, r, err)
		return
	}

	created, err := s.store.CreateProperty(r.Context(), p)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handlePropertyGet returns one property and counts the read as a view.
func (s *Server) handlePropertyGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.RecordView(r.Context(), id); err != nil {
		fail(w, r, err)
		return
	}
	p, err := s.property(r, id)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePropertyDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.store.DeleteProperty(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// property loads id or returns a wrapped storage.ErrNotFound.
func (s *Server) property(r *http.Request, id string) (domain.Property, error) {
	p, ok, err := s.store.GetProperty(r.Context(), id)
	if err != nil {
		return domain.Property{}, err
	}
	if !ok {
		return domain.Property{}, fmt.Errorf("property %s: %w", id, storage.ErrNotFound)
	}
	return p, nil
}
