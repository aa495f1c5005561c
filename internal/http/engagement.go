package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/denisok6893-rgb/property-insights/internal/domain"
)

func (s *Server) handleReviewsList(w http.ResponseWriter, r *http.Request) {
	p, err := s.property(r, chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	reviews, err := s.store.ListReviews(r.Context(), p.ID)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"property_id": p.ID, "items": reviews})
}

func (s *Server) handleReviewsCreate(w http.ResponseWriter, r *http.Request) {
	var in domain.ReviewInput
	if err := decodeJSON(w, r, &in); err != nil {
		fail(w, r, err)
		return
	}
	in.Author = strings.TrimSpace(in.Author)
	if err := in.Validate(); err != nil {
		fail(w, r, err)
		return
	}

	review, err := s.store.AddReview(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

type FavoriteRequest struct {
	UserID     string `json:"user_id" validate:"required,max=100"`
	PropertyID string `json:"property_id" validate:"required"`
}

func (req FavoriteRequest) validate() error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: user_id and property_id are required", domain.ErrInvalidInput)
	}
	return nil
}

func userIDParam(r *http.Request) (string, error) {
	id := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if err := validate.Var(id, "required,max=100"); err != nil {
		return "", fmt.Errorf("%w: user_id is required", domain.ErrInvalidInput)
	}
	return id, nil
}

func (s *Server) handleFavoritesList(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	props, err := s.store.ListFavorites(r.Context(), userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user_id": userID, "items": props})
}

func (s *Server) handleFavoritesAdd(w http.ResponseWriter, r *http.Request) {
	var req FavoriteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	req.UserID = strings.TrimSpace(req.UserID)
	if err := req.validate(); err != nil {
		fail(w, r, err)
		return
	}

	fav, err := s.store.AddFavorite(r.Context(), req.UserID, req.PropertyID)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, fav)
}

func (s *Server) handleFavoritesRemove(w http.ResponseWriter, r *http.Request) {
	req := FavoriteRequest{
		UserID:     strings.TrimSpace(r.URL.Query().Get("user_id")),
		PropertyID: r.URL.Query().Get("property_id"),
	}
	if err := req.validate(); err != nil {
		fail(w, r, err)
		return
	}

	removed, err := s.store.RemoveFavorite(r.Context(), req.UserID, req.PropertyID)
	if err != nil {
		fail(w, r, err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
