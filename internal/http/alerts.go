package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/denisok6893-rgb/property-insights/internal/alerts"
	"github.com/denisok6893-rgb/property-insights/internal/domain"
)

type CreateAlertRequest struct {
	UserID   string               `json:"user_id" validate:"required,max=100"`
	Name     string               `json:"name" validate:"max=100"`
	Criteria alerts.CriteriaInput `json:"criteria"`
}

type AlertMatchesResponse struct {
	AlertID string            `json:"alert_id"`
	Total   int               `json:"total"`
	Items   []domain.Property `json:"items"`
}

func (s *Server) handleAlertsList(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	list, err := s.store.ListAlerts(r.Context(), userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user_id": userID, "items": list})
}

func (s *Server) handleAlertsCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateAlertRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	req.UserID = strings.TrimSpace(req.UserID)
	if err := validate.Struct(req); err != nil {
		fail(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}

	c, err := alerts.NewCriteria(req.Criteria)
	if err != nil {
		fail(w, r, err)
		return
	}
	a, err := s.store.CreateAlert(r.Context(), req.UserID, req.Name, c)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// handleAlertMatches runs a saved alert against the current catalogue.
func (s *Server) handleAlertMatches(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.GetAlert(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	props, err := s.store.AllProperties(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}

	matches := a.Criteria.Filter(props)
	if matches == nil {
		matches = []domain.Property{}
	}
	writeJSON(w, http.StatusOK, AlertMatchesResponse{AlertID: a.ID, Total: len(matches), Items: matches})
}

func (s *Server) handleAlertsDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.store.DeleteAlert(r.Context(), chi.URLParam(r, "id"))
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
