package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/denisok6893-rgb/property-insights/internal/storage"
)

func stateKey(r *http.Request) (string, error) {
	key, err := url.PathUnescape(chi.URLParam(r, "key"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", storage.ErrInvalidKey, err)
	}
	return key, nil
}

func (s *Server) handleStateGet(w http.ResponseWriter, r *http.Request) {
	key, err := stateKey(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	v, ok, err := s.state.Get(r.Context(), key)
	if err != nil {
		fail(w, r, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(v)
}

// handleStatePut stores the raw request body; it must be valid JSON.
func (s *Server) handleStatePut(w http.ResponseWriter, r *http.Request) {
	key, err := stateKey(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "body too large")
		return
	}
	if err := s.state.Put(r.Context(), key, json.RawMessage(body)); err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStateDelete(w http.ResponseWriter, r *http.Request) {
	key, err := stateKey(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	deleted, err := s.state.Delete(r.Context(), key)
	if err != nil {
		fail(w, r, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
