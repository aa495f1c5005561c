package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/denisok6893-rgb/property-insights/internal/costs"
	"github.com/denisok6893-rgb/property-insights/internal/domain"
	"github.com/denisok6893-rgb/property-insights/internal/matching"
)

const maxRecommendations = 50

type RecommendationRequest struct {
	Preferences domain.UserPreferences `json:"preferences"`
	Limit       int                    `json:"limit"`
}

type RecommendationResponse struct {
	Results []domain.ScoredProperty `json:"results"`
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req RecommendationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}

	pref, err := domain.NewUserPreferences(req.Preferences)
	if err != nil {
		fail(w, r, err)
		return
	}

	limit := req.Limit
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	limit = min(limit, maxRecommendations)

	props, err := s.store.AllProperties(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, RecommendationResponse{Results: s.engine.Recommend(pref, props, limit)})
}

type QualityResponse struct {
	PropertyID string                  `json:"property_id"`
	Quality    domain.QualityScore     `json:"quality"`
	Signals    matching.QualitySignals `json:"signals"`
}

func (s *Server) handleQuality(w http.ResponseWriter, r *http.Request) {
	p, err := s.property(r, chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	sig, err := s.signals(r.Context(), p)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, QualityResponse{
		PropertyID: p.ID,
		Quality:    matching.QualityScore(p, sig),
		Signals:    sig,
	})
}

// signals collects the stored engagement of p plus its city benchmark,
// when the city has one.
func (s *Server) signals(ctx context.Context, p domain.Property) (matching.QualitySignals, error) {
	e, err := s.store.Engagement(ctx, p.ID)
	if err != nil {
		return matching.QualitySignals{}, err
	}
	sig := matching.QualitySignals{
		ViewCount: e.Views,
		SaveCount: e.Saves,
		AvgRating: e.AvgRating,
	}
	// Unlisted cities get no benchmark, so price fairness stays neutral.
	if market, ok := matching.MarketData(p.Location); ok {
		sig.AreaAvgPricePerSqft = market.AvgPricePerSqft
	}
	return sig, nil
}

type InvestmentResponse struct {
	PropertyID string                    `json:"property_id"`
	Investment domain.InvestmentAnalysis `json:"investment"`
}

func (s *Server) handleInvestment(w http.ResponseWriter, r *http.Request) {
	p, err := s.property(r, chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, InvestmentResponse{PropertyID: p.ID, Investment: matching.Analyze(p)})
}

type CompareRequest struct {
	PropertyIDs []string `json:"property_ids" validate:"min=2,max=4,unique,dive,required"`
}

type CompareItem struct {
	Property   domain.Property           `json:"property"`
	Quality    domain.QualityScore       `json:"quality"`
	Investment domain.InvestmentAnalysis `json:"investment"`
}

type CompareResponse struct {
	Items []CompareItem `json:"items"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "property_ids must hold 2 to 4 distinct ids")
		return
	}

	props, err := s.store.GetProperties(r.Context(), req.PropertyIDs)
	if err != nil {
		fail(w, r, err)
		return
	}

	items := make([]CompareItem, 0, len(props))
	for _, p := range props {
		sig, err := s.signals(r.Context(), p)
		if err != nil {
			fail(w, r, err)
			return
		}
		items = append(items, CompareItem{
			Property:   p,
			Quality:    matching.QualityScore(p, sig),
			Investment: matching.Analyze(p),
		})
	}
	writeJSON(w, http.StatusOK, CompareResponse{Items: items})
}

type CostsResponse struct {
	PropertyID string          `json:"property_id"`
	Request    costs.Request   `json:"request"`
	Costs      costs.Breakdown `json:"costs"`
}

// handlePropertyCosts estimates purchase costs for a stored property. The
// state defaults to the property's city and the status to its own.
func (s *Server) handlePropertyCosts(w http.ResponseWriter, r *http.Request) {
	p, err := s.property(r, chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}

	q := r.URL.Query()
	req := costs.Request{
		PropertyPrice:  float64(p.Price),
		State:          q.Get("state"),
		PropertyStatus: q.Get("status"),
		PropertyType:   q.Get("type"),
	}
	if req.State == "" {
		req.State = p.Location
	}
	if req.PropertyStatus == "" {
		req.PropertyStatus = string(p.Status)
	}

	b, err := s.costs.Estimate(r.Context(), req)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CostsResponse{PropertyID: p.ID, Request: req, Costs: b})
}

// handleHiddenCosts always calculates in process; it is the endpoint a
// remote costs.Client talks to.
func (s *Server) handleHiddenCosts(w http.ResponseWriter, r *http.Request) {
	var req costs.Request
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	b, err := costs.Calculate(req)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}
