package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"github.com/denisok6893-rgb/property-insights/internal/costs"
	"github.com/denisok6893-rgb/property-insights/internal/matching"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Deps struct {
	Engine *matching.Engine
	Store  Store
	State  StateRepository
	// Costs defaults to the in-process calculator.
	Costs  costs.Estimator
	Logger *slog.Logger
}

type Server struct {
	engine *matching.Engine
	store  Store
	state  StateRepository
	costs  costs.Estimator
	log    *slog.Logger
}

func NewServer(d Deps) *Server {
	if d.Engine == nil {
		d.Engine = matching.NewEngine(matching.DefaultWeights())
	}
	if d.Costs == nil {
		d.Costs = costs.Local{}
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return &Server{
		engine: d.Engine,
		store:  d.Store,
		state:  d.State,
		costs:  d.Costs,
		log:    d.Logger,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(s.log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{traceHeader},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Post("/hidden-costs-calculator", s.handleHiddenCosts)
	r.Post("/recommendations", s.handleRecommendations)
	r.Post("/compare", s.handleCompare)

	r.Route("/properties", func(r chi.Router) {
		r.Get("/", s.handlePropertiesList)
		r.Post("/", s.handlePropertiesCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handlePropertyGet)
			r.Delete("/", s.handlePropertyDelete)
			r.Get("/quality", s.handleQuality)
			r.Get("/investment", s.handleInvestment)
			r.Get("/costs", s.handlePropertyCosts)
			r.Get("/reviews", s.handleReviewsList)
			r.Post("/reviews", s.handleReviewsCreate)
		})
	})

	r.Route("/favorites", func(r chi.Router) {
		r.Get("/", s.handleFavoritesList)
		r.Post("/", s.handleFavoritesAdd)
		r.Delete("/", s.handleFavoritesRemove)
	})

	r.Route("/alerts", func(r chi.Router) {
		r.Get("/", s.handleAlertsList)
		r.Post("/", s.handleAlertsCreate)
		r.Delete("/{id}", s.handleAlertsDelete)
		r.Get("/{id}/matches", s.handleAlertMatches)
	})

	r.Route("/state/{key}", func(r chi.Router) {
		r.Get("/", s.handleStateGet)
		r.Put("/", s.handleStatePut)
		r.Delete("/", s.handleStateDelete)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
