package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/jcallaghan/betpool/internal/api/handler"
	apimiddleware "github.com/jcallaghan/betpool/internal/api/middleware"
	"github.com/jcallaghan/betpool/internal/middleware"
	"github.com/jcallaghan/betpool/internal/services/ledger"
	"github.com/jcallaghan/betpool/internal/services/line"
	"github.com/jcallaghan/betpool/internal/services/operator"
	"github.com/jcallaghan/betpool/internal/services/render"
	"github.com/jcallaghan/betpool/internal/services/stake"
	"github.com/jcallaghan/betpool/internal/services/stats"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	LineController  *line.Controller
	Reconciler      *stake.Reconciler
	Ledger          *ledger.Service
	StatsService    *stats.Service
	RenderService   *render.Service
	OperatorChecker operator.Checker
	Registry        *prometheus.Registry

	// SignalLimiter bounds inbound signal events; nil disables limiting
	SignalLimiter *rate.Limiter
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	lineHandler := handler.NewLineHandler(cfg.LineController, cfg.RenderService)
	signalHandler := handler.NewSignalHandler(cfg.Reconciler, cfg.Ledger)
	memberHandler := handler.NewMemberHandler(cfg.StatsService)

	// Create middleware
	operatorMiddleware := apimiddleware.RequireOperator(cfg.OperatorChecker)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Line reads (no identity required)
	api.HandleFunc("/lines", lineHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/lines/{id}", lineHandler.Get).Methods(http.MethodGet)

	// Operator routes: open, lock, resolve
	operatorRoutes := api.PathPrefix("/lines").Subrouter()
	operatorRoutes.Use(apimiddleware.Identify, operatorMiddleware)
	operatorRoutes.HandleFunc("", lineHandler.Create).Methods(http.MethodPost)
	operatorRoutes.HandleFunc("/{id}/lock", lineHandler.Lock).Methods(http.MethodPost)
	operatorRoutes.HandleFunc("/{id}/resolve", lineHandler.Resolve).Methods(http.MethodPost)
	operatorRoutes.HandleFunc("/{id}/message", lineHandler.BindMessage).Methods(http.MethodPost)

	// Signal events from the rendering collaborator, rate-limited
	signals := api.PathPrefix("/lines/{id}/signals").Subrouter()
	if cfg.SignalLimiter != nil {
		signals.Use(apimiddleware.RateLimit(cfg.SignalLimiter))
	}
	signals.HandleFunc("", signalHandler.Add).Methods(http.MethodPost)
	signals.HandleFunc("", signalHandler.Remove).Methods(http.MethodDelete)

	// Member stats
	api.HandleFunc("/members/{id}/stats", memberHandler.Stats).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard", memberHandler.Leaderboard).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Prometheus metrics
	if cfg.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
