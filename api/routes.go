package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/garnizeh/portfolio/internal/config"
	"github.com/garnizeh/portfolio/internal/db"
	"github.com/garnizeh/portfolio/internal/repository/sqldb"
	"github.com/garnizeh/portfolio/pkg/repository"
)

// Repos are the data sources behind the routes.
type Repos struct {
	Portfolio repository.PortfolioRepo
	Videos    repository.VideoRepo
	Probe     repository.ProbeRepo
}

// SetupRoutes wires the API over a connection pool.
func SetupRoutes(cfg *config.Config, version, buildTime string, pool *db.Pool) http.Handler {
	repo := sqldb.New(pool, logger)
	return NewRouter(cfg, version, buildTime, Repos{Portfolio: repo, Videos: repo, Probe: repo})
}

func NewRouter(cfg *config.Config, version, buildTime string, repos Repos) http.Handler {
	r := mux.NewRouter()

	// Middleware chain for matched routes; metrics sits outside recovery
	// so recovered panics are counted as 500s
	r.Use(MetricsMiddleware)
	r.Use(RecoveryMiddleware)

	// Create handlers
	systemHandler := &SystemHandler{}
	portfolioHandler := NewPortfolioHandler(repos.Portfolio, repos.Videos, repos.Probe)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	apiRoutes := r.PathPrefix("/api").Subrouter()
	apiRoutes.HandleFunc("/test", portfolioHandler.Test).Methods("GET")
	apiRoutes.HandleFunc("/portfolio", portfolioHandler.ListPortfolio).Methods("GET")
	apiRoutes.HandleFunc("/videos", portfolioHandler.ListVideos).Methods("GET")

	// Front-end build, registered last so it never shadows the API
	if cfg != nil && cfg.PublicDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.PublicDir))).Methods("GET", "HEAD")
	}

	// Preflight requests never reach a GET route, so CORS wraps the router.
	return RequestIDMiddleware(LoggingMiddleware(CORSMiddleware(r)))
}
