package api

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Eversmile12/ERC-8004-explorer/internal/api/middleware"
	"github.com/Eversmile12/ERC-8004-explorer/internal/handlers"
	"github.com/Eversmile12/ERC-8004-explorer/web"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(logger zerolog.Logger, h *handlers.Handler) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	// Standard middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	// CORS - the explorer is read-only, GET is all there is
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Metrics endpoint (for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// Static assets, embedded at build time
	staticFS, _ := fs.Sub(web.FS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Pages
	r.Get("/", h.ListAgents)
	r.Get("/agent/{id}", h.GetAgent)

	// Operational
	r.Get("/health", h.Health)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		h.NotFoundPage(w)
	})

	return r
}
