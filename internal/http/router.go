package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"corpussearch/internal/handlers"
	"corpussearch/internal/query"
	"corpussearch/internal/ratelimit"
	"corpussearch/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	QueryService *query.Service
	VectorStore  vectorstore.VectorStore
	Collections  []string
	Limiter      *ratelimit.Limiter
}

// NewRouter creates the query gateway router. Search routes share one
// process-wide rate limiter; the health endpoint is exempt.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	healthHandler := handlers.NewHealthHandler(deps.VectorStore, deps.Collections)
	r.Method(http.MethodGet, "/healthz", healthHandler)

	searchHandler := handlers.NewSearchHandler(deps.QueryService)
	r.Group(func(r chi.Router) {
		r.Use(RateLimit(deps.Limiter))
		r.Method(http.MethodGet, "/{corpus}", searchHandler)
	})

	return r
}
