package handlers

import (
	"context"
	"net/http"
	"time"

	"corpussearch/internal/contextutil"
	"corpussearch/internal/vectorstore"
)

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	vectorStore        vectorstore.VectorStore
	collections        []string
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler checking the given collections.
func NewHealthHandler(vectorStore vectorstore.VectorStore, collections []string) *HealthHandler {
	return &HealthHandler{
		vectorStore:        vectorStore,
		collections:        collections,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// ServeHTTP reports whether every configured collection is reachable.
// Returns 200 when healthy, 503 otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string, len(h.collections))
	status := "healthy"
	httpStatus := http.StatusOK

	for _, collection := range h.collections {
		exists, err := h.vectorStore.CollectionExists(checkCtx, collection)
		if err != nil || !exists {
			if err != nil {
				logger.WarnContext(ctx, "collection health check failed", "collection", collection, "error", err)
			}
			checks[collection] = "error"
			status = "unhealthy"
			httpStatus = http.StatusServiceUnavailable
			continue
		}
		checks[collection] = "ok"
	}

	writeJSON(w, httpStatus, HealthResponse{Status: status, Checks: checks})
}
