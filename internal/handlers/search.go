package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"corpussearch/internal/contextutil"
	"corpussearch/internal/query"
	"corpussearch/internal/service"
)

// SearchHandler handles HTTP requests for similarity search queries.
type SearchHandler struct {
	queryService *query.Service
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(queryService *query.Service) *SearchHandler {
	return &SearchHandler{queryService: queryService}
}

// SearchResponse is the HTTP response payload for search queries.
type SearchResponse struct {
	Results []query.SearchResult `json:"results"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP serves GET /{corpus}?query=<text>&nResults=<int>.
// Responds 400 on a missing query or unknown corpus, 500 on an embedding or
// store failure.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	corpus := chi.URLParam(r, "corpus")
	queryText := r.URL.Query().Get("query")

	if queryText == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Missing 'query' parameter"})
		return
	}

	nResults := 0
	if raw := r.URL.Query().Get("nResults"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid 'nResults' parameter"})
			return
		}
		nResults = parsed
	}

	results, err := h.queryService.Search(ctx, corpus, queryText, nResults)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.ErrorContext(ctx, "search failed", "corpus", corpus, "error", err)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	if results == nil {
		results = []query.SearchResult{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
