// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nclex-prep/backend/internal/question"
	"github.com/nclex-prep/backend/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	store  store.Store
	logger *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(s store.Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:  s,
		logger: logger,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError maps store errors onto the wire contract: exhaustion is an
// empty success (204), a malformed sample is 404, everything else is a
// transient 500. Returns true if err was non-nil and a response was written.
func (h *Handler) respondError(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, question.ErrExhausted):
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, store.ErrMalformed):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "No questions found"})
	default:
		h.logger.Error("store error", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to fetch question"})
	}
	return true
}
