// internal/api/routes.go
package api

import (
	"net/http"
	"strings"
)

// RegisterRoutes wires the API endpoints onto the mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /questions/random", h.randomQuestion)
	mux.HandleFunc("GET /health", h.health)
}

// randomQuestion godoc
// @Summary      Get one random question
// @Description  Samples one question uniformly at random, excluding previously seen ids.
// @Produce      json
// @Param        exclude  query  string  false  "comma-separated question ids to exclude"
// @Success      200  {object}  question.Question
// @Success      204  "no eligible question remains"
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /questions/random [get]
func (h *Handler) randomQuestion(w http.ResponseWriter, r *http.Request) {
	var exclude []string
	if raw := strings.TrimSpace(r.URL.Query().Get("exclude")); raw != "" {
		exclude = strings.Split(raw, ",")
	}

	q, err := h.store.RandomQuestion(r.Context(), exclude)
	if h.respondError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, q)
}

// health godoc
// @Summary      Liveness probe
// @Success      200  {object}  map[string]bool
// @Router       /health [get]
func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
