// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/orbit/internal/app"
)

// OrbitHandler handles orbit computation requests.
type OrbitHandler struct {
	deps Dependencies
}

// NewOrbitHandler creates a new orbit handler.
func NewOrbitHandler(deps Dependencies) *OrbitHandler {
	return &OrbitHandler{deps: deps}
}

// HandleGetOrbit handles GET /orbit/{screen_name} requests. The layer
// request comes from the optional `layers` query parameter as a
// comma-separated list of sizes; missing means the service default.
func (h *OrbitHandler) HandleGetOrbit(w http.ResponseWriter, r *http.Request) {
	const op = "api.orbit"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	screenName := strings.TrimPrefix(r.URL.Path, "/orbit/")
	if screenName == "" || strings.Contains(screenName, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	layers, err := parseLayers(r.URL.Query().Get("layers"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	orbit, err := h.deps.Orbit(r.Context(), screenName, layers)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrBadSubject),
			errors.Is(err, app.ErrBadLayers),
			errors.Is(err, app.ErrLayerBudget):
			writeError(w, http.StatusBadRequest, "bad_request", err)
		case isNotFound(err):
			writeError(w, http.StatusNotFound, "not_found", err)
		default:
			writeError(w, http.StatusBadGateway, "upstream_error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, orbit)
}

// parseLayers turns "8,15,26" into []int{8,15,26}. Empty input means
// no explicit layer request.
func parseLayers(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	sizes := make([]int, 0, len(parts))
	for _, part := range parts {
		size, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.New("layers must be a comma-separated list of integers")
		}
		sizes = append(sizes, size)
	}
	return sizes, nil
}
