package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/providers"
)

type GeocodeHandler struct {
	geocode *providers.Geocode
	logger  *slog.Logger
}

func NewGeocodeHandler(geocode *providers.Geocode, logger *slog.Logger) *GeocodeHandler {
	return &GeocodeHandler{geocode: geocode, logger: logger}
}

// Reverse proxies reverse geocoding for ?lat=&lng=.
func (h *GeocodeHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	lat := strings.TrimSpace(r.URL.Query().Get("lat"))
	lng := strings.TrimSpace(r.URL.Query().Get("lng"))
	if !validCoord(lat, 90) || !validCoord(lng, 180) {
		writeError(w, http.StatusBadRequest, "lat and lng must be valid coordinates")
		return
	}

	raw, err := h.geocode.Reverse(r.Context(), lat, lng)
	if err != nil {
		if errors.Is(err, providers.ErrNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "geocoding not configured")
			return
		}
		h.logger.Error("reverse geocode failed", "err", err)
		writeError(w, http.StatusBadGateway, "geocoding unavailable")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(raw)
}

func validCoord(raw string, bound float64) bool {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return false
	}
	return v >= -bound && v <= bound
}
