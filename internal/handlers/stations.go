package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/cache"
	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/providers"
)

// Station data changes on the transit authority's timescale, not ours.
const stationsTTL = time.Hour

const stationsCacheKey = "bts:stations"

type StationsHandler struct {
	transit *providers.Transit
	cache   *cache.Cache
	logger  *slog.Logger
}

func NewStationsHandler(transit *providers.Transit, c *cache.Cache, logger *slog.Logger) *StationsHandler {
	return &StationsHandler{transit: transit, cache: c, logger: logger}
}

// List proxies the BTS station list for the meet-at-station picker.
func (h *StationsHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if raw, ok := h.cache.GetBytes(r.Context(), stationsCacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(raw)
		return
	}

	raw, err := h.transit.Stations(r.Context())
	if err != nil {
		if errors.Is(err, providers.ErrNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "transit data not configured")
			return
		}
		h.logger.Error("station fetch failed", "err", err)
		writeError(w, http.StatusBadGateway, "transit data unavailable")
		return
	}

	h.cache.SetBytes(r.Context(), stationsCacheKey, raw, stationsTTL)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(raw)
}
