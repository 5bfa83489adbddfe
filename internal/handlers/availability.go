package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/availability"
	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/upstream"
)

type AvailabilityHandler struct {
	resolver *availability.Resolver
	logger   *slog.Logger
}

func NewAvailabilityHandler(resolver *availability.Resolver, logger *slog.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{resolver: resolver, logger: logger}
}

type availabilityResponse struct {
	Slots      []string `json:"slots"`
	Available  []string `json:"available"`
	IsDaily    bool     `json:"isDaily"`
	DailyQuota int      `json:"dailyQuota"`
}

// Get resolves bookable slots for ?serviceType=&locationType=&date=.
//
// Missing parameters are the frontend's "not ready yet" state and come back
// as 422, never as an upstream error. Upstream failures are 502 so the page
// can render a retry affordance instead of claiming the day is fully booked.
func (h *AvailabilityHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	locationType := q.Get("locationType")
	if locationType == "" {
		locationType = q.Get("type")
	}

	res, err := h.resolver.Resolve(r.Context(), q.Get("serviceType"), locationType, q.Get("date"))
	switch {
	case err == nil:
	case errors.Is(err, availability.ErrNotReady):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case errors.Is(err, availability.ErrUnknownService),
		errors.Is(err, availability.ErrUnknownLocation),
		errors.Is(err, availability.ErrBadDate):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, upstream.ErrBadStatus),
		errors.Is(err, upstream.ErrBadPayload),
		errors.Is(err, upstream.ErrUnreachable):
		h.logger.Error("availability resolution failed", "err", err)
		writeError(w, http.StatusBadGateway, "availability data is currently unavailable")
		return
	default:
		h.logger.Error("availability resolution failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, availabilityResponse{
		Slots:      res.Slots,
		Available:  res.AvailableSlots(),
		IsDaily:    res.IsDaily,
		DailyQuota: res.DailyQuota,
	})
}
