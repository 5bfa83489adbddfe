package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/availability"
	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/events"
	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/providers"
)

type BookingHandler struct {
	assessor  *providers.Assessor
	events    *events.Publisher
	logger    *slog.Logger
	openHour  int
	closeHour int
}

func NewBookingHandler(assessor *providers.Assessor, publisher *events.Publisher, logger *slog.Logger, openHour, closeHour int) *BookingHandler {
	return &BookingHandler{
		assessor:  assessor,
		events:    publisher,
		logger:    logger,
		openHour:  openHour,
		closeHour: closeHour,
	}
}

type createBookingRequest struct {
	AssessmentID string `json:"assessment_id"`
	ServiceType  string `json:"serviceType"`
	LocationType string `json:"locationType"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Station      string `json:"station"`
}

// Create forwards a booking to the assessment backend. The chosen time must
// be one of the candidate slots for the operating window; daily-quota
// services book without a time.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	if req.Name == "" || req.Phone == "" || req.Date == "" {
		writeError(w, http.StatusBadRequest, "name, phone and date are required")
		return
	}

	service, err := availability.NormalizeService(req.ServiceType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	location, err := availability.NormalizeLocation(req.LocationType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		return
	}
	if req.Time != "" && !slotInWindow(req.Time, h.openHour, h.closeHour) {
		writeError(w, http.StatusBadRequest, "time is outside the booking window")
		return
	}
	if location == availability.LocationHome && strings.TrimSpace(req.Address) == "" {
		writeError(w, http.StatusBadRequest, "address is required for home service")
		return
	}
	if location == availability.LocationBTS && strings.TrimSpace(req.Station) == "" {
		writeError(w, http.StatusBadRequest, "station is required for bts meetups")
		return
	}

	res, err := h.assessor.CreateBooking(r.Context(), providers.BookingRequest{
		AssessmentID: strings.TrimSpace(req.AssessmentID),
		ServiceType:  string(service),
		LocationType: string(location),
		Date:         req.Date,
		Time:         req.Time,
		Name:         req.Name,
		Phone:        req.Phone,
		Address:      strings.TrimSpace(req.Address),
		Station:      strings.TrimSpace(req.Station),
	})
	if err != nil {
		if errors.Is(err, providers.ErrNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "booking backend not configured")
			return
		}
		h.logger.Error("booking forward failed", "err", err)
		writeError(w, http.StatusBadGateway, "booking backend unavailable")
		return
	}

	h.events.Publish(r.Context(), "booking.requested.v1", map[string]any{
		"booking_id":    res.BookingID,
		"assessment_id": req.AssessmentID,
		"service_type":  string(service),
		"location_type": string(location),
		"date":          req.Date,
		"time":          req.Time,
	})

	writeJSON(w, http.StatusCreated, res)
}

func slotInWindow(slot string, openHour, closeHour int) bool {
	for _, candidate := range availability.GenerateSlots(openHour, closeHour) {
		if candidate == slot {
			return true
		}
	}
	return false
}
