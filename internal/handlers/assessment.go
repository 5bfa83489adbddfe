package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/events"
	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/providers"
	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/storage"
)

type AssessmentHandler struct {
	assessor *providers.Assessor
	repo     *storage.AssessmentRepository
	events   *events.Publisher
	logger   *slog.Logger
}

func NewAssessmentHandler(assessor *providers.Assessor, repo *storage.AssessmentRepository, publisher *events.Publisher, logger *slog.Logger) *AssessmentHandler {
	return &AssessmentHandler{assessor: assessor, repo: repo, events: publisher, logger: logger}
}

type estimateRequest struct {
	Brand     string            `json:"brand"`
	Model     string            `json:"model"`
	Storage   string            `json:"storage"`
	Condition map[string]string `json:"condition"`
}

type estimateResponse struct {
	ID       string `json:"id,omitempty"`
	Price    int64  `json:"price"`
	Currency string `json:"currency"`
	Grade    string `json:"grade"`
}

// Estimate quotes a device through the assessment backend and keeps the
// resulting record so the booking and payment pages can look it up later.
func (h *AssessmentHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req estimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.Brand = strings.TrimSpace(req.Brand)
	req.Model = strings.TrimSpace(req.Model)
	req.Storage = strings.TrimSpace(req.Storage)
	if req.Brand == "" || req.Model == "" {
		writeError(w, http.StatusBadRequest, "brand and model are required")
		return
	}

	quote, err := h.assessor.Estimate(r.Context(), providers.EstimateRequest{
		Brand:     req.Brand,
		Model:     req.Model,
		Storage:   req.Storage,
		Condition: req.Condition,
	})
	if err != nil {
		if errors.Is(err, providers.ErrNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "assessment backend not configured")
			return
		}
		h.logger.Error("estimate failed", "brand", req.Brand, "model", req.Model, "err", err)
		writeError(w, http.StatusBadGateway, "assessment backend unavailable")
		return
	}

	resp := estimateResponse{
		Price:    quote.Price,
		Currency: quote.Currency,
		Grade:    quote.Grade,
	}
	if h.repo != nil {
		id, err := h.repo.Insert(r.Context(), &storage.Assessment{
			Brand:     req.Brand,
			Model:     req.Model,
			Storage:   req.Storage,
			Condition: req.Condition,
			Price:     quote.Price,
			Currency:  quote.Currency,
			Grade:     quote.Grade,
		})
		if err != nil {
			// The quote itself is still good; the customer just loses the
			// shareable record link.
			h.logger.Error("assessment store failed", "err", err)
		} else {
			resp.ID = id
		}
	}

	h.events.Publish(r.Context(), "valuation.completed.v1", map[string]any{
		"assessment_id": resp.ID,
		"brand":         req.Brand,
		"model":         req.Model,
		"price":         quote.Price,
		"currency":      quote.Currency,
		"quoted_at":     time.Now().UTC().Format(time.RFC3339),
	})

	writeJSON(w, http.StatusOK, resp)
}

// Get serves a stored assessment by id (path /api/v1/assessments/{id}).
func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.repo == nil {
		writeError(w, http.StatusServiceUnavailable, "assessment storage not configured")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/assessments/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "invalid assessment id")
		return
	}

	a, err := h.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "assessment not found")
			return
		}
		h.logger.Error("assessment lookup failed", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":         a.ID,
		"brand":      a.Brand,
		"model":      a.Model,
		"storage":    a.Storage,
		"condition":  a.Condition,
		"price":      a.Price,
		"currency":   a.Currency,
		"grade":      a.Grade,
		"created_at": a.CreatedAt.UTC().Format(time.RFC3339),
	})
}
