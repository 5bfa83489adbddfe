package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/payments"
)

type PaymentHandler struct {
	links  *payments.Service
	logger *slog.Logger
}

func NewPaymentHandler(links *payments.Service, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{links: links, logger: logger}
}

type paymentLinkRequest struct {
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
}

// CreateLink mints a hosted checkout URL for an agreed amount, in the
// currency's smallest unit (satang for THB).
func (h *PaymentHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req paymentLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.Description = strings.TrimSpace(req.Description)
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	if req.Description == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}

	link, err := h.links.CreateLink(r.Context(), req.Amount, req.Description, strings.TrimSpace(req.Phone))
	if err != nil {
		if errors.Is(err, payments.ErrNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "payments not configured")
			return
		}
		h.logger.Error("payment link creation failed", "err", err)
		writeError(w, http.StatusBadGateway, "payment gateway unavailable")
		return
	}

	writeJSON(w, http.StatusCreated, link)
}
