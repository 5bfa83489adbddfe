package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/providers"
)

type OTPHandler struct {
	otp    *providers.OTP
	logger *slog.Logger
}

func NewOTPHandler(otp *providers.OTP, logger *slog.Logger) *OTPHandler {
	return &OTPHandler{otp: otp, logger: logger}
}

// Thai mobile numbers: leading zero plus nine digits.
var phonePattern = regexp.MustCompile(`^0\d{9}$`)

func (h *OTPHandler) Request(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.Phone = strings.TrimSpace(req.Phone)
	if !phonePattern.MatchString(req.Phone) {
		writeError(w, http.StatusBadRequest, "invalid phone number")
		return
	}

	token, err := h.otp.Request(r.Context(), req.Phone)
	if err != nil {
		h.otpError(w, err, "otp request failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *OTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Token string `json:"token"`
		Pin   string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.Token = strings.TrimSpace(req.Token)
	req.Pin = strings.TrimSpace(req.Pin)
	if req.Token == "" || req.Pin == "" {
		writeError(w, http.StatusBadRequest, "token and pin are required")
		return
	}

	ok, err := h.otp.Verify(r.Context(), req.Token, req.Pin)
	if err != nil {
		h.otpError(w, err, "otp verify failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"verified": ok})
}

func (h *OTPHandler) otpError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, providers.ErrNotConfigured) {
		writeError(w, http.StatusServiceUnavailable, "otp provider not configured")
		return
	}
	h.logger.Error(msg, "err", err)
	writeError(w, http.StatusBadGateway, "otp provider unavailable")
}
