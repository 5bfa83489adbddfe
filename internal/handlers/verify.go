package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/providers"
)

type VerifyHandler struct {
	botcheck *providers.BotCheck
	logger   *slog.Logger
}

func NewVerifyHandler(botcheck *providers.BotCheck, logger *slog.Logger) *VerifyHandler {
	return &VerifyHandler{botcheck: botcheck, logger: logger}
}

// Check forwards a bot-protection widget token for verification.
func (h *VerifyHandler) Check(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.Token = strings.TrimSpace(req.Token)
	if req.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	ok, err := h.botcheck.Verify(r.Context(), req.Token, clientIP(r))
	if err != nil {
		if errors.Is(err, providers.ErrNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "bot verification not configured")
			return
		}
		h.logger.Error("bot verification failed", "err", err)
		writeError(w, http.StatusBadGateway, "bot verification unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": ok})
}

func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		parts := strings.Split(ip, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
