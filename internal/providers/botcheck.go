package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// BotCheck verifies a bot-protection widget token (Turnstile-style form
// POST). The verdict is the provider's; this client only forwards it.
type BotCheck struct {
	verifyURL string
	secret    string
	http      *http.Client
}

func NewBotCheck(verifyURL, secret string) *BotCheck {
	return &BotCheck{
		verifyURL: strings.TrimSpace(verifyURL),
		secret:    strings.TrimSpace(secret),
		http:      &http.Client{Timeout: 5 * time.Second},
	}
}

func (b *BotCheck) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	if b.verifyURL == "" {
		return false, ErrNotConfigured
	}

	form := url.Values{}
	form.Set("secret", b.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := b.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Errorf("%w: verifier returned %d", ErrUpstream, resp.StatusCode)
	}

	var res struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return false, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return res.Success, nil
}
