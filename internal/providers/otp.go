package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// OTP forwards phone verification to the SMS OTP provider. The provider's
// reference token round-trips through the frontend between request and
// verify; nothing is stored here.
type OTP struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewOTP(baseURL, apiKey string) *OTP {
	return &OTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(apiKey),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (o *OTP) Request(ctx context.Context, phone string) (string, error) {
	var res struct {
		Token string `json:"token"`
	}
	if err := o.post(ctx, "/otp/request", map[string]string{"msisdn": phone}, &res); err != nil {
		return "", err
	}
	return res.Token, nil
}

func (o *OTP) Verify(ctx context.Context, token, pin string) (bool, error) {
	var res struct {
		Status string `json:"status"`
	}
	if err := o.post(ctx, "/otp/verify", map[string]string{"token": token, "pin": pin}, &res); err != nil {
		return false, err
	}
	return strings.EqualFold(res.Status, "success"), nil
}

func (o *OTP) post(ctx context.Context, path string, in, out any) error {
	if o.baseURL == "" {
		return ErrNotConfigured
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if o.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+o.apiKey)
	}

	resp, err := o.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: otp provider returned %d", ErrUpstream, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
