package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrNotConfigured is returned by every provider whose upstream URL is
// absent from the environment. Handlers map it to 503 so a partially
// configured local run still starts.
var ErrNotConfigured = errors.New("provider not configured")

// ErrUpstream wraps any non-2xx or transport failure from a provider.
var ErrUpstream = errors.New("provider request failed")

// Assessor talks to the assessment backend that owns device pricing and
// appointment state.
type Assessor struct {
	baseURL string
	http    *http.Client
}

func NewAssessor(baseURL string) *Assessor {
	return &Assessor{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type EstimateRequest struct {
	Brand     string            `json:"brand"`
	Model     string            `json:"model"`
	Storage   string            `json:"storage"`
	Condition map[string]string `json:"condition"`
}

type EstimateResult struct {
	Price    int64  `json:"price"`
	Currency string `json:"currency"`
	Grade    string `json:"grade"`
}

func (a *Assessor) Estimate(ctx context.Context, req EstimateRequest) (EstimateResult, error) {
	var res EstimateResult
	err := a.postJSON(ctx, "/estimates", req, &res)
	return res, err
}

type BookingRequest struct {
	AssessmentID string `json:"assessment_id,omitempty"`
	ServiceType  string `json:"serviceType"`
	LocationType string `json:"type"`
	Date         string `json:"date"`
	Time         string `json:"time,omitempty"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Address      string `json:"address,omitempty"`
	Station      string `json:"station,omitempty"`
}

type BookingResult struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

func (a *Assessor) CreateBooking(ctx context.Context, req BookingRequest) (BookingResult, error) {
	var res BookingResult
	err := a.postJSON(ctx, "/bookings", req, &res)
	return res, err
}

func (a *Assessor) postJSON(ctx context.Context, path string, in, out any) error {
	if a.baseURL == "" {
		return ErrNotConfigured
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: assessor returned %d", ErrUpstream, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
