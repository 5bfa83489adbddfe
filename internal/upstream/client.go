package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/availability"
)

// The three failure classes the frontend distinguishes. None of them is ever
// collapsed into "no slots available" — data unknown and fully booked are
// materially different statements to a customer.
var (
	ErrUnreachable = errors.New("availability upstream unreachable")
	ErrBadStatus   = errors.New("availability upstream returned an error status")
	ErrBadPayload  = errors.New("availability upstream returned a malformed payload")
)

const (
	requestTimeout = 8 * time.Second
	retryBackoff   = 200 * time.Millisecond
)

// Client reads availability records from the assessment backend. One retry
// on network failure or 5xx; client errors and malformed payloads fail
// immediately.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   requestTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

func (c *Client) FetchAvailability(ctx context.Context, service availability.ServiceType, location availability.LocationType, date string) ([]availability.Record, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: not configured", ErrUnreachable)
	}

	q := url.Values{}
	q.Set("serviceType", string(service))
	q.Set("type", string(location))
	q.Set("date", date)
	endpoint := c.baseURL + "/availability?" + q.Encode()

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrUnreachable, ctx.Err())
			case <-time.After(retryBackoff):
			}
			c.logger.Warn("retrying availability fetch", "err", lastErr)
		}

		records, retriable, err := c.fetchOnce(ctx, endpoint)
		if err == nil {
			return records, nil
		}
		if !retriable {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (c *Client) fetchOnce(ctx context.Context, endpoint string) ([]availability.Record, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, true, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, false, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	var records []availability.Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return records, false, nil
}
