package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Transit fetches the BTS station list used by the meet-at-station flow.
// The payload is passed through untouched; the station schema belongs to the
// transit-data provider.
type Transit struct {
	baseURL string
	http    *http.Client
}

func NewTransit(baseURL string) *Transit {
	return &Transit{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *Transit) Stations(ctx context.Context) (json.RawMessage, error) {
	if t.baseURL == "" {
		return nil, ErrNotConfigured
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/stations", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: transit provider returned %d", ErrUpstream, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: transit provider returned invalid json", ErrUpstream)
	}
	return raw, nil
}
