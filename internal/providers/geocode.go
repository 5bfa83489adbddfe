package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Geocode resolves coordinates to an address for the home-service picker.
type Geocode struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewGeocode(baseURL, apiKey string) *Geocode {
	return &Geocode{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(apiKey),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *Geocode) Reverse(ctx context.Context, lat, lng string) (json.RawMessage, error) {
	if g.baseURL == "" {
		return nil, ErrNotConfigured
	}

	q := url.Values{}
	q.Set("lat", lat)
	q.Set("lng", lng)
	if g.apiKey != "" {
		q.Set("key", g.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: geocoder returned %d", ErrUpstream, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: geocoder returned invalid json", ErrUpstream)
	}
	return raw, nil
}
