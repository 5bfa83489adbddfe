package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/availability"
	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/upstream"
)

type stubFetcher struct {
	records []availability.Record
	err     error
	calls   int
}

func (s *stubFetcher) FetchAvailability(_ context.Context, _ availability.ServiceType, _ availability.LocationType, _ string) ([]availability.Record, error) {
	s.calls++
	return s.records, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newAvailabilityHandler(fetcher availability.Fetcher) *AvailabilityHandler {
	resolver := availability.NewResolver(fetcher, nil, testLogger(), 10, 20)
	return NewAvailabilityHandler(resolver, testLogger())
}

func TestAvailabilityGet_PerSlot(t *testing.T) {
	h := newAvailabilityHandler(&stubFetcher{records: []availability.Record{
		{Time: "14:00", Available: true},
		{Time: "15:00", Available: false},
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?serviceType=sell-now&locationType=store&date=2025-01-31", nil)
	rw := httptest.NewRecorder()
	h.Get(rw, req)

	if rw.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rw.Code, rw.Body.String())
	}
	var resp struct {
		Slots      []string `json:"slots"`
		Available  []string `json:"available"`
		IsDaily    bool     `json:"isDaily"`
		DailyQuota int      `json:"dailyQuota"`
	}
	if err := json.Unmarshal(rw.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if len(resp.Slots) != 10 || resp.Slots[0] != "10:00" {
		t.Fatalf("unexpected slots: %v", resp.Slots)
	}
	if len(resp.Available) != 1 || resp.Available[0] != "14:00" {
		t.Fatalf("unexpected available set: %v", resp.Available)
	}
	if resp.IsDaily || resp.DailyQuota != 0 {
		t.Fatalf("expected per-slot mode, got daily=%v quota=%d", resp.IsDaily, resp.DailyQuota)
	}
}

func TestAvailabilityGet_DailyQuota(t *testing.T) {
	h := newAvailabilityHandler(&stubFetcher{records: []availability.Record{
		{Available: true, Quota: 3},
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?serviceType=pawn&locationType=home&date=2025-01-31", nil)
	rw := httptest.NewRecorder()
	h.Get(rw, req)

	if rw.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rw.Code)
	}
	var resp struct {
		IsDaily    bool `json:"isDaily"`
		DailyQuota int  `json:"dailyQuota"`
	}
	if err := json.Unmarshal(rw.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if !resp.IsDaily || resp.DailyQuota != 3 {
		t.Fatalf("expected daily mode with quota 3, got daily=%v quota=%d", resp.IsDaily, resp.DailyQuota)
	}
}

func TestAvailabilityGet_MissingParamsIsNotReady(t *testing.T) {
	fetcher := &stubFetcher{}
	h := newAvailabilityHandler(fetcher)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?serviceType=sell-now", nil)
	rw := httptest.NewRecorder()
	h.Get(rw, req)

	if rw.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rw.Code)
	}
	if fetcher.calls != 0 {
		t.Fatalf("missing params must not trigger an upstream call, got %d", fetcher.calls)
	}
}

func TestAvailabilityGet_UnknownServiceRejected(t *testing.T) {
	h := newAvailabilityHandler(&stubFetcher{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?serviceType=sell-later&locationType=store&date=2025-01-31", nil)
	rw := httptest.NewRecorder()
	h.Get(rw, req)

	if rw.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rw.Code)
	}
}

func TestAvailabilityGet_UpstreamFailureIsBadGateway(t *testing.T) {
	h := newAvailabilityHandler(&stubFetcher{err: upstream.ErrUnreachable})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?serviceType=sell-now&locationType=store&date=2025-01-31", nil)
	rw := httptest.NewRecorder()
	h.Get(rw, req)

	// Upstream failure is "data unknown", never "fully booked".
	if rw.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rw.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rw.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error json: %v", err)
	}
	if resp["error"] == "" {
		t.Fatal("expected an error message in the body")
	}
}

func TestAvailabilityGet_AcceptsTypeAlias(t *testing.T) {
	h := newAvailabilityHandler(&stubFetcher{records: []availability.Record{}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?serviceType=sell-now&type=bts&date=2025-01-31", nil)
	rw := httptest.NewRecorder()
	h.Get(rw, req)

	if rw.Code != http.StatusOK {
		t.Fatalf("expected 200 with type alias, got %d", rw.Code)
	}
}
