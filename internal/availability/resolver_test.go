package availability

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

type fakeFetcher struct {
	records []Record
	err     error
	calls   int
}

func (f *fakeFetcher) FetchAvailability(_ context.Context, _ ServiceType, _ LocationType, _ string) ([]Record, error) {
	f.calls++
	return f.records, f.err
}

type fakeCache struct {
	entries map[string]Result
	ages    map[string]time.Duration
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]Result{}, ages: map[string]time.Duration{}}
}

func (c *fakeCache) Get(_ context.Context, key string) (Result, time.Duration, bool) {
	res, ok := c.entries[key]
	return res, c.ages[key], ok
}

func (c *fakeCache) Set(_ context.Context, key string, res Result) {
	c.sets++
	c.entries[key] = res
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestResolver_MissingInputIsIdle(t *testing.T) {
	fetcher := &fakeFetcher{}
	r := NewResolver(fetcher, nil, discardLogger(), 10, 20)

	for _, in := range [][3]string{
		{"", "store", "2025-01-31"},
		{"sell-now", "", "2025-01-31"},
		{"sell-now", "store", ""},
		{"", "", ""},
	} {
		_, err := r.Resolve(context.Background(), in[0], in[1], in[2])
		if !errors.Is(err, ErrNotReady) {
			t.Fatalf("inputs %v: expected ErrNotReady, got %v", in, err)
		}
	}
	if fetcher.calls != 0 {
		t.Fatalf("no upstream request may be issued while inputs are missing, got %d calls", fetcher.calls)
	}
}

func TestResolver_RejectsUnknownVocabulary(t *testing.T) {
	fetcher := &fakeFetcher{}
	r := NewResolver(fetcher, nil, discardLogger(), 10, 20)

	if _, err := r.Resolve(context.Background(), "sell-later", "store", "2025-01-31"); !errors.Is(err, ErrUnknownService) {
		t.Fatalf("expected ErrUnknownService, got %v", err)
	}
	if _, err := r.Resolve(context.Background(), "sell-now", "rooftop", "2025-01-31"); !errors.Is(err, ErrUnknownLocation) {
		t.Fatalf("expected ErrUnknownLocation, got %v", err)
	}
	if _, err := r.Resolve(context.Background(), "sell-now", "store", "31/01/2025"); !errors.Is(err, ErrBadDate) {
		t.Fatalf("expected ErrBadDate, got %v", err)
	}
	if fetcher.calls != 0 {
		t.Fatalf("rejected inputs must not reach upstream, got %d calls", fetcher.calls)
	}
}

func TestResolver_ResolvesAndCaches(t *testing.T) {
	fetcher := &fakeFetcher{records: []Record{{Time: "14:00", Available: true}}}
	c := newFakeCache()
	r := NewResolver(fetcher, c, discardLogger(), 10, 20)

	res, err := r.Resolve(context.Background(), "sell-now", "store", "2025-01-31")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(res.Slots) != 10 {
		t.Fatalf("expected 10 slots, got %d", len(res.Slots))
	}
	if _, ok := res.Available["14:00"]; !ok {
		t.Fatal("expected 14:00 available")
	}
	if c.sets != 1 {
		t.Fatalf("expected one cache write, got %d", c.sets)
	}

	// Fresh entry: second call must not hit upstream.
	if _, err := r.Resolve(context.Background(), "sell-now", "store", "2025-01-31"); err != nil {
		t.Fatalf("second Resolve failed: %v", err)
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected cached result, got %d upstream calls", fetcher.calls)
	}
}

func TestResolver_StaleCacheRefetches(t *testing.T) {
	fetcher := &fakeFetcher{records: []Record{{Time: "11:00", Available: true}}}
	c := newFakeCache()
	key := "SELL_NOW|STORE|2025-01-31"
	c.entries[key] = Result{Slots: GenerateSlots(10, 20)}
	c.ages[key] = 2 * time.Minute

	r := NewResolver(fetcher, c, discardLogger(), 10, 20)
	res, err := r.Resolve(context.Background(), "sell-now", "store", "2025-01-31")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if fetcher.calls != 1 {
		t.Fatalf("stale cache entry must refetch, got %d calls", fetcher.calls)
	}
	if _, ok := res.Available["11:00"]; !ok {
		t.Fatal("expected refetched availability, not the stale entry")
	}
}

func TestResolver_KeySeparation(t *testing.T) {
	fetcher := &fakeFetcher{records: []Record{{Time: "14:00", Available: true}}}
	c := newFakeCache()
	r := NewResolver(fetcher, c, discardLogger(), 10, 20)

	if _, err := r.Resolve(context.Background(), "sell-now", "store", "2025-01-31"); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	// Different date: must not reuse the first key's entry.
	if _, err := r.Resolve(context.Background(), "sell-now", "store", "2025-02-01"); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if fetcher.calls != 2 {
		t.Fatalf("expected 2 upstream calls for 2 distinct keys, got %d", fetcher.calls)
	}
}

func TestResolver_UpstreamErrorPropagates(t *testing.T) {
	wantErr := errors.New("boom")
	fetcher := &fakeFetcher{err: wantErr}
	r := NewResolver(fetcher, nil, discardLogger(), 10, 20)

	_, err := r.Resolve(context.Background(), "sell-now", "store", "2025-01-31")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected upstream error to propagate, got %v", err)
	}
}
