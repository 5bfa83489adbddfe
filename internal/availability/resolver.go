package availability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// ErrNotReady means one of the three key parameters is still missing. The
// frontend polls as the user fills the form, so this is a normal state and
// no upstream request is made.
var ErrNotReady = errors.New("service, location and date are all required")

// ErrBadDate rejects anything that is not a date-only YYYY-MM-DD value.
var ErrBadDate = errors.New("invalid date, want YYYY-MM-DD")

// Fetcher reads availability records from the assessment backend.
type Fetcher interface {
	FetchAvailability(ctx context.Context, service ServiceType, location LocationType, date string) ([]Record, error)
}

// ResultCache is a short-lived read-through cache keyed by the normalized
// (service, location, date) triple. Implementations report the entry age so
// the resolver can enforce its own freshness window.
type ResultCache interface {
	Get(ctx context.Context, key string) (Result, time.Duration, bool)
	Set(ctx context.Context, key string, res Result)
}

// Resolver turns a (serviceType, locationType, date) triple into the
// bookable slot view. Each call is a stateless read; a fresh cache entry is
// a latency optimization, never an error-recovery path.
type Resolver struct {
	fetcher   Fetcher
	cache     ResultCache
	logger    *slog.Logger
	openHour  int
	closeHour int
	freshFor  time.Duration
}

func NewResolver(fetcher Fetcher, cache ResultCache, logger *slog.Logger, openHour, closeHour int) *Resolver {
	return &Resolver{
		fetcher:   fetcher,
		cache:     cache,
		logger:    logger,
		openHour:  openHour,
		closeHour: closeHour,
		freshFor:  60 * time.Second,
	}
}

func (r *Resolver) Resolve(ctx context.Context, rawService, rawLocation, date string) (Result, error) {
	rawService = strings.TrimSpace(rawService)
	rawLocation = strings.TrimSpace(rawLocation)
	date = strings.TrimSpace(date)
	if rawService == "" || rawLocation == "" || date == "" {
		return Result{}, ErrNotReady
	}

	service, err := NormalizeService(rawService)
	if err != nil {
		return Result{}, err
	}
	location, err := NormalizeLocation(rawLocation)
	if err != nil {
		return Result{}, err
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return Result{}, fmt.Errorf("%w: %q", ErrBadDate, date)
	}

	key := string(service) + "|" + string(location) + "|" + date
	if r.cache != nil {
		if cached, age, ok := r.cache.Get(ctx, key); ok && age <= r.freshFor {
			return cached, nil
		}
	}

	records, err := r.fetcher.FetchAvailability(ctx, service, location, date)
	if err != nil {
		return Result{}, err
	}

	res := Reconcile(GenerateSlots(r.openHour, r.closeHour), records)
	if r.cache != nil {
		r.cache.Set(ctx, key, res)
	}
	return res, nil
}
