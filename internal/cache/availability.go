package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Nakkasenp65/mobile-assessment-sub002/internal/availability"
)

// Availability caching: entries stay fresh for 60s (enforced by the resolver
// via the reported age) and are retained for 5 minutes, matching what the
// storefront pages assume when a user flips between dates. Keys embed the
// normalized triple, so a different (service, location, date) can never hit
// another entry.
const availabilityRetention = 5 * time.Minute

type AvailabilityCache struct {
	cache *Cache
}

type availabilityEntry struct {
	Slots      []string  `json:"slots"`
	Available  []string  `json:"available"`
	IsDaily    bool      `json:"is_daily"`
	DailyQuota int       `json:"daily_quota"`
	FetchedAt  time.Time `json:"fetched_at"`
}

func NewAvailabilityCache(cache *Cache) *AvailabilityCache {
	if cache == nil {
		return nil
	}
	return &AvailabilityCache{cache: cache}
}

func (c *AvailabilityCache) Get(ctx context.Context, key string) (availability.Result, time.Duration, bool) {
	if c == nil {
		return availability.Result{}, 0, false
	}
	raw, ok := c.cache.GetBytes(ctx, "avail:"+key)
	if !ok {
		return availability.Result{}, 0, false
	}
	var e availabilityEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return availability.Result{}, 0, false
	}

	res := availability.Result{
		Slots:      e.Slots,
		Available:  map[string]struct{}{},
		IsDaily:    e.IsDaily,
		DailyQuota: e.DailyQuota,
	}
	for _, slot := range e.Available {
		res.Available[slot] = struct{}{}
	}
	return res, time.Since(e.FetchedAt), true
}

func (c *AvailabilityCache) Set(ctx context.Context, key string, res availability.Result) {
	if c == nil {
		return
	}
	e := availabilityEntry{
		Slots:      res.Slots,
		Available:  res.AvailableSlots(),
		IsDaily:    res.IsDaily,
		DailyQuota: res.DailyQuota,
		FetchedAt:  time.Now().UTC(),
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return
	}
	c.cache.SetBytes(ctx, "avail:"+key, raw, availabilityRetention)
}
