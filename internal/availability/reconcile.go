package availability

import (
	"time"
)

// Record is one availability entry from the assessment backend. Per-slot
// records carry a time; daily-quota services omit it and report a single
// quota for the whole day.
type Record struct {
	Date      string `json:"date,omitempty"`
	Time      string `json:"time,omitempty"`
	Available bool   `json:"available"`
	Quota     int    `json:"quota,omitempty"`
}

// Result is the resolved view handed to the frontend.
type Result struct {
	Slots      []string
	Available  map[string]struct{}
	IsDaily    bool
	DailyQuota int
}

// AvailableSlots returns the bookable subset of Slots, in slot order.
func (r Result) AvailableSlots() []string {
	out := make([]string, 0, len(r.Available))
	for _, slot := range r.Slots {
		if _, ok := r.Available[slot]; ok {
			out = append(out, slot)
		}
	}
	return out
}

// Upstream times arrive as wall-clock labels or full timestamps. Slot labels
// are Bangkok wall-clock, so timestamp comparisons are pinned there rather
// than to the deployment region's zone.
var bangkok = loadBangkok()

func loadBangkok() *time.Location {
	loc, err := time.LoadLocation("Asia/Bangkok")
	if err != nil {
		return time.FixedZone("ICT", 7*60*60)
	}
	return loc
}

// Reconcile projects upstream records onto the candidate slot list.
//
// When every record omits a time the service runs in daily-quota mode: the
// whole day is one unit, IsDaily is set and DailyQuota carries the remaining
// count (zero when exhausted or absent). Otherwise each timed record marks
// its matching candidate slot; records whose time falls outside the window
// are dropped, so the available set is always a subset of Slots.
func Reconcile(slots []string, records []Record) Result {
	res := Result{
		Slots:     slots,
		Available: map[string]struct{}{},
	}
	if len(records) == 0 {
		return res
	}

	daily := true
	for _, rec := range records {
		if rec.Time != "" {
			daily = false
			break
		}
	}
	if daily {
		res.IsDaily = true
		for _, rec := range records {
			if rec.Available {
				res.DailyQuota += rec.Quota
			}
		}
		return res
	}

	candidates := map[string]struct{}{}
	for _, slot := range slots {
		candidates[slot] = struct{}{}
	}
	for _, rec := range records {
		if rec.Time == "" || !rec.Available {
			continue
		}
		slot, ok := projectSlot(rec.Time)
		if !ok {
			continue
		}
		if _, ok := candidates[slot]; ok {
			res.Available[slot] = struct{}{}
		}
	}
	return res
}

// projectSlot reduces an upstream time value to its HH:00 slot label.
func projectSlot(raw string) (string, bool) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("15") + ":00", true
		}
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(bangkok).Format("15") + ":00", true
	}
	return "", false
}
