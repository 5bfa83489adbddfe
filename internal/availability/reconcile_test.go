package availability

import "testing"

func TestReconcile_PerSlot(t *testing.T) {
	slots := GenerateSlots(10, 20)
	res := Reconcile(slots, []Record{
		{Date: "2025-01-31", Time: "14:00", Available: true},
		{Date: "2025-01-31", Time: "15:00", Available: false},
	})

	if res.IsDaily {
		t.Fatal("expected per-slot mode")
	}
	if len(res.Slots) != 10 {
		t.Fatalf("expected 10 candidate slots, got %d", len(res.Slots))
	}
	if len(res.Available) != 1 {
		t.Fatalf("expected exactly one available slot, got %d", len(res.Available))
	}
	if _, ok := res.Available["14:00"]; !ok {
		t.Fatal("expected 14:00 to be available")
	}
}

func TestReconcile_AvailableIsSubsetOfSlots(t *testing.T) {
	slots := GenerateSlots(10, 20)
	res := Reconcile(slots, []Record{
		{Time: "09:00", Available: true}, // before opening
		{Time: "20:00", Available: true}, // at closing, not a candidate
		{Time: "23:30", Available: true},
		{Time: "12:00", Available: true},
		{Time: "garbage", Available: true},
	})

	candidates := map[string]struct{}{}
	for _, slot := range res.Slots {
		candidates[slot] = struct{}{}
	}
	for slot := range res.Available {
		if _, ok := candidates[slot]; !ok {
			t.Fatalf("available slot %s not in candidate list", slot)
		}
	}
	if len(res.Available) != 1 {
		t.Fatalf("expected only 12:00 to survive, got %d slots", len(res.Available))
	}
}

func TestReconcile_MatchedSubset(t *testing.T) {
	slots := GenerateSlots(10, 20)
	res := Reconcile(slots, []Record{
		{Time: "10:00", Available: true},
		{Time: "13:00", Available: true},
		{Time: "19:00", Available: true},
	})
	want := []string{"10:00", "13:00", "19:00"}
	got := res.AvailableSlots()
	if len(got) != len(want) {
		t.Fatalf("expected %d available slots, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("available[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestReconcile_DailyMode(t *testing.T) {
	slots := GenerateSlots(10, 20)
	res := Reconcile(slots, []Record{
		{Date: "2025-01-31", Available: true, Quota: 3},
	})
	if !res.IsDaily {
		t.Fatal("expected daily mode when no record carries a time")
	}
	if res.DailyQuota != 3 {
		t.Fatalf("expected quota 3, got %d", res.DailyQuota)
	}
	if len(res.Available) != 0 {
		t.Fatalf("daily mode should not mark per-slot availability, got %d", len(res.Available))
	}
}

func TestReconcile_DailyModeExhausted(t *testing.T) {
	res := Reconcile(GenerateSlots(10, 20), []Record{
		{Date: "2025-01-31", Available: false, Quota: 5},
	})
	if !res.IsDaily {
		t.Fatal("expected daily mode")
	}
	if res.DailyQuota != 0 {
		t.Fatalf("expected quota 0 when day is unavailable, got %d", res.DailyQuota)
	}
}

func TestReconcile_EmptyResponse(t *testing.T) {
	res := Reconcile(GenerateSlots(10, 20), nil)
	if res.IsDaily {
		t.Fatal("empty response must not flip into daily mode")
	}
	if len(res.Available) != 0 {
		t.Fatalf("expected no available slots, got %d", len(res.Available))
	}
	if len(res.Slots) != 10 {
		t.Fatalf("candidate list must still be generated, got %d slots", len(res.Slots))
	}
}

func TestReconcile_TimestampProjection(t *testing.T) {
	// 07:00 UTC is 14:00 in Bangkok.
	res := Reconcile(GenerateSlots(10, 20), []Record{
		{Time: "2025-01-31T07:00:00Z", Available: true},
	})
	if _, ok := res.Available["14:00"]; !ok {
		t.Fatalf("expected UTC timestamp to project onto the 14:00 Bangkok slot, got %v", res.AvailableSlots())
	}
}

func TestReconcile_MinutePrecisionRoundsDown(t *testing.T) {
	res := Reconcile(GenerateSlots(10, 20), []Record{
		{Time: "14:30", Available: true},
	})
	if _, ok := res.Available["14:00"]; !ok {
		t.Fatalf("expected 14:30 to project onto 14:00, got %v", res.AvailableSlots())
	}
}
