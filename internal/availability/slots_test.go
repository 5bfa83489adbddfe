package availability

import "testing"

func TestGenerateSlots_Window(t *testing.T) {
	slots := GenerateSlots(10, 20)
	if len(slots) != 10 {
		t.Fatalf("expected 10 slots, got %d", len(slots))
	}
	if slots[0] != "10:00" {
		t.Fatalf("expected first slot 10:00, got %s", slots[0])
	}
	if slots[len(slots)-1] != "19:00" {
		t.Fatalf("expected last slot 19:00, got %s", slots[len(slots)-1])
	}
	for i := 1; i < len(slots); i++ {
		if slots[i] <= slots[i-1] {
			t.Fatalf("slots not strictly increasing: %s then %s", slots[i-1], slots[i])
		}
	}
}

func TestGenerateSlots_Count(t *testing.T) {
	for low := 0; low < 24; low++ {
		for high := low + 1; high <= 24; high++ {
			slots := GenerateSlots(low, high)
			if len(slots) != high-low {
				t.Fatalf("window %d-%d: expected %d slots, got %d", low, high, high-low, len(slots))
			}
		}
	}
}

func TestGenerateSlots_InvalidWindow(t *testing.T) {
	if slots := GenerateSlots(20, 10); slots != nil {
		t.Fatalf("expected nil for inverted window, got %v", slots)
	}
	if slots := GenerateSlots(10, 10); slots != nil {
		t.Fatalf("expected nil for empty window, got %v", slots)
	}
	if slots := GenerateSlots(-1, 5); slots != nil {
		t.Fatalf("expected nil for negative bound, got %v", slots)
	}
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	a := GenerateSlots(10, 20)
	b := GenerateSlots(10, 20)
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("slot %d differs: %s vs %s", i, a[i], b[i])
		}
	}
}
