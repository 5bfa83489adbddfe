package availability

import (
	"errors"
	"testing"
)

func TestNormalizeService(t *testing.T) {
	cases := []struct {
		in   string
		want ServiceType
	}{
		{"sell-now", ServiceSellNow},
		{"SELL_NOW", ServiceSellNow},
		{"ขายฝาก", ServicePawn},
		{"ฝากขาย", ServiceConsignment},
		{"รีไฟแนนซ์", ServiceRefinance},
		{"เทิร์น", ServiceTradeIn},
		{" trade-in ", ServiceTradeIn},
		{"Maintenance", ServiceMaintenance},
	}
	for _, c := range cases {
		got, err := NormalizeService(c.in)
		if err != nil {
			t.Fatalf("NormalizeService(%q) failed: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("NormalizeService(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestNormalizeService_RejectsUnknown(t *testing.T) {
	if _, err := NormalizeService("sell-later"); !errors.Is(err, ErrUnknownService) {
		t.Fatalf("expected ErrUnknownService, got %v", err)
	}
	if _, err := NormalizeService(""); !errors.Is(err, ErrUnknownService) {
		t.Fatalf("expected ErrUnknownService for empty input, got %v", err)
	}
}

func TestNormalizeLocation(t *testing.T) {
	for in, want := range map[string]LocationType{
		"home":  LocationHome,
		"store": LocationStore,
		"bts":   LocationBTS,
		"BTS":   LocationBTS,
	} {
		got, err := NormalizeLocation(in)
		if err != nil {
			t.Fatalf("NormalizeLocation(%q) failed: %v", in, err)
		}
		if got != want {
			t.Fatalf("NormalizeLocation(%q) = %s, want %s", in, got, want)
		}
	}

	if _, err := NormalizeLocation("office"); !errors.Is(err, ErrUnknownLocation) {
		t.Fatalf("expected ErrUnknownLocation, got %v", err)
	}
}
