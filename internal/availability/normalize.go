package availability

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownService  = errors.New("unknown service type")
	ErrUnknownLocation = errors.New("unknown location type")
)

// ServiceType and LocationType are the codes the assessment backend expects
// in its availability query. The storefront sends either internal route keys
// ("sell-now") or Thai display labels; both normalize through static tables.
// Unmapped input is rejected outright so a typo can never query the wrong
// availability bucket.
type ServiceType string

type LocationType string

const (
	ServiceSellNow     ServiceType = "SELL_NOW"
	ServicePawn        ServiceType = "PAWN"
	ServiceConsignment ServiceType = "CONSIGNMENT"
	ServiceRefinance   ServiceType = "REFINANCE"
	ServiceExchange    ServiceType = "EXCHANGE"
	ServiceTradeIn     ServiceType = "TRADE_IN"
	ServiceMaintenance ServiceType = "MAINTENANCE"
)

const (
	LocationHome  LocationType = "HOME"
	LocationStore LocationType = "STORE"
	LocationBTS   LocationType = "BTS"
)

var serviceCodes = map[string]ServiceType{
	"sell-now":    ServiceSellNow,
	"pawn":        ServicePawn,
	"consignment": ServiceConsignment,
	"refinance":   ServiceRefinance,
	"exchange":    ServiceExchange,
	"trade-in":    ServiceTradeIn,
	"maintenance": ServiceMaintenance,

	// Display labels used by the storefront pages.
	"ขายเลย":     ServiceSellNow,
	"ขายฝาก":     ServicePawn,
	"ฝากขาย":     ServiceConsignment,
	"รีไฟแนนซ์":  ServiceRefinance,
	"แลกเปลี่ยน": ServiceExchange,
	"เทิร์น":     ServiceTradeIn,
	"ซ่อมบำรุง":  ServiceMaintenance,

	// Already-normalized codes pass through.
	"SELL_NOW":    ServiceSellNow,
	"PAWN":        ServicePawn,
	"CONSIGNMENT": ServiceConsignment,
	"REFINANCE":   ServiceRefinance,
	"EXCHANGE":    ServiceExchange,
	"TRADE_IN":    ServiceTradeIn,
	"MAINTENANCE": ServiceMaintenance,
}

var locationCodes = map[string]LocationType{
	"home":  LocationHome,
	"store": LocationStore,
	"bts":   LocationBTS,
	"HOME":  LocationHome,
	"STORE": LocationStore,
	"BTS":   LocationBTS,
}

func NormalizeService(raw string) (ServiceType, error) {
	key := strings.TrimSpace(raw)
	if svc, ok := serviceCodes[key]; ok {
		return svc, nil
	}
	if svc, ok := serviceCodes[strings.ToLower(key)]; ok {
		return svc, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownService, raw)
}

func NormalizeLocation(raw string) (LocationType, error) {
	key := strings.TrimSpace(raw)
	if loc, ok := locationCodes[key]; ok {
		return loc, nil
	}
	if loc, ok := locationCodes[strings.ToLower(key)]; ok {
		return loc, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownLocation, raw)
}
