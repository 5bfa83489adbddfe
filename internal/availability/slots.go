package availability

import "fmt"

// GenerateSlots returns the hourly candidate slots for a booking window,
// formatted HH:00 and strictly increasing. The list depends only on the
// window bounds, never on upstream data.
func GenerateSlots(openHour, closeHour int) []string {
	if openHour < 0 || closeHour > 24 || openHour >= closeHour {
		return nil
	}
	slots := make([]string, 0, closeHour-openHour)
	for h := openHour; h < closeHour; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
	}
	return slots
}
