package models

import "fmt"

const (
	// Business hours window for slot generation. The list is static and does
	// not reflect actual availability.
	OpeningHour       = 9
	ClosingHour       = 18
	SlotIntervalMins  = 30
	slotsPerHourCount = 60 / SlotIntervalMins
)

// TimeSlots returns the fixed list of half-hour marks offered for scheduling,
// 09:00 through 17:30.
func TimeSlots() []string {
	slots := make([]string, 0, (ClosingHour-OpeningHour)*slotsPerHourCount)
	for h := OpeningHour; h < ClosingHour; h++ {
		for m := 0; m < 60; m += SlotIntervalMins {
			slots = append(slots, fmt.Sprintf("%02d:%02d", h, m))
		}
	}
	return slots
}

// IsValidSlot reports whether t is one of the advertised slots.
func IsValidSlot(t string) bool {
	for _, s := range TimeSlots() {
		if s == t {
			return true
		}
	}
	return false
}
