// Package shelf holds the pure placement and watering rules. Nothing here
// touches storage or the network.
package shelf

import "time"

// DaysSince returns the whole days elapsed between lastWatered and now.
func DaysSince(lastWatered, now time.Time) int {
	return int(now.Sub(lastWatered).Hours() / 24)
}

// NeedsWatering reports whether a plant last watered at lastWatered is due,
// given its species interval in days. Exactly intervalDays elapsed counts as
// due. Recompute on every read; "now" keeps moving.
func NeedsWatering(lastWatered time.Time, intervalDays int, now time.Time) bool {
	return DaysSince(lastWatered, now) >= intervalDays
}
