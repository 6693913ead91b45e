package shelf_test

import (
	"testing"
	"time"

	"github.com/lemiae/PlantShelf/shelf"
)

func TestNeedsWatering(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		lastWatered  time.Time
		intervalDays int
		want         bool
	}{
		{"freshly watered", now, 7, false},
		{"one day before interval", now.Add(-6 * 24 * time.Hour), 7, false},
		{"exactly interval elapsed", now.Add(-7 * 24 * time.Hour), 7, true},
		{"well past interval", now.Add(-30 * 24 * time.Hour), 7, true},
		{"47 hours is one whole day", now.Add(-47 * time.Hour), 2, false},
		{"48 hours meets a 2 day interval", now.Add(-48 * time.Hour), 2, true},
		{"daily waterer after a day", now.Add(-24 * time.Hour), 1, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := shelf.NeedsWatering(tt.lastWatered, tt.intervalDays, now)
			if got != tt.want {
				t.Errorf("NeedsWatering(%v, %d) = %v, want %v", tt.lastWatered, tt.intervalDays, got, tt.want)
			}
		})
	}
}

func TestDaysSince(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	if got := shelf.DaysSince(now.Add(-days(3)), now); got != 3 {
		t.Errorf("DaysSince 3 days = %d, want 3", got)
	}
	if got := shelf.DaysSince(now.Add(-71*time.Hour), now); got != 2 {
		t.Errorf("DaysSince 71h = %d, want 2", got)
	}
	if got := shelf.DaysSince(now, now); got != 0 {
		t.Errorf("DaysSince now = %d, want 0", got)
	}
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}
