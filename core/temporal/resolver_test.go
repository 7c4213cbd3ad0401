package temporal

import (
	"testing"
	"time"

	"dmc-quote/core/types"
	"dmc-quote/internal/errors"
)

func TestResolve(t *testing.T) {
	d := func(day int) types.Date { return types.NewDate(2026, time.August, day) }

	tests := []struct {
		name     string
		item     types.ServiceItem
		tripDays int
		want     int
	}{
		{
			name: "single day service yields 1",
			item: types.ServiceItem{Ref: "hotel", Mode: types.ModePerServiceDay,
				StartDate: d(10), EndDate: d(10)},
			tripDays: 7,
			want:     1,
		},
		{
			name: "three day span",
			item: types.ServiceItem{Ref: "guide", Mode: types.ModePerServiceDay,
				StartDate: d(10), EndDate: d(12)},
			tripDays: 7,
			want:     3,
		},
		{
			name: "per trip total ignores the item span",
			item: types.ServiceItem{Ref: "driver", Mode: types.ModePerTripTotal,
				StartDate: d(10), EndDate: d(11)},
			tripDays: 7,
			want:     7,
		},
		{
			name:     "fixed defaults to 1",
			item:     types.ServiceItem{Ref: "transfer", Mode: types.ModeFixed},
			tripDays: 7,
			want:     1,
		},
		{
			name:     "fixed honors explicit times",
			item:     types.ServiceItem{Ref: "meal", Mode: types.ModeFixed, FixedTimes: 3},
			tripDays: 7,
			want:     3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.item, tt.tripDays)
			if err != nil {
				t.Fatalf("Resolve returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolveFailures(t *testing.T) {
	d := func(day int) types.Date { return types.NewDate(2026, time.August, day) }

	tests := []struct {
		name     string
		item     types.ServiceItem
		tripDays int
	}{
		{
			name: "end before start",
			item: types.ServiceItem{Ref: "hotel", Mode: types.ModePerServiceDay,
				StartDate: d(12), EndDate: d(10)},
			tripDays: 7,
		},
		{
			name:     "per_service_day without dates",
			item:     types.ServiceItem{Ref: "hotel", Mode: types.ModePerServiceDay},
			tripDays: 7,
		},
		{
			name:     "zero trip duration for per_trip_total",
			item:     types.ServiceItem{Ref: "driver", Mode: types.ModePerTripTotal},
			tripDays: 0,
		},
		{
			name:     "negative fixed multiplier",
			item:     types.ServiceItem{Ref: "meal", Mode: types.ModeFixed, FixedTimes: -1},
			tripDays: 7,
		},
		{
			name:     "unknown mode",
			item:     types.ServiceItem{Ref: "x", Mode: "per_week"},
			tripDays: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.item, tt.tripDays)
			if !errors.IsType(err, errors.TypeInvalidDuration) {
				t.Fatalf("expected INVALID_DURATION, got %v", err)
			}
		})
	}
}

func TestTripDuration(t *testing.T) {
	start := types.NewDate(2026, time.August, 1)
	end := types.NewDate(2026, time.August, 7)

	days, err := TripDuration(start, end)
	if err != nil {
		t.Fatalf("TripDuration returned error: %v", err)
	}
	if days != 7 {
		t.Errorf("TripDuration = %d, want 7", days)
	}

	if _, err := TripDuration(end, start); err == nil {
		t.Error("expected error for inverted trip dates")
	}
}
