// Package temporal resolves how many billable units a service item
// contributes based on its duration mode.
package temporal

import (
	"dmc-quote/core/types"
	"dmc-quote/internal/errors"
)

// Resolve returns the temporal multiplier for an item.
//
//   - per_service_day: calendar days the service itself spans
//     (end - start + 1, minimum 1)
//   - per_trip_total: the whole trip duration in days, regardless of
//     the item's own span
//   - fixed: the item's FixedTimes (default 1)
//
// Pure function. Fails with InvalidDuration when the item's end date
// precedes its start date, when per_service_day has no dates, or when
// the fixed multiplier is negative.
func Resolve(item types.ServiceItem, tripDurationDays int) (int, error) {
	switch item.Mode {
	case types.ModePerServiceDay:
		if item.StartDate.IsZero() || item.EndDate.IsZero() {
			return 0, errors.InvalidDuration(item.Ref, "per_service_day item has no date span")
		}
		span := item.StartDate.DaysUntil(item.EndDate)
		if span < 0 {
			return 0, errors.InvalidDuration(item.Ref, "end date precedes start date").
				WithContext("start", item.StartDate.String()).
				WithContext("end", item.EndDate.String())
		}
		return span + 1, nil

	case types.ModePerTripTotal:
		if tripDurationDays < 1 {
			return 0, errors.InvalidDuration(item.Ref, "trip duration must be at least one day")
		}
		return tripDurationDays, nil

	case types.ModeFixed:
		if item.FixedTimes < 0 {
			return 0, errors.InvalidDuration(item.Ref, "fixed multiplier must not be negative")
		}
		if item.FixedTimes == 0 {
			return 1, nil
		}
		return item.FixedTimes, nil

	default:
		return 0, errors.InvalidDuration(item.Ref, "unknown duration mode "+string(item.Mode))
	}
}

// TripDuration returns the trip length in days, inclusive of both ends
func TripDuration(start, end types.Date) (int, error) {
	span := start.DaysUntil(end)
	if span < 0 {
		return 0, errors.InvalidInput("trip end precedes trip start")
	}
	return span + 1, nil
}
