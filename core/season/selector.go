// Package season selects the correct base rate for a service date
// against a set of supplier season windows.
package season

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"dmc-quote/core/types"
	"dmc-quote/internal/errors"
)

// ValidateWindows checks a service's window set before any lookup.
// An inverted window (end before start) is a fatal input error.
// Overlapping windows are a data-integrity problem upstream; they are
// reported as RateAmbiguity warnings so a reviewer can catch them
// without blocking the sale.
func ValidateWindows(serviceRef string, windows []types.SeasonWindow) ([]types.Warning, error) {
	for _, w := range windows {
		if w.End.Before(w.Start.Time) {
			return nil, errors.InvalidInput(
				fmt.Sprintf("season window for %s ends %s before it starts %s",
					serviceRef, w.End, w.Start))
		}
		if w.Rate.IsNegative() {
			return nil, errors.InvalidInput(
				fmt.Sprintf("season window for %s has negative rate %s", serviceRef, w.Rate))
		}
	}

	sorted := make([]types.SeasonWindow, len(windows))
	copy(sorted, windows)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start.Time)
	})

	var warnings []types.Warning
	for i := 1; i < len(sorted); i++ {
		if !sorted[i].Start.After(sorted[i-1].End.Time) {
			warnings = append(warnings, types.Warning{
				Code:       types.WarnRateAmbiguity,
				ServiceRef: serviceRef,
				Message: fmt.Sprintf("season windows overlap: [%s..%s] and [%s..%s]",
					sorted[i-1].Start, sorted[i-1].End, sorted[i].Start, sorted[i].End),
			})
		}
	}
	return warnings, nil
}

// SelectRate picks the unit rate for a service on a date.
//
// Exactly one matching window is the normal case. When windows
// improperly overlap, the window with the latest start wins — a
// deterministic pick, flagged with a RateAmbiguity warning rather than
// guessed silently. A gap in coverage is fatal: NoRateForDate, never a
// default rate.
func SelectRate(serviceRef string, onDate types.Date, windows []types.SeasonWindow) (decimal.Decimal, types.Currency, []types.Warning, error) {
	var matches []types.SeasonWindow
	for _, w := range windows {
		if w.Covers(onDate) {
			matches = append(matches, w)
		}
	}

	switch len(matches) {
	case 0:
		return decimal.Zero, "", nil, errors.NoRateForDate(serviceRef, onDate.String())
	case 1:
		return matches[0].Rate, matches[0].Currency, nil, nil
	}

	picked := matches[0]
	for _, w := range matches[1:] {
		if w.Start.After(picked.Start.Time) {
			picked = w
		}
	}
	warning := types.Warning{
		Code:       types.WarnRateAmbiguity,
		ServiceRef: serviceRef,
		Message: fmt.Sprintf("%d season windows cover %s; picked the one starting %s",
			len(matches), onDate, picked.Start),
	}
	return picked.Rate, picked.Currency, []types.Warning{warning}, nil
}
