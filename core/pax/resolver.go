// Package pax resolves traveler manifests into category counts and
// applies ratio rules to derive billable quantities.
package pax

import (
	"math"

	"dmc-quote/core/types"
	"dmc-quote/internal/errors"
)

// Resolve turns a manifest into category counts using the given age
// brackets. An explicit category override wins over the birth date;
// ages are taken at refDate (normally the trip start).
//
// Pure function. Fails when the manifest is empty, when an entry has
// neither override nor birth date, or when an age fits no bracket.
func Resolve(manifest types.PaxManifest, brackets []types.AgeBracket, refDate types.Date) (types.CategoryCounts, error) {
	if len(manifest) == 0 {
		return nil, errors.InvalidManifest("manifest has no travelers")
	}
	if len(brackets) == 0 {
		brackets = types.DefaultAgeBrackets()
	}

	counts := make(types.CategoryCounts)
	for i, traveler := range manifest {
		cat, err := categorize(traveler, brackets, refDate)
		if err != nil {
			return nil, err.WithContext("traveler_index", i).WithContext("traveler_ref", traveler.Ref)
		}
		counts[cat]++
	}
	return counts, nil
}

func categorize(t types.Traveler, brackets []types.AgeBracket, refDate types.Date) (types.PaxCategory, *errors.Error) {
	if t.Category != nil {
		return *t.Category, nil
	}
	if t.BirthDate == nil {
		return "", errors.InvalidManifest("traveler has neither category override nor birth date")
	}

	age := t.BirthDate.AgeAt(refDate)
	if age < 0 {
		return "", errors.InvalidManifest("traveler birth date is after the trip start")
	}
	for _, b := range brackets {
		if b.Contains(age) {
			return b.Category, nil
		}
	}
	return "", errors.Newf(errors.TypeInvalidManifest, "age %d falls in no configured bracket", age)
}

// ApplyRatio converts category counts into a billable quantity.
//
// A nil rule means the item is booked once. A "set" rule fixes the
// quantity at rule.Per. A "ratio" rule yields ceil(relevant/Per) where
// relevant sums the rule's target categories (all categories when the
// rule names none). Zero relevant travelers yields quantity 0, not an
// error: a zero-quantity line is valid and stays in the audit trail.
func ApplyRatio(counts types.CategoryCounts, rule *types.RatioRule) int {
	if rule == nil {
		return 1
	}
	if rule.Kind == types.RatioSet {
		return rule.Per
	}

	relevant := 0
	if len(rule.Categories) == 0 {
		relevant = counts.Total()
	} else {
		for _, cat := range rule.Categories {
			relevant += counts.Count(cat)
		}
	}
	if relevant == 0 {
		return 0
	}

	// Ceiling: never under-provision guides or vehicles.
	return int(math.Ceil(float64(relevant) / float64(rule.Per)))
}
