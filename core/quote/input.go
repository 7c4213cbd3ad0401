// Package quote orchestrates a full quotation computation: input
// validation, per-item evaluation and aggregation.
package quote

import (
	"fmt"

	"dmc-quote/core/margin"
	"dmc-quote/core/season"
	"dmc-quote/core/types"
	"dmc-quote/internal/errors"
)

// Input is the immutable snapshot a quotation is computed from.
// The caller guarantees every rate table and margin rule is already
// scoped to one tenant, the itinerary is sorted by date ascending, and
// all monetary values are exact decimals.
type Input struct {
	// TenantID is the DMC tenant the computation runs under
	TenantID string `json:"tenant_id"`

	// Manifest is the traveler list
	Manifest types.PaxManifest `json:"manifest"`

	// Itinerary is the list of service items, date ascending
	Itinerary []types.ServiceItem `json:"itinerary"`

	// RateTables maps service refs to their season windows
	RateTables map[string][]types.SeasonWindow `json:"rate_tables"`

	// MarginRules maps service refs to their margin rule
	MarginRules map[string]types.MarginRule `json:"margin_rules"`

	// DefaultMargin prices services with no configured rule.
	// Nil means every service must have a rule.
	DefaultMargin *types.MarginRule `json:"default_margin,omitempty"`

	// TripStart and TripEnd bound the whole trip
	TripStart types.Date `json:"trip_start"`
	TripEnd   types.Date `json:"trip_end"`

	// Brackets configures age bracket assignment.
	// Empty means the standard DMC brackets.
	Brackets []types.AgeBracket `json:"brackets,omitempty"`

	// VAT enables the VAT forecast when set
	VAT *VATOptions `json:"vat,omitempty"`

	// Commission enables the commission breakdown when set
	Commission *CommissionOptions `json:"commission,omitempty"`
}

// Validate fails fast on malformed input before any arithmetic.
// The first fatal problem aborts; season overlaps are non-fatal and
// returned as warnings for the audit trail.
func (in *Input) Validate() ([]types.Warning, error) {
	if in.TenantID == "" {
		return nil, errors.InvalidInput("tenant id is required")
	}
	if len(in.Manifest) == 0 {
		return nil, errors.InvalidManifest("manifest has no travelers")
	}
	if in.TripEnd.Before(in.TripStart.Time) {
		return nil, errors.InvalidInput("trip end precedes trip start")
	}

	var warnings []types.Warning
	for i, item := range in.Itinerary {
		if item.Ref == "" {
			return nil, errors.InvalidInput(fmt.Sprintf("itinerary item %d has no service ref", i))
		}
		if item.Ratio != nil && item.Ratio.Per <= 0 {
			return nil, errors.InvalidInput(
				fmt.Sprintf("ratio divisor for %s must be positive, got %d", item.Ref, item.Ratio.Per))
		}

		windows, ok := in.RateTables[item.Ref]
		if !ok || len(windows) == 0 {
			return nil, errors.NoRateForDate(item.Ref, item.StartDate.String())
		}
		overlaps, err := season.ValidateWindows(item.Ref, windows)
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, overlaps...)

		rule, ok := in.MarginRules[item.Ref]
		if !ok {
			if in.DefaultMargin == nil {
				return nil, errors.InvalidMargin(item.Ref, "no margin rule configured and no default margin")
			}
			rule = *in.DefaultMargin
		}
		if err := margin.Validate(item.Ref, rule); err != nil {
			return nil, err
		}
	}
	return warnings, nil
}

// marginFor returns the rule for a service ref, falling back to the
// trip default. Validate has already guaranteed one of the two exists.
func (in *Input) marginFor(ref string) (types.MarginRule, bool) {
	if rule, ok := in.MarginRules[ref]; ok {
		return rule, false
	}
	return *in.DefaultMargin, true
}
