// Package types - Pricing rule types
package types

import "github.com/shopspring/decimal"

// RatioKind is the closed set of ratio rule behaviors
type RatioKind string

const (
	// RatioPerPax derives quantity from pax counts: ceil(relevant / Per)
	RatioPerPax RatioKind = "ratio"

	// RatioSet fixes quantity at Per regardless of pax
	RatioSet RatioKind = "set"
)

// RatioRule converts pax category counts into a billable quantity,
// e.g. one guide per 8 adults.
type RatioRule struct {
	// Kind selects ratio or set behavior
	Kind RatioKind `json:"kind"`

	// Categories are the pax categories the rule counts.
	// Empty means all categories.
	Categories []PaxCategory `json:"categories,omitempty"`

	// Per is the divisor: one unit per Per travelers (ratio),
	// or the fixed quantity itself (set). Must be > 0.
	Per int `json:"per"`
}

// DurationMode is the closed set of temporal billing behaviors
type DurationMode string

const (
	// ModePerServiceDay bills once per calendar day the service spans
	ModePerServiceDay DurationMode = "per_service_day"

	// ModePerTripTotal bills once per day of the whole trip
	ModePerTripTotal DurationMode = "per_trip_total"

	// ModeFixed bills a fixed number of times regardless of dates
	ModeFixed DurationMode = "fixed"
)

// IsValid reports whether the mode is a known billing behavior
func (m DurationMode) IsValid() bool {
	switch m {
	case ModePerServiceDay, ModePerTripTotal, ModeFixed:
		return true
	}
	return false
}

// ServiceItem is one bookable component of the trip
type ServiceItem struct {
	// Ref identifies the supplier rate this item books
	Ref string `json:"ref"`

	// Name is a human-readable label
	Name string `json:"name"`

	// Supplier identifies the supplier
	Supplier string `json:"supplier,omitempty"`

	// Nature classifies the item for grouping and VAT
	Nature CostNature `json:"cost_nature"`

	// StartDate is the first service day
	StartDate Date `json:"start_date"`

	// EndDate is the last service day (same as StartDate for one-day services)
	EndDate Date `json:"end_date"`

	// Mode selects how billable units accrue over time
	Mode DurationMode `json:"duration_mode"`

	// FixedTimes is the multiplier for ModeFixed (default 1)
	FixedTimes int `json:"fixed_times,omitempty"`

	// Ratio derives quantity from pax counts. Nil means quantity 1.
	Ratio *RatioRule `json:"ratio,omitempty"`
}

// SeasonWindow is a supplier rate's validity period
type SeasonWindow struct {
	// Start is the inclusive first date of the window
	Start Date `json:"start"`

	// End is the inclusive last date of the window
	End Date `json:"end"`

	// Rate is the base unit rate within the window
	Rate decimal.Decimal `json:"rate"`

	// Currency is the rate currency
	Currency Currency `json:"currency"`
}

// Covers reports whether the window covers a date
func (w SeasonWindow) Covers(d Date) bool {
	return !d.Before(w.Start.Time) && !d.After(w.End.Time)
}

// MarginKind is the closed set of margin transformations
type MarginKind string

const (
	// MarginOnSell expresses profit as a fraction of the sell price:
	// sell = cost / (1 - p)
	MarginOnSell MarginKind = "margin"

	// MarkupOnCost expresses profit as a fraction of the cost:
	// sell = cost * (1 + p)
	MarkupOnCost MarginKind = "markup"

	// FixedAmount adds a flat amount: sell = cost + v
	FixedAmount MarginKind = "fixed_amount"
)

// MarginRule is one margin transformation applied to a raw cost
type MarginRule struct {
	// Kind selects the transformation
	Kind MarginKind `json:"kind"`

	// Percent is the fraction for margin/markup kinds (0.20 = 20%)
	Percent decimal.Decimal `json:"percent,omitempty"`

	// Amount is the flat value for fixed_amount; negative means discount
	Amount decimal.Decimal `json:"amount,omitempty"`
}
