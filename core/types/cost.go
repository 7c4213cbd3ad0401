// Package types - Cost line and quotation types
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// WarningCode identifies a non-fatal data-quality condition
type WarningCode string

const (
	// WarnRateAmbiguity flags overlapping season windows at lookup time
	WarnRateAmbiguity WarningCode = "RATE_AMBIGUITY"

	// WarnNegativeSellClamped flags a sell price clamped to zero
	WarnNegativeSellClamped WarningCode = "NEGATIVE_SELL_CLAMPED"

	// WarnDefaultMargin flags a line priced with the trip default margin
	// because no rule was configured for its service
	WarnDefaultMargin WarningCode = "DEFAULT_MARGIN_APPLIED"
)

// Warning is a non-fatal condition surfaced in the audit trail.
// Warnings never abort a computation.
type Warning struct {
	// Code identifies the condition
	Code WarningCode `json:"code"`

	// Message is a human-readable description
	Message string `json:"message"`

	// ServiceRef is the service the warning concerns, if any
	ServiceRef string `json:"service_ref,omitempty"`
}

// CostLine is the result of evaluating one service item.
// Zero-quantity and zero-cost lines are recorded, never dropped.
type CostLine struct {
	// ServiceRef identifies the supplier rate that was booked
	ServiceRef string `json:"service_ref"`

	// Name is the service item label
	Name string `json:"name"`

	// Nature is the grouping category
	Nature CostNature `json:"cost_nature"`

	// Quantity is the pax-derived unit count
	Quantity int `json:"quantity"`

	// Multiplier is the temporal billable-unit count
	Multiplier int `json:"multiplier"`

	// UnitRate is the season rate used
	UnitRate decimal.Decimal `json:"unit_rate"`

	// RawCost is Quantity * Multiplier * UnitRate
	RawCost decimal.Decimal `json:"raw_cost"`

	// SellPrice is RawCost after the margin rule
	SellPrice decimal.Decimal `json:"sell_price"`

	// Margin is the rule that produced SellPrice
	Margin MarginRule `json:"margin"`

	// Currency is the line currency
	Currency Currency `json:"currency"`

	// Formula describes how the raw cost was calculated
	Formula string `json:"formula"`

	// Warnings are the non-fatal conditions attached to this line
	Warnings []Warning `json:"warnings,omitempty"`
}

// Subtotal is the sell total for one cost nature group
type Subtotal struct {
	// Nature is the group key
	Nature CostNature `json:"cost_nature"`

	// Lines indexes into the quotation's line list, in itinerary order
	Lines []int `json:"lines"`

	// Sell is the sum of the group's sell prices
	Sell decimal.Decimal `json:"sell"`

	// Cost is the sum of the group's raw costs
	Cost decimal.Decimal `json:"cost"`
}

// VATBreakdown is the VAT forecast for a quotation
type VATBreakdown struct {
	// Mode is the calculation mode used (on_margin, on_selling_price)
	Mode string `json:"mode"`

	// Margin is the gross margin (price - cost)
	Margin decimal.Decimal `json:"margin"`

	// Base is the amount VAT was calculated on
	Base decimal.Decimal `json:"base"`

	// Amount is the VAT due before deductions
	Amount decimal.Decimal `json:"amount"`

	// Recoverable is VAT already paid on tax-inclusive purchases
	Recoverable decimal.Decimal `json:"recoverable"`

	// Net is Amount minus Recoverable, floored at zero
	Net decimal.Decimal `json:"net"`

	// PriceTTC is the final tax-inclusive price
	PriceTTC decimal.Decimal `json:"price_ttc"`
}

// CommissionBreakdown details operator commissions on a quotation
type CommissionBreakdown struct {
	// GrossPrice is the price before commissions
	GrossPrice decimal.Decimal `json:"gross_price"`

	// Primary is the primary operator commission amount
	Primary decimal.Decimal `json:"primary"`

	// PrimaryLabel names the primary operator
	PrimaryLabel string `json:"primary_label,omitempty"`

	// Secondary is the partner agency commission amount
	Secondary decimal.Decimal `json:"secondary"`

	// SecondaryLabel names the partner agency
	SecondaryLabel string `json:"secondary_label,omitempty"`

	// Total is Primary + Secondary
	Total decimal.Decimal `json:"total"`

	// NetPrice is GrossPrice - Total
	NetPrice decimal.Decimal `json:"net_price"`
}

// Quotation is the full priced trip returned to the caller
type Quotation struct {
	// ID uniquely identifies the quotation
	ID string `json:"id"`

	// TenantID is the DMC tenant the quotation was computed under.
	// Isolation boundary only; never a computation input.
	TenantID string `json:"tenant_id"`

	// Currency is the single working currency
	Currency Currency `json:"currency"`

	// Lines holds one cost line per itinerary item, in itinerary order
	Lines []CostLine `json:"lines"`

	// Subtotals groups lines by cost nature in first-seen order
	Subtotals []Subtotal `json:"subtotals"`

	// TotalCost is the sum of all raw costs
	TotalCost decimal.Decimal `json:"total_cost"`

	// GrandTotal is the sum of all sell prices
	GrandTotal decimal.Decimal `json:"grand_total"`

	// TotalMargin is GrandTotal - TotalCost
	TotalMargin decimal.Decimal `json:"total_margin"`

	// PaxCounts is the resolved manifest
	PaxCounts CategoryCounts `json:"pax_counts"`

	// PricePerPerson is GrandTotal / total pax
	PricePerPerson decimal.Decimal `json:"price_per_person"`

	// PricePerPayingPerson is GrandTotal / paying pax
	PricePerPayingPerson decimal.Decimal `json:"price_per_paying_person"`

	// VAT is the VAT forecast, when configured
	VAT *VATBreakdown `json:"vat,omitempty"`

	// Commissions is the commission breakdown, when configured
	Commissions *CommissionBreakdown `json:"commissions,omitempty"`

	// Warnings mirrors every line warning for the audit trail
	Warnings []Warning `json:"warnings,omitempty"`

	// ComputedAt is the computation timestamp
	ComputedAt time.Time `json:"computed_at"`
}
