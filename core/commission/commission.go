// Package commission computes operator commission breakdowns on a
// selling price for B2B distribution.
package commission

import (
	"github.com/shopspring/decimal"

	"dmc-quote/core/types"
)

var hundred = decimal.NewFromInt(100)

// Config describes the commissions taken on a quotation
type Config struct {
	// PrimaryPct is the primary operator commission in percent
	PrimaryPct decimal.Decimal `json:"primary_pct"`

	// PrimaryLabel names the primary operator
	PrimaryLabel string `json:"primary_label,omitempty"`

	// SecondaryPct is an optional partner agency commission in percent
	SecondaryPct decimal.Decimal `json:"secondary_pct,omitempty"`

	// SecondaryLabel names the partner agency
	SecondaryLabel string `json:"secondary_label,omitempty"`
}

// Amount returns the commission taken at pct on a price, rounded
// half-up to cents.
func Amount(price, pct decimal.Decimal) decimal.Decimal {
	return price.Mul(pct).Div(hundred).Round(2)
}

// Compute builds the full commission breakdown on a gross price
func Compute(price decimal.Decimal, cfg Config) *types.CommissionBreakdown {
	breakdown := &types.CommissionBreakdown{
		GrossPrice:     price,
		PrimaryLabel:   cfg.PrimaryLabel,
		SecondaryLabel: cfg.SecondaryLabel,
	}

	if cfg.PrimaryPct.IsPositive() {
		breakdown.Primary = Amount(price, cfg.PrimaryPct)
	}
	if cfg.SecondaryPct.IsPositive() {
		breakdown.Secondary = Amount(price, cfg.SecondaryPct)
	}

	breakdown.Total = breakdown.Primary.Add(breakdown.Secondary)
	breakdown.NetPrice = price.Sub(breakdown.Total)
	return breakdown
}
