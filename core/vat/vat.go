// Package vat computes the VAT forecast for a quotation under the
// travel-agency regimes: VAT on the margin, or VAT on the selling
// price net of the primary commission.
package vat

import (
	"github.com/shopspring/decimal"

	"dmc-quote/core/types"
	"dmc-quote/internal/errors"
)

// Calculation modes
const (
	// ModeOnMargin taxes the gross margin (standard French regime
	// for travel agencies)
	ModeOnMargin = "on_margin"

	// ModeOnSellingPrice taxes the selling price minus the primary
	// commission
	ModeOnSellingPrice = "on_selling_price"
)

var hundred = decimal.NewFromInt(100)

// Config selects how VAT is forecast for a quotation
type Config struct {
	// RatePct is the VAT rate in percent (20 = 20%)
	RatePct decimal.Decimal `json:"rate_pct"`

	// Mode is on_margin or on_selling_price
	Mode string `json:"mode"`

	// PrimaryCommissionPct is deducted from the base in
	// on_selling_price mode
	PrimaryCommissionPct decimal.Decimal `json:"primary_commission_pct,omitempty"`

	// Recoverable is VAT already paid on tax-inclusive purchases,
	// deducted from the VAT due
	Recoverable decimal.Decimal `json:"recoverable,omitempty"`
}

// Compute builds the VAT breakdown for a quotation's totals.
// Amounts are rounded half-up to cents; net VAT never goes negative.
func Compute(totalCost, totalPrice decimal.Decimal, cfg Config) (*types.VATBreakdown, error) {
	if cfg.RatePct.IsNegative() {
		return nil, errors.InvalidInput("VAT rate must not be negative")
	}

	mode := cfg.Mode
	if mode == "" {
		mode = ModeOnMargin
	}

	grossMargin := totalPrice.Sub(totalCost)

	var base decimal.Decimal
	switch mode {
	case ModeOnMargin:
		base = grossMargin
	case ModeOnSellingPrice:
		commission := totalPrice.Mul(cfg.PrimaryCommissionPct).Div(hundred).Round(2)
		base = totalPrice.Sub(commission)
	default:
		return nil, errors.InvalidInput("unknown VAT mode " + mode)
	}

	amount := base.Mul(cfg.RatePct).Div(hundred).Round(2)

	net := amount.Sub(cfg.Recoverable).Round(2)
	if net.IsNegative() {
		net = decimal.Zero
	}

	return &types.VATBreakdown{
		Mode:        mode,
		Margin:      grossMargin.Round(2),
		Base:        base.Round(2),
		Amount:      amount,
		Recoverable: cfg.Recoverable,
		Net:         net,
		PriceTTC:    totalPrice.Add(net).Round(2),
	}, nil
}
