// Package tarification runs the quotation engine in reverse: given a
// selling price set by the seller and the cost from a computed
// quotation, it derives the real margin with commission and VAT
// forecasts.
package tarification

import (
	"github.com/shopspring/decimal"

	"dmc-quote/core/commission"
	"dmc-quote/core/types"
	"dmc-quote/core/vat"
	"dmc-quote/internal/errors"
)

var hundred = decimal.NewFromInt(100)

// Settings carries the trip-level commercial terms
type Settings struct {
	Commission commission.Config `json:"commission"`

	// VATRatePct and VATMode configure the VAT forecast; zero rate
	// disables it
	VATRatePct decimal.Decimal `json:"vat_rate_pct,omitempty"`
	VATMode    string          `json:"vat_mode,omitempty"`

	// VATRecoverable is carried over from the quotation's audit data
	VATRecoverable decimal.Decimal `json:"vat_recoverable,omitempty"`
}

// Line is the margin analysis for one selling price against one cost
type Line struct {
	Label string `json:"label,omitempty"`

	SellingPrice decimal.Decimal `json:"selling_price"`
	TotalCost    decimal.Decimal `json:"total_cost"`

	// Margin is SellingPrice - TotalCost; MarginPct is its share of
	// the selling price
	Margin    decimal.Decimal `json:"margin"`
	MarginPct decimal.Decimal `json:"margin_pct"`

	Commissions *types.CommissionBreakdown `json:"commissions,omitempty"`

	// MarginAfterCommission is Margin minus all commissions
	MarginAfterCommission decimal.Decimal `json:"margin_after_commission"`

	// VAT is the forecast at the trip's VAT terms, when configured
	VAT *types.VATBreakdown `json:"vat,omitempty"`
}

// Analyze computes one margin line
func Analyze(label string, sellingPrice, totalCost decimal.Decimal, settings Settings) (*Line, error) {
	if sellingPrice.IsNegative() {
		return nil, errors.InvalidInput("selling price must not be negative")
	}

	line := &Line{
		Label:        label,
		SellingPrice: sellingPrice,
		TotalCost:    totalCost,
		Margin:       sellingPrice.Sub(totalCost),
	}
	if sellingPrice.IsPositive() {
		line.MarginPct = line.Margin.Div(sellingPrice).Mul(hundred).Round(2)
	}

	breakdown := commission.Compute(sellingPrice, settings.Commission)
	line.Commissions = breakdown
	line.MarginAfterCommission = line.Margin.Sub(breakdown.Total)

	if settings.VATRatePct.IsPositive() {
		forecast, err := vat.Compute(totalCost, sellingPrice, vat.Config{
			RatePct:              settings.VATRatePct,
			Mode:                 settings.VATMode,
			PrimaryCommissionPct: settings.Commission.PrimaryPct,
			Recoverable:          settings.VATRecoverable,
		})
		if err != nil {
			return nil, err
		}
		line.VAT = forecast
	}
	return line, nil
}

// Totals sums a set of margin lines
type TotalsResult struct {
	SellingPrice          decimal.Decimal `json:"selling_price"`
	TotalCost             decimal.Decimal `json:"total_cost"`
	Margin                decimal.Decimal `json:"margin"`
	MarginPct             decimal.Decimal `json:"margin_pct"`
	Commissions           decimal.Decimal `json:"commissions"`
	MarginAfterCommission decimal.Decimal `json:"margin_after_commission"`
}

// Totals aggregates margin lines into trip-level figures
func Totals(lines []*Line) TotalsResult {
	var t TotalsResult
	for _, l := range lines {
		t.SellingPrice = t.SellingPrice.Add(l.SellingPrice)
		t.TotalCost = t.TotalCost.Add(l.TotalCost)
		t.Margin = t.Margin.Add(l.Margin)
		if l.Commissions != nil {
			t.Commissions = t.Commissions.Add(l.Commissions.Total)
		}
		t.MarginAfterCommission = t.MarginAfterCommission.Add(l.MarginAfterCommission)
	}
	if t.SellingPrice.IsPositive() {
		t.MarginPct = t.Margin.Div(t.SellingPrice).Mul(hundred).Round(2)
	}
	return t
}
