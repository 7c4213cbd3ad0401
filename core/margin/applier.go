// Package margin applies margin, markup and fixed-amount rules to raw
// costs to produce sell prices.
package margin

import (
	"fmt"

	"github.com/shopspring/decimal"

	"dmc-quote/core/types"
	"dmc-quote/internal/errors"
)

var one = decimal.NewFromInt(1)

// Validate rejects a malformed rule before any arithmetic.
// Margin is a fraction of the sell price, so p >= 1 would divide by
// zero or flip the sign; negative percents are rejected for both
// percent kinds (discounts go through fixed_amount).
func Validate(serviceRef string, rule types.MarginRule) error {
	switch rule.Kind {
	case types.MarginOnSell:
		if rule.Percent.IsNegative() {
			return errors.InvalidMargin(serviceRef, "margin percent must not be negative")
		}
		if rule.Percent.GreaterThanOrEqual(one) {
			return errors.InvalidMargin(serviceRef,
				fmt.Sprintf("margin %s must be below 1 (fraction of sell price)", rule.Percent))
		}
	case types.MarkupOnCost:
		if rule.Percent.IsNegative() {
			return errors.InvalidMargin(serviceRef, "markup percent must not be negative")
		}
	case types.FixedAmount:
		// Amount may be negative: that is a discount.
	default:
		return errors.InvalidMargin(serviceRef, "unknown margin kind "+string(rule.Kind))
	}
	return nil
}

// Apply transforms a raw cost into a sell price.
//
//   - margin(p):       sell = raw / (1 - p)
//   - markup(p):       sell = raw * (1 + p)
//   - fixed_amount(v): sell = raw + v, clamped at zero with a
//     NegativeSellClamped warning when the discount exceeds the cost
func Apply(serviceRef string, raw decimal.Decimal, rule types.MarginRule) (decimal.Decimal, []types.Warning, error) {
	if err := Validate(serviceRef, rule); err != nil {
		return decimal.Zero, nil, err
	}

	switch rule.Kind {
	case types.MarginOnSell:
		return raw.Div(one.Sub(rule.Percent)), nil, nil

	case types.MarkupOnCost:
		return raw.Mul(one.Add(rule.Percent)), nil, nil

	default: // FixedAmount, the only kind left after Validate
		sell := raw.Add(rule.Amount)
		if sell.IsNegative() {
			warning := types.Warning{
				Code:       types.WarnNegativeSellClamped,
				ServiceRef: serviceRef,
				Message: fmt.Sprintf("discount %s exceeds cost %s; sell clamped to 0",
					rule.Amount.Neg(), raw),
			}
			return decimal.Zero, []types.Warning{warning}, nil
		}
		return sell, nil, nil
	}
}
