// Package costline combines pax quantity, temporal multiplier and
// seasonal unit rate into a raw cost line per service item.
package costline

import (
	"fmt"

	"github.com/shopspring/decimal"

	"dmc-quote/core/types"
)

// Compute builds the raw cost line for one service item.
//
// raw = quantity * multiplier * rate, decimal-exact. A zero quantity or
// zero multiplier yields a zero raw cost, recorded as a line and never
// omitted: dropping it would break audit completeness.
func Compute(item types.ServiceItem, quantity, multiplier int, rate decimal.Decimal, currency types.Currency) types.CostLine {
	qty := decimal.NewFromInt(int64(quantity))
	mult := decimal.NewFromInt(int64(multiplier))
	raw := qty.Mul(mult).Mul(rate)

	return types.CostLine{
		ServiceRef: item.Ref,
		Name:       item.Name,
		Nature:     item.Nature,
		Quantity:   quantity,
		Multiplier: multiplier,
		UnitRate:   rate,
		RawCost:    raw,
		Currency:   currency,
		Formula:    fmt.Sprintf("qty %d × %d units × %s %s", quantity, multiplier, rate, currency),
	}
}
