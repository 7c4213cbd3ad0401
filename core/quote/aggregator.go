// Package quote - Quotation aggregation
package quote

import (
	"github.com/shopspring/decimal"

	"dmc-quote/core/types"
	"dmc-quote/internal/errors"
)

// Aggregate sums cost lines into a quotation skeleton: per-nature
// subtotals in first-seen order, grand total, per-person prices.
//
// Invariant: grand total == sum of subtotals == sum of all line sell
// prices, decimal-exact. No line is ever dropped, zero-cost lines
// included. Fails with MixedCurrency when lines carry more than one
// currency; conversion is out of scope.
func Aggregate(lines []types.CostLine, counts types.CategoryCounts) (*types.Quotation, error) {
	q := &types.Quotation{
		Lines:     lines,
		PaxCounts: counts,
	}

	var seen []string
	byNature := make(map[types.CostNature]*types.Subtotal)
	var natureOrder []types.CostNature

	for i, line := range lines {
		if q.Currency == "" {
			q.Currency = line.Currency
		} else if line.Currency != q.Currency {
			if !contains(seen, string(q.Currency)) {
				seen = append(seen, string(q.Currency))
			}
			if !contains(seen, string(line.Currency)) {
				seen = append(seen, string(line.Currency))
			}
			continue // keep scanning to report every currency involved
		}

		sub, ok := byNature[line.Nature]
		if !ok {
			sub = &types.Subtotal{Nature: line.Nature}
			byNature[line.Nature] = sub
			natureOrder = append(natureOrder, line.Nature)
		}
		sub.Lines = append(sub.Lines, i)
		sub.Sell = sub.Sell.Add(line.SellPrice)
		sub.Cost = sub.Cost.Add(line.RawCost)

		q.GrandTotal = q.GrandTotal.Add(line.SellPrice)
		q.TotalCost = q.TotalCost.Add(line.RawCost)
		q.Warnings = append(q.Warnings, line.Warnings...)
	}
	if len(seen) > 0 {
		return nil, errors.MixedCurrency(seen)
	}

	for _, nature := range natureOrder {
		q.Subtotals = append(q.Subtotals, *byNature[nature])
	}
	q.TotalMargin = q.GrandTotal.Sub(q.TotalCost)

	if total := counts.Total(); total > 0 {
		q.PricePerPerson = q.GrandTotal.Div(decimal.NewFromInt(int64(total))).Round(2)
	}
	if paying := counts.PayingTotal(); paying > 0 {
		q.PricePerPayingPerson = q.GrandTotal.Div(decimal.NewFromInt(int64(paying))).Round(2)
	}

	return q, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
