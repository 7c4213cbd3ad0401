package quote

import (
	"testing"

	"github.com/shopspring/decimal"

	"dmc-quote/core/types"
	"dmc-quote/internal/errors"
)

func line(ref string, nature types.CostNature, raw, sell string, currency types.Currency) types.CostLine {
	return types.CostLine{
		ServiceRef: ref,
		Nature:     nature,
		RawCost:    decimal.RequireFromString(raw),
		SellPrice:  decimal.RequireFromString(sell),
		Currency:   currency,
	}
}

func TestAggregate(t *testing.T) {
	lines := []types.CostLine{
		line("hotel-1", types.NatureHotel, "100", "125", types.CurrencyEUR),
		line("guide-1", types.NatureGuide, "80", "100", types.CurrencyEUR),
		line("hotel-2", types.NatureHotel, "200", "250", types.CurrencyEUR),
		line("meal-1", types.NatureRestaurant, "0", "0", types.CurrencyEUR),
	}
	counts := types.CategoryCounts{types.PaxAdult: 4, types.PaxGuide: 1}

	q, err := Aggregate(lines, counts)
	if err != nil {
		t.Fatal(err)
	}

	if len(q.Lines) != 4 {
		t.Fatalf("lines dropped: got %d, want 4", len(q.Lines))
	}
	if !q.GrandTotal.Equal(decimal.RequireFromString("475")) {
		t.Errorf("grand total = %s, want 475", q.GrandTotal)
	}
	if !q.TotalCost.Equal(decimal.RequireFromString("380")) {
		t.Errorf("total cost = %s, want 380", q.TotalCost)
	}

	// Grouping preserves first-seen nature order: HTL, GDE, RES.
	wantOrder := []types.CostNature{types.NatureHotel, types.NatureGuide, types.NatureRestaurant}
	if len(q.Subtotals) != len(wantOrder) {
		t.Fatalf("subtotals = %d groups, want %d", len(q.Subtotals), len(wantOrder))
	}
	for i, nature := range wantOrder {
		if q.Subtotals[i].Nature != nature {
			t.Errorf("subtotal %d nature = %s, want %s", i, q.Subtotals[i].Nature, nature)
		}
	}
	if !q.Subtotals[0].Sell.Equal(decimal.RequireFromString("375")) {
		t.Errorf("hotel subtotal = %s, want 375", q.Subtotals[0].Sell)
	}

	// Grand total == sum of subtotals == sum of line sells, exactly.
	var bySubtotal, byLine decimal.Decimal
	for _, s := range q.Subtotals {
		bySubtotal = bySubtotal.Add(s.Sell)
	}
	for _, l := range q.Lines {
		byLine = byLine.Add(l.SellPrice)
	}
	if !q.GrandTotal.Equal(bySubtotal) || !q.GrandTotal.Equal(byLine) {
		t.Errorf("consistency broken: grand=%s subtotals=%s lines=%s", q.GrandTotal, bySubtotal, byLine)
	}

	// 475 / 5 pax and 475 / 4 paying pax.
	if !q.PricePerPerson.Equal(decimal.RequireFromString("95.00")) {
		t.Errorf("per person = %s, want 95.00", q.PricePerPerson)
	}
	if !q.PricePerPayingPerson.Equal(decimal.RequireFromString("118.75")) {
		t.Errorf("per paying person = %s, want 118.75", q.PricePerPayingPerson)
	}
}

func TestAggregateMixedCurrency(t *testing.T) {
	lines := []types.CostLine{
		line("hotel-1", types.NatureHotel, "100", "125", types.CurrencyEUR),
		line("boat-1", types.NatureTransport, "900", "1000", types.CurrencyTHB),
	}

	_, err := Aggregate(lines, types.CategoryCounts{types.PaxAdult: 2})
	if !errors.IsType(err, errors.TypeMixedCurrency) {
		t.Fatalf("expected MIXED_CURRENCY, got %v", err)
	}
}

func TestAggregateEmptyItinerary(t *testing.T) {
	q, err := Aggregate(nil, types.CategoryCounts{types.PaxAdult: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(q.Lines) != 0 || !q.GrandTotal.IsZero() {
		t.Errorf("empty aggregate should be zero, got %s over %d lines", q.GrandTotal, len(q.Lines))
	}
}

func TestAggregateCollectsLineWarnings(t *testing.T) {
	warned := line("disc-1", types.NatureMisc, "50", "0", types.CurrencyEUR)
	warned.Warnings = []types.Warning{{Code: types.WarnNegativeSellClamped, ServiceRef: "disc-1"}}

	q, err := Aggregate([]types.CostLine{warned}, types.CategoryCounts{types.PaxAdult: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(q.Warnings) != 1 || q.Warnings[0].Code != types.WarnNegativeSellClamped {
		t.Errorf("line warning not mirrored on quotation: %v", q.Warnings)
	}
}
