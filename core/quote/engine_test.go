package quote

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"dmc-quote/core/types"
	"dmc-quote/internal/errors"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func adult() types.Traveler {
	c := types.PaxAdult
	return types.Traveler{Category: &c}
}

func child() types.Traveler {
	c := types.PaxChild
	return types.Traveler{Category: &c}
}

// testInput builds a 7-day trip for 2 adults + 1 child with a hotel
// (per service day), a guide (one per 2 adults, per service day) and a
// one-off airport transfer.
func testInput() *Input {
	d := func(day int) types.Date { return types.NewDate(2026, time.August, day) }
	allSeason := []types.SeasonWindow{{
		Start: d(1), End: d(31), Rate: dec("45.00"), Currency: types.CurrencyEUR,
	}}

	return &Input{
		TenantID: "dmc-siam",
		Manifest: types.PaxManifest{adult(), adult(), child()},
		Itinerary: []types.ServiceItem{
			{
				Ref: "hotel-std", Name: "Standard hotel", Nature: types.NatureHotel,
				StartDate: d(10), EndDate: d(12), Mode: types.ModePerServiceDay,
				Ratio: &types.RatioRule{Kind: types.RatioPerPax, Per: 1},
			},
			{
				Ref: "guide-day", Name: "Local guide", Nature: types.NatureGuide,
				StartDate: d(10), EndDate: d(10), Mode: types.ModePerServiceDay,
				Ratio: &types.RatioRule{
					Kind: types.RatioPerPax, Per: 2,
					Categories: []types.PaxCategory{types.PaxAdult},
				},
			},
			{
				Ref: "transfer-apt", Name: "Airport transfer", Nature: types.NatureTransport,
				StartDate: d(10), EndDate: d(10), Mode: types.ModeFixed,
			},
		},
		RateTables: map[string][]types.SeasonWindow{
			"hotel-std":    allSeason,
			"guide-day":    allSeason,
			"transfer-apt": {{Start: d(1), End: d(31), Rate: dec("30.00"), Currency: types.CurrencyEUR}},
		},
		MarginRules: map[string]types.MarginRule{
			"hotel-std":    {Kind: types.MarginOnSell, Percent: dec("0.20")},
			"guide-day":    {Kind: types.MarkupOnCost, Percent: dec("0.20")},
			"transfer-apt": {Kind: types.FixedAmount, Amount: dec("10")},
		},
		TripStart: d(10),
		TripEnd:   d(16),
	}
}

func TestCalculate(t *testing.T) {
	q, err := NewEngine().Calculate(testInput())
	if err != nil {
		t.Fatal(err)
	}

	// Completeness: one line per itinerary item.
	if len(q.Lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(q.Lines))
	}

	// Hotel: 3 pax x 3 days x 45 = 405 cost, margin 20% -> 506.25.
	hotel := q.Lines[0]
	if hotel.Quantity != 3 || hotel.Multiplier != 3 {
		t.Errorf("hotel qty/mult = %d/%d, want 3/3", hotel.Quantity, hotel.Multiplier)
	}
	if !hotel.RawCost.Equal(dec("405.00")) {
		t.Errorf("hotel raw = %s, want 405.00", hotel.RawCost)
	}
	if !hotel.SellPrice.Equal(dec("506.25")) {
		t.Errorf("hotel sell = %s, want 506.25", hotel.SellPrice)
	}

	// Guide: ceil(2 adults / 2) = 1, one day, markup 20% on 45 -> 54.
	guide := q.Lines[1]
	if guide.Quantity != 1 {
		t.Errorf("guide qty = %d, want 1", guide.Quantity)
	}
	if !guide.SellPrice.Equal(dec("54.00")) {
		t.Errorf("guide sell = %s, want 54.00", guide.SellPrice)
	}

	// Transfer: quantity 1 (no ratio), fixed once, 30 + 10 = 40.
	transfer := q.Lines[2]
	if transfer.Quantity != 1 || transfer.Multiplier != 1 {
		t.Errorf("transfer qty/mult = %d/%d, want 1/1", transfer.Quantity, transfer.Multiplier)
	}
	if !transfer.SellPrice.Equal(dec("40.00")) {
		t.Errorf("transfer sell = %s, want 40.00", transfer.SellPrice)
	}

	if !q.GrandTotal.Equal(dec("600.25")) {
		t.Errorf("grand total = %s, want 600.25", q.GrandTotal)
	}
	if q.TenantID != "dmc-siam" {
		t.Errorf("tenant = %s", q.TenantID)
	}
	if q.ID == "" {
		t.Error("quotation has no id")
	}
	if len(q.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", q.Warnings)
	}
}

func TestCalculateGuideRatioRoundsUp(t *testing.T) {
	in := testInput()
	// One guide per 3 adults over 2 adults still provisions a guide.
	in.Itinerary[1].Ratio.Per = 3

	q, err := NewEngine().Calculate(in)
	if err != nil {
		t.Fatal(err)
	}
	if q.Lines[1].Quantity != 1 {
		t.Errorf("guide qty = %d, want 1", q.Lines[1].Quantity)
	}
}

func TestCalculateZeroQuantityLineKept(t *testing.T) {
	in := testInput()
	// Teen-only service with no teens in the manifest.
	in.Itinerary[1].Ratio.Categories = []types.PaxCategory{types.PaxTeen}

	q, err := NewEngine().Calculate(in)
	if err != nil {
		t.Fatal(err)
	}
	if len(q.Lines) != 3 {
		t.Fatalf("zero-quantity line dropped: %d lines", len(q.Lines))
	}
	guide := q.Lines[1]
	if guide.Quantity != 0 || !guide.RawCost.IsZero() || !guide.SellPrice.IsZero() {
		t.Errorf("guide line = qty %d raw %s sell %s, want all zero",
			guide.Quantity, guide.RawCost, guide.SellPrice)
	}
}

func TestCalculatePerTripTotal(t *testing.T) {
	in := testInput()
	in.Itinerary[1].Mode = types.ModePerTripTotal

	q, err := NewEngine().Calculate(in)
	if err != nil {
		t.Fatal(err)
	}
	// Aug 10..16 inclusive is 7 days, regardless of the item's own span.
	if q.Lines[1].Multiplier != 7 {
		t.Errorf("multiplier = %d, want 7", q.Lines[1].Multiplier)
	}
}

func TestCalculateNoRateForDate(t *testing.T) {
	in := testInput()
	in.Itinerary[0].StartDate = types.NewDate(2026, time.September, 2)
	in.Itinerary[0].EndDate = types.NewDate(2026, time.September, 4)

	_, err := NewEngine().Calculate(in)
	if !errors.IsType(err, errors.TypeNoRateForDate) {
		t.Fatalf("expected NO_RATE_FOR_DATE, got %v", err)
	}
}

func TestCalculateMissingRateTableFailsFast(t *testing.T) {
	in := testInput()
	delete(in.RateTables, "guide-day")

	_, err := NewEngine().Calculate(in)
	if !errors.IsType(err, errors.TypeNoRateForDate) {
		t.Fatalf("expected NO_RATE_FOR_DATE, got %v", err)
	}
}

func TestCalculateInvalidMarginFailsFast(t *testing.T) {
	in := testInput()
	in.MarginRules["hotel-std"] = types.MarginRule{Kind: types.MarginOnSell, Percent: dec("1")}

	_, err := NewEngine().Calculate(in)
	if !errors.IsType(err, errors.TypeInvalidMargin) {
		t.Fatalf("expected INVALID_MARGIN, got %v", err)
	}
}

func TestCalculateDefaultMarginFallback(t *testing.T) {
	in := testInput()
	delete(in.MarginRules, "transfer-apt")

	t.Run("without default margin the input is rejected", func(t *testing.T) {
		_, err := NewEngine().Calculate(in)
		if !errors.IsType(err, errors.TypeInvalidMargin) {
			t.Fatalf("expected INVALID_MARGIN, got %v", err)
		}
	})

	t.Run("default margin prices the line and warns", func(t *testing.T) {
		in.DefaultMargin = &types.MarginRule{Kind: types.MarginOnSell, Percent: dec("0.25")}
		q, err := NewEngine().Calculate(in)
		if err != nil {
			t.Fatal(err)
		}
		// 30 / 0.75 = 40.
		if !q.Lines[2].SellPrice.Equal(dec("40")) {
			t.Errorf("transfer sell = %s, want 40", q.Lines[2].SellPrice)
		}
		found := false
		for _, w := range q.Lines[2].Warnings {
			if w.Code == types.WarnDefaultMargin {
				found = true
			}
		}
		if !found {
			t.Error("expected DEFAULT_MARGIN_APPLIED warning on the line")
		}
	})
}

func TestCalculateOverlapWarningNonFatal(t *testing.T) {
	in := testInput()
	d := func(day int) types.Date { return types.NewDate(2026, time.August, day) }
	in.RateTables["hotel-std"] = []types.SeasonWindow{
		{Start: d(1), End: d(15), Rate: dec("45.00"), Currency: types.CurrencyEUR},
		{Start: d(10), End: d(31), Rate: dec("60.00"), Currency: types.CurrencyEUR},
	}

	q, err := NewEngine().Calculate(in)
	if err != nil {
		t.Fatalf("overlap must be non-fatal: %v", err)
	}

	// Latest start wins deterministically.
	if !q.Lines[0].UnitRate.Equal(dec("60.00")) {
		t.Errorf("unit rate = %s, want 60.00", q.Lines[0].UnitRate)
	}
	found := 0
	for _, w := range q.Warnings {
		if w.Code == types.WarnRateAmbiguity {
			found++
		}
	}
	if found == 0 {
		t.Error("expected RATE_AMBIGUITY in the audit trail")
	}
}

func TestCalculateMixedCurrency(t *testing.T) {
	in := testInput()
	windows := in.RateTables["transfer-apt"]
	windows[0].Currency = types.CurrencyTHB
	in.RateTables["transfer-apt"] = windows

	_, err := NewEngine().Calculate(in)
	if !errors.IsType(err, errors.TypeMixedCurrency) {
		t.Fatalf("expected MIXED_CURRENCY, got %v", err)
	}
}

func TestCalculateInvalidManifest(t *testing.T) {
	in := testInput()
	in.Manifest = types.PaxManifest{{Ref: "mystery"}}

	_, err := NewEngine().Calculate(in)
	if !errors.IsType(err, errors.TypeInvalidManifest) {
		t.Fatalf("expected INVALID_MANIFEST, got %v", err)
	}
}

func TestCalculateWithVATAndCommission(t *testing.T) {
	in := testInput()
	in.VAT = &VATOptions{RatePct: dec("20"), Mode: "on_margin"}
	in.Commission = &CommissionOptions{PrimaryPct: dec("10"), PrimaryLabel: "Operator"}

	q, err := NewEngine().Calculate(in)
	if err != nil {
		t.Fatal(err)
	}
	if q.VAT == nil || q.Commissions == nil {
		t.Fatal("expected VAT and commission breakdowns")
	}

	// Margin: 600.25 - 480 = 120.25; VAT 20% -> 24.05.
	if !q.VAT.Amount.Equal(dec("24.05")) {
		t.Errorf("VAT amount = %s, want 24.05", q.VAT.Amount)
	}
	// Commission 10% of 600.25 -> 60.03 (half-up).
	if !q.Commissions.Primary.Equal(dec("60.03")) {
		t.Errorf("commission = %s, want 60.03", q.Commissions.Primary)
	}
}

func TestCalculateConcurrent(t *testing.T) {
	engine := NewEngine()
	done := make(chan *types.Quotation, 8)

	for i := 0; i < 8; i++ {
		go func() {
			q, err := engine.Calculate(testInput())
			if err != nil {
				t.Error(err)
			}
			done <- q
		}()
	}

	var first decimal.Decimal
	for i := 0; i < 8; i++ {
		q := <-done
		if q == nil {
			t.Fatal("nil quotation")
		}
		if i == 0 {
			first = q.GrandTotal
		} else if !q.GrandTotal.Equal(first) {
			t.Errorf("concurrent totals diverge: %s vs %s", q.GrandTotal, first)
		}
	}
}
