package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"dmc-quote/core/types"
)

func sample() *types.Quotation {
	return &types.Quotation{
		ID:       "q-1",
		TenantID: "dmc-siam",
		Currency: types.CurrencyEUR,
		Lines: []types.CostLine{{
			ServiceRef: "hotel-std",
			Name:       "Standard hotel",
			Nature:     types.NatureHotel,
			Quantity:   3,
			Multiplier: 2,
			UnitRate:   decimal.RequireFromString("45"),
			RawCost:    decimal.RequireFromString("270"),
			SellPrice:  decimal.RequireFromString("337.50"),
			Currency:   types.CurrencyEUR,
		}},
		Subtotals: []types.Subtotal{{
			Nature: types.NatureHotel,
			Lines:  []int{0},
			Sell:   decimal.RequireFromString("337.50"),
			Cost:   decimal.RequireFromString("270"),
		}},
		TotalCost:  decimal.RequireFromString("270"),
		GrandTotal: decimal.RequireFromString("337.50"),
		PaxCounts:  types.CategoryCounts{types.PaxAdult: 3},
	}
}

func TestTableRender(t *testing.T) {
	var buf bytes.Buffer
	if err := New(FormatTable).Render(&buf, sample()); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"Standard hotel", "337.50", "TOTAL", "per person"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestJSONRenderRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := New(FormatJSON).Render(&buf, sample()); err != nil {
		t.Fatal(err)
	}

	var decoded types.Quotation
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.ID != "q-1" || len(decoded.Lines) != 1 {
		t.Errorf("decoded quotation lost data: %+v", decoded)
	}
	if !decoded.GrandTotal.Equal(decimal.RequireFromString("337.50")) {
		t.Errorf("grand total = %s, want 337.50", decoded.GrandTotal)
	}
}
