package vat

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeOnMargin(t *testing.T) {
	got, err := Compute(dec("1000"), dec("1300"), Config{RatePct: dec("20"), Mode: ModeOnMargin})
	if err != nil {
		t.Fatal(err)
	}

	if !got.Margin.Equal(dec("300.00")) {
		t.Errorf("margin = %s, want 300.00", got.Margin)
	}
	if !got.Base.Equal(dec("300.00")) {
		t.Errorf("base = %s, want 300.00", got.Base)
	}
	if !got.Amount.Equal(dec("60.00")) {
		t.Errorf("amount = %s, want 60.00", got.Amount)
	}
	if !got.PriceTTC.Equal(dec("1360.00")) {
		t.Errorf("price TTC = %s, want 1360.00", got.PriceTTC)
	}
}

func TestComputeOnSellingPrice(t *testing.T) {
	cfg := Config{
		RatePct:              dec("10"),
		Mode:                 ModeOnSellingPrice,
		PrimaryCommissionPct: dec("11.5"),
	}
	got, err := Compute(dec("1000"), dec("1300"), cfg)
	if err != nil {
		t.Fatal(err)
	}

	// Commission 149.50, base 1150.50, VAT 115.05.
	if !got.Base.Equal(dec("1150.50")) {
		t.Errorf("base = %s, want 1150.50", got.Base)
	}
	if !got.Amount.Equal(dec("115.05")) {
		t.Errorf("amount = %s, want 115.05", got.Amount)
	}
}

func TestComputeRecoverableNetting(t *testing.T) {
	t.Run("recoverable reduces net VAT", func(t *testing.T) {
		got, err := Compute(dec("1000"), dec("1300"),
			Config{RatePct: dec("20"), Recoverable: dec("25")})
		if err != nil {
			t.Fatal(err)
		}
		if !got.Net.Equal(dec("35.00")) {
			t.Errorf("net = %s, want 35.00", got.Net)
		}
	})

	t.Run("net VAT floors at zero", func(t *testing.T) {
		got, err := Compute(dec("1000"), dec("1300"),
			Config{RatePct: dec("20"), Recoverable: dec("90")})
		if err != nil {
			t.Fatal(err)
		}
		if !got.Net.IsZero() {
			t.Errorf("net = %s, want 0", got.Net)
		}
		if !got.PriceTTC.Equal(dec("1300.00")) {
			t.Errorf("price TTC = %s, want 1300.00", got.PriceTTC)
		}
	})
}

func TestComputeRejectsBadConfig(t *testing.T) {
	if _, err := Compute(dec("1"), dec("2"), Config{RatePct: dec("-1")}); err == nil {
		t.Error("expected error for negative rate")
	}
	if _, err := Compute(dec("1"), dec("2"), Config{RatePct: dec("20"), Mode: "reverse_charge"}); err == nil {
		t.Error("expected error for unknown mode")
	}
}
