package season

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"dmc-quote/core/types"
	"dmc-quote/internal/errors"
)

func window(startDay, endDay int, rate string) types.SeasonWindow {
	return types.SeasonWindow{
		Start:    types.NewDate(2026, time.August, startDay),
		End:      types.NewDate(2026, time.August, endDay),
		Rate:     decimal.RequireFromString(rate),
		Currency: types.CurrencyEUR,
	}
}

func TestSelectRate(t *testing.T) {
	windows := []types.SeasonWindow{
		window(1, 10, "45.00"),
		window(11, 20, "60.00"),
	}

	rate, currency, warnings, err := SelectRate("hotel-std", types.NewDate(2026, time.August, 15), windows)
	if err != nil {
		t.Fatalf("SelectRate returned error: %v", err)
	}
	if !rate.Equal(decimal.RequireFromString("60.00")) {
		t.Errorf("rate = %s, want 60.00", rate)
	}
	if currency != types.CurrencyEUR {
		t.Errorf("currency = %s, want EUR", currency)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestSelectRateDeterministic(t *testing.T) {
	windows := []types.SeasonWindow{window(1, 10, "45.00"), window(11, 20, "60.00")}
	on := types.NewDate(2026, time.August, 5)

	first, _, _, err := SelectRate("hotel-std", on, windows)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, _, _, err := SelectRate("hotel-std", on, windows)
		if err != nil {
			t.Fatal(err)
		}
		if !again.Equal(first) {
			t.Fatalf("lookup not deterministic: %s vs %s", again, first)
		}
	}
}

func TestSelectRateBoundaries(t *testing.T) {
	windows := []types.SeasonWindow{window(1, 10, "45.00")}

	for _, day := range []int{1, 10} {
		rate, _, _, err := SelectRate("hotel-std", types.NewDate(2026, time.August, day), windows)
		if err != nil {
			t.Fatalf("day %d: %v", day, err)
		}
		if !rate.Equal(decimal.RequireFromString("45.00")) {
			t.Errorf("day %d: rate = %s, want 45.00", day, rate)
		}
	}
}

func TestSelectRateGapIsFatal(t *testing.T) {
	windows := []types.SeasonWindow{window(1, 10, "45.00")}

	_, _, _, err := SelectRate("hotel-std", types.NewDate(2026, time.August, 11), windows)
	if !errors.IsType(err, errors.TypeNoRateForDate) {
		t.Fatalf("expected NO_RATE_FOR_DATE, got %v", err)
	}

	_, _, _, err = SelectRate("hotel-std", types.NewDate(2026, time.August, 11), nil)
	if !errors.IsType(err, errors.TypeNoRateForDate) {
		t.Fatalf("empty table: expected NO_RATE_FOR_DATE, got %v", err)
	}
}

func TestSelectRateOverlapPicksLatestStart(t *testing.T) {
	windows := []types.SeasonWindow{
		window(1, 20, "45.00"),
		window(10, 25, "60.00"),
	}

	rate, _, warnings, err := SelectRate("hotel-std", types.NewDate(2026, time.August, 15), windows)
	if err != nil {
		t.Fatalf("overlap must not be fatal: %v", err)
	}
	if !rate.Equal(decimal.RequireFromString("60.00")) {
		t.Errorf("rate = %s, want the later window's 60.00", rate)
	}
	if len(warnings) != 1 || warnings[0].Code != types.WarnRateAmbiguity {
		t.Errorf("expected one RATE_AMBIGUITY warning, got %v", warnings)
	}
}

func TestValidateWindows(t *testing.T) {
	t.Run("overlap warns", func(t *testing.T) {
		warnings, err := ValidateWindows("hotel-std", []types.SeasonWindow{
			window(1, 15, "45.00"),
			window(10, 20, "60.00"),
		})
		if err != nil {
			t.Fatalf("overlap must be non-fatal: %v", err)
		}
		if len(warnings) != 1 || warnings[0].Code != types.WarnRateAmbiguity {
			t.Errorf("expected one RATE_AMBIGUITY warning, got %v", warnings)
		}
	})

	t.Run("inverted window is fatal", func(t *testing.T) {
		_, err := ValidateWindows("hotel-std", []types.SeasonWindow{window(10, 5, "45.00")})
		if !errors.IsType(err, errors.TypeInvalidInput) {
			t.Fatalf("expected INVALID_INPUT, got %v", err)
		}
	})

	t.Run("negative rate is fatal", func(t *testing.T) {
		_, err := ValidateWindows("hotel-std", []types.SeasonWindow{window(1, 5, "-1.00")})
		if !errors.IsType(err, errors.TypeInvalidInput) {
			t.Fatalf("expected INVALID_INPUT, got %v", err)
		}
	})

	t.Run("gap between windows is allowed", func(t *testing.T) {
		warnings, err := ValidateWindows("hotel-std", []types.SeasonWindow{
			window(1, 5, "45.00"),
			window(10, 20, "60.00"),
		})
		if err != nil || len(warnings) != 0 {
			t.Fatalf("gap must validate cleanly, got %v %v", warnings, err)
		}
	})
}
