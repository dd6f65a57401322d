package service

import (
	"errors"
	"testing"
)

func TestGetRatesDefaults(t *testing.T) {
	env := newTestEnv(t, "settings_defaults")

	rates, err := env.settings.GetRates()
	if err != nil {
		t.Fatalf("get rates failed: %v", err)
	}
	assertDecimalEqual(t, "default tax pct", rates.TaxPct, "0.05")
	assertDecimalEqual(t, "default expense pct", rates.ExpensePct, "0.035")
}

func TestSetRatesRoundtrip(t *testing.T) {
	env := newTestEnv(t, "settings_roundtrip")

	saved, err := env.settings.SetRates(Rates{
		TaxPct:     dec(t, "0.08"),
		ExpensePct: dec(t, "0.02"),
	})
	if err != nil {
		t.Fatalf("set rates failed: %v", err)
	}
	assertDecimalEqual(t, "saved tax pct", saved.TaxPct, "0.08")

	loaded, err := env.settings.GetRates()
	if err != nil {
		t.Fatalf("get rates failed: %v", err)
	}
	assertDecimalEqual(t, "loaded tax pct", loaded.TaxPct, "0.08")
	assertDecimalEqual(t, "loaded expense pct", loaded.ExpensePct, "0.02")
}

func TestSetRatesValidation(t *testing.T) {
	env := newTestEnv(t, "settings_validation")

	_, err := env.settings.SetRates(Rates{
		TaxPct:     dec(t, "-0.01"),
		ExpensePct: dec(t, "0.02"),
	})
	if !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate for negative rate, got %v", err)
	}

	_, err = env.settings.SetRates(Rates{
		TaxPct:     dec(t, "0.05"),
		ExpensePct: dec(t, "1.5"),
	})
	if !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate for rate above 1, got %v", err)
	}
}
