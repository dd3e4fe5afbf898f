package domain_test

import (
	"testing"

	"brand-analytics-service/internal/analytics/core/domain"
)

func TestMetricFormulas(t *testing.T) {
	if got := domain.ATV(500, 10); got != 50 {
		t.Fatalf("ATV = %f, want 50", got)
	}
	if got := domain.PurchaseFrequency(20, 5); got != 4 {
		t.Fatalf("PF = %f, want 4", got)
	}
	if got := domain.GGR(1000, 400); got != 600 {
		t.Fatalf("GGR = %f, want 600", got)
	}
	if got := domain.NetProfit(1000, 50, 20, 400); got != 630 {
		t.Fatalf("NetProfit = %f, want 630", got)
	}
	if got := domain.WinratePct(1000, 400); got != 60 {
		t.Fatalf("Winrate = %f, want 60", got)
	}
	if got := domain.WithdrawalRatePct(5, 20); got != 25 {
		t.Fatalf("WithdrawalRate = %f, want 25", got)
	}
	if got := domain.HoldPct(50, 1000); got != 5 {
		t.Fatalf("Hold = %f, want 5", got)
	}
	if got := domain.ConversionRatePct(30, 120); got != 25 {
		t.Fatalf("ConversionRate = %f, want 25", got)
	}
}

// Every formula must yield 0 on a zero denominator, never NaN or Inf.
func TestMetricZeroDenominators(t *testing.T) {
	checks := map[string]float64{
		"ATV":            domain.ATV(500, 0),
		"PF":             domain.PurchaseFrequency(20, 0),
		"Winrate":        domain.WinratePct(0, 400),
		"WithdrawalRate": domain.WithdrawalRatePct(5, 0),
		"Hold":           domain.HoldPct(50, 0),
		"ConversionRate": domain.ConversionRatePct(30, 0),
	}
	for name, got := range checks {
		if got != 0 {
			t.Fatalf("%s with zero denominator = %f, want 0", name, got)
		}
	}
}
