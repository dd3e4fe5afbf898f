package domain_test

import (
	"testing"
	"time"

	"brand-analytics-service/internal/analytics/core/domain"
)

// ------------------------------------------------------------
// MonthKey parsing
// ------------------------------------------------------------

func TestParseMonthKey(t *testing.T) {
	cases := []struct {
		in      string
		want    domain.MonthKey
		wantErr bool
	}{
		{"January", 1, false},
		{"january", 1, false},
		{"DECEMBER", 12, false},
		{" March ", 3, false},
		{"ALL", domain.MonthAll, false},
		{"all", domain.MonthAll, false},
		{"Janvier", 0, true},
		{"", 0, true},
		{"13", 0, true},
	}

	for _, c := range cases {
		got, err := domain.ParseMonthKey(c.in)
		if c.wantErr {
			if err == nil {
				t.Fatalf("ParseMonthKey(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseMonthKey(%q): unexpected error: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseMonthKey(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestMonthKeyRoundTrip(t *testing.T) {
	for i := 1; i <= 12; i++ {
		m := domain.MonthKey(i)
		back, err := domain.ParseMonthKey(m.Name())
		if err != nil {
			t.Fatalf("round trip %d: %v", i, err)
		}
		if back.Index() != i {
			t.Fatalf("round trip %d: got %d", i, back.Index())
		}
	}
}

// ------------------------------------------------------------
// Window resolution
// ------------------------------------------------------------

func TestMonthWindow(t *testing.T) {
	w := domain.MonthWindow(2026, 2)
	if w.Start.Day() != 1 || w.Start.Month() != time.February {
		t.Fatalf("unexpected start: %v", w.Start)
	}
	if w.End.Day() != 28 || w.End.Month() != time.February {
		t.Fatalf("unexpected end: %v", w.End)
	}

	// leap year
	w = domain.MonthWindow(2024, 2)
	if w.End.Day() != 29 {
		t.Fatalf("leap february end = %d, want 29", w.End.Day())
	}

	// ALL covers the whole year
	w = domain.MonthWindow(2026, domain.MonthAll)
	if w.Start.Month() != time.January || w.End.Month() != time.December || w.End.Day() != 31 {
		t.Fatalf("unexpected ALL window: %v .. %v", w.Start, w.End)
	}
}

func TestPeriodWindowContains(t *testing.T) {
	w := domain.MonthWindow(2026, 6)
	if !w.Contains(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected first day inside")
	}
	if !w.Contains(time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected last day inside")
	}
	if w.Contains(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected next month outside")
	}
}

// ------------------------------------------------------------
// Previous period
// ------------------------------------------------------------

func TestPreviousMonth(t *testing.T) {
	year, month, err := domain.PreviousMonth(2026, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if year != 2026 || month != 4 {
		t.Fatalf("got %d/%d, want 2026/4", year, month)
	}

	// January rolls the year back
	year, month, err = domain.PreviousMonth(2026, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if year != 2025 || month != 12 {
		t.Fatalf("got %d/%d, want 2025/12", year, month)
	}

	if _, _, err := domain.PreviousMonth(2026, domain.MonthAll); err == nil {
		t.Fatalf("expected error for ALL")
	}
}

// ------------------------------------------------------------
// Elapsed days and daily average
// ------------------------------------------------------------

func TestElapsedDays(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	// past month: full day count, whatever the latest row says
	latest := time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC)
	if got := domain.ElapsedDays(2026, 7, latest, now); got != 31 {
		t.Fatalf("past month elapsed = %d, want 31", got)
	}

	// current month: day of the latest row present, not today's day
	latest = time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC)
	if got := domain.ElapsedDays(2026, 8, latest, now); got != 14 {
		t.Fatalf("current month elapsed = %d, want 14", got)
	}

	// current month without rows
	if got := domain.ElapsedDays(2026, 8, time.Time{}, now); got != 0 {
		t.Fatalf("empty month elapsed = %d, want 0", got)
	}
}

func TestDailyAverage(t *testing.T) {
	if got := domain.DailyAverage(300, 10, 31); got != 30 {
		t.Fatalf("got %f, want 30", got)
	}
	// zero elapsed falls back to the full day count
	if got := domain.DailyAverage(310, 0, 31); got != 10 {
		t.Fatalf("got %f, want 10", got)
	}
	if got := domain.DailyAverage(100, 0, 0); got != 0 {
		t.Fatalf("got %f, want 0", got)
	}
}

// ------------------------------------------------------------
// MoM
// ------------------------------------------------------------

func TestMoMChange(t *testing.T) {
	if got := domain.MoMChange(0, 0); got != 0 {
		t.Fatalf("MoM(0,0) = %f, want 0", got)
	}
	if got := domain.MoMChange(5, 0); got != 100 {
		t.Fatalf("MoM(5,0) = %f, want 100", got)
	}
	if got := domain.MoMChange(150, 100); got != 50 {
		t.Fatalf("MoM(150,100) = %f, want 50", got)
	}
	if got := domain.MoMChange(50, 100); got != -50 {
		t.Fatalf("MoM(50,100) = %f, want -50", got)
	}
}
