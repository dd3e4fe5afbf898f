package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"brand-analytics-service/internal/analytics/core/domain"
	"brand-analytics-service/internal/analytics/core/usecase"
)

func summaryRow(user, brand string, date time.Time, cases int64, amount, withdraw float64) domain.TransactionRow {
	return domain.TransactionRow{
		ID:             user + date.Format("20060102"),
		UserKey:        user,
		Line:           brand,
		Date:           date,
		Year:           date.Year(),
		Month:          date.Month().String(),
		DepositCases:   cases,
		DepositAmount:  amount,
		WithdrawCases:  1,
		WithdrawAmount: withdraw,
	}
}

// ------------------------------------------------------------
// Validation
// ------------------------------------------------------------

func TestGetSummary_Validation(t *testing.T) {
	uc := usecase.NewGetSummaryUseCase(&fakeRowReader{})

	_, err := uc.Execute(context.Background(), usecase.GetSummaryInput{Year: 0, Month: "June"})
	if !errors.Is(err, usecase.ErrInvalidYear) {
		t.Fatalf("expected ErrInvalidYear, got %v", err)
	}

	_, err = uc.Execute(context.Background(), usecase.GetSummaryInput{Year: 2024, Month: "Juin"})
	if !errors.Is(err, usecase.ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}

func TestGetSummary_BrandNotAllowed(t *testing.T) {
	reader := &fakeRowReader{}
	uc := usecase.NewGetSummaryUseCase(reader)

	_, err := uc.Execute(context.Background(), usecase.GetSummaryInput{
		Year:          2024,
		Month:         "June",
		Brand:         "gamma",
		AllowedBrands: []string{"alpha", "beta"},
	})
	if !errors.Is(err, usecase.ErrBrandNotAllowed) {
		t.Fatalf("expected ErrBrandNotAllowed, got %v", err)
	}
	// refusal happens before any fetch
	if len(reader.queries) != 0 {
		t.Fatalf("expected no queries, got %d", len(reader.queries))
	}
}

// ------------------------------------------------------------
// KPI derivation
// ------------------------------------------------------------

func TestGetSummary_KPIsAndMoM(t *testing.T) {
	reader := &fakeRowReader{rows: []domain.TransactionRow{
		// June 2024: 300 deposited, 100 withdrawn
		summaryRow("u1", "alpha", time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), 2, 200, 60),
		summaryRow("u2", "alpha", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), 1, 100, 40),
		// May 2024: 200 deposited, 100 withdrawn
		summaryRow("u1", "alpha", time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC), 1, 200, 100),
	}}
	uc := usecase.NewGetSummaryUseCase(reader)

	res, err := uc.Execute(context.Background(), usecase.GetSummaryInput{Year: 2024, Month: "June"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	k := res.KPIs
	if k.ActiveUsers != 2 || k.DepositCases != 3 || k.DepositAmount != 300 {
		t.Fatalf("period totals wrong: %+v", k)
	}
	if k.GGR != 200 {
		t.Fatalf("GGR = %f, want 200", k.GGR)
	}
	if k.ATV != 100 {
		t.Fatalf("ATV = %f, want 100", k.ATV)
	}

	// MoM against May: deposits 300 vs 200 → +50%; GGR 200 vs 100 → +100%
	if k.MoMDepositAmount != 50 {
		t.Fatalf("MoM deposit = %f, want 50", k.MoMDepositAmount)
	}
	if k.MoMGGR != 100 {
		t.Fatalf("MoM GGR = %f, want 100", k.MoMGGR)
	}
	if k.MoMActiveUsers != 100 { // 2 vs 1
		t.Fatalf("MoM active users = %f, want 100", k.MoMActiveUsers)
	}

	// June 2024 fully elapsed: daily averages over 30 days
	if k.ElapsedDays != 30 {
		t.Fatalf("elapsed days = %d, want 30", k.ElapsedDays)
	}
	if k.DailyAvgDeposit != 10 {
		t.Fatalf("daily avg deposit = %f, want 10", k.DailyAvgDeposit)
	}
}

func TestGetSummary_EmptyPeriodIsNotAnError(t *testing.T) {
	uc := usecase.NewGetSummaryUseCase(&fakeRowReader{})

	res, err := uc.Execute(context.Background(), usecase.GetSummaryInput{Year: 2024, Month: "June"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.KPIs.ActiveUsers != 0 || len(res.Users) != 0 {
		t.Fatalf("expected zeroed result, got %+v", res)
	}
	if res.Pagination.TotalRecords != 0 {
		t.Fatalf("total records = %d, want 0", res.Pagination.TotalRecords)
	}
}

// ------------------------------------------------------------
// Pagination over the filtered set
// ------------------------------------------------------------

func TestGetSummary_Pagination(t *testing.T) {
	var rows []domain.TransactionRow
	for i := 0; i < 23; i++ {
		rows = append(rows, summaryRow(
			string(rune('a'+i)), "alpha",
			time.Date(2024, 6, 1+i%28, 0, 0, 0, 0, time.UTC),
			1, float64(100+i), 0,
		))
	}
	uc := usecase.NewGetSummaryUseCase(&fakeRowReader{rows: rows})

	res, err := uc.Execute(context.Background(), usecase.GetSummaryInput{
		Year: 2024, Month: "June", Page: 2, PageSize: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := res.Pagination
	if p.TotalRecords != 23 || p.TotalPages != 3 || p.CurrentPage != 2 {
		t.Fatalf("pagination wrong: %+v", p)
	}
	if !p.HasNextPage || !p.HasPrevPage {
		t.Fatalf("page flags wrong: %+v", p)
	}
	if len(res.Users) != 10 {
		t.Fatalf("page size = %d, want 10", len(res.Users))
	}

	// sorted by deposit amount descending; page 2 starts at the 11th largest
	if res.Users[0].DepositAmount != 112 {
		t.Fatalf("page 2 first amount = %f, want 112", res.Users[0].DepositAmount)
	}
}

// ------------------------------------------------------------
// First-deposit fallback
// ------------------------------------------------------------

func TestGetSummary_FirstDepositFallback(t *testing.T) {
	fallback := time.Date(2023, 2, 14, 0, 0, 0, 0, time.UTC)
	reader := &fakeRowReader{
		rows: []domain.TransactionRow{
			summaryRow("u1", "alpha", time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), 1, 100, 0),
		},
		earliest: map[string]time.Time{"u1": fallback},
	}
	uc := usecase.NewGetSummaryUseCase(reader)

	res, err := uc.Execute(context.Background(), usecase.GetSummaryInput{Year: 2024, Month: "June"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Users) != 1 {
		t.Fatalf("users = %d, want 1", len(res.Users))
	}
	fd := res.Users[0].FirstDepositDate
	if fd == nil || !fd.Equal(fallback) {
		t.Fatalf("first deposit = %v, want %v", fd, fallback)
	}
}
