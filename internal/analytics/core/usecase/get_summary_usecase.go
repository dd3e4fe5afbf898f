package usecase

import (
	"context"
	"fmt"
	"time"

	"brand-analytics-service/internal/analytics/core/domain"
	"brand-analytics-service/internal/analytics/core/ports"
)

// GetSummaryInput selects a brand/period KPI summary.
type GetSummaryInput struct {
	Year          int
	Month         string // name or "ALL"
	Brand         string
	Currency      string
	AllowedBrands []string

	Page     int
	PageSize int
}

// SummaryKPIs are the period totals and derived metrics for the grouping.
type SummaryKPIs struct {
	ActiveUsers    int
	DepositCases   int64
	DepositAmount  float64
	WithdrawCases  int64
	WithdrawAmount float64
	NetProfit      float64
	Bonus          float64

	GGR               float64
	ATV               float64
	PurchaseFrequency float64
	WinratePct        float64
	WithdrawalRatePct float64
	HoldPct           float64

	ElapsedDays     int
	DailyAvgDeposit float64
	DailyAvgGGR     float64

	MoMDepositAmount float64
	MoMGGR           float64
	MoMNetProfit     float64
	MoMActiveUsers   float64
}

// SummaryResult is one page of per-user summaries plus the period KPIs.
type SummaryResult struct {
	Year       int
	Month      domain.MonthKey
	Brand      string
	KPIs       SummaryKPIs
	Users      []*domain.UserCohortSummary
	Pagination Pagination
}

type GetSummaryUseCase struct {
	fetcher *BatchedFetcher
	now     func() time.Time
}

func NewGetSummaryUseCase(reader ports.RowReaderPort) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		fetcher: NewBatchedFetcher(reader),
		now:     time.Now,
	}
}

// Execute validates the input, aggregates the period cohort and derives the
// KPI set, including month-over-month deltas against the previous calendar
// month and daily averages prorated by elapsed days.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, in GetSummaryInput) (*SummaryResult, error) {
	if in.Year <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidYear, in.Year)
	}
	month, err := domain.ParseMonthKey(in.Month)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMonth, in.Month)
	}
	if err := checkBrandAccess(in.Brand, in.AllowedBrands); err != nil {
		return nil, err
	}

	window := domain.MonthWindow(in.Year, month)
	opts := domain.CohortOptions{Brand: in.Brand, AllowedBrands: in.AllowedBrands}

	rows, err := uc.fetcher.FetchAll(ctx, ports.RowQuery{
		Year:     in.Year,
		Month:    month,
		Brand:    in.Brand,
		Currency: in.Currency,
	})
	if err != nil {
		return nil, err
	}

	cohort := domain.AggregateCohort(rows, window, opts)
	if len(cohort.MissingFirstDeposit) > 0 {
		earliest, err := uc.fetcher.EarliestDepositDates(ctx, cohort.MissingFirstDeposit)
		if err == nil {
			applyFirstDepositFallback(cohort, earliest)
		}
	}

	totals := cohort.Totals()
	kpis := deriveKPIs(totals)

	latest := domain.LatestRowDate(rows, window)
	kpis.ElapsedDays = domain.ElapsedDays(in.Year, month, latest, uc.now())
	fullDays := domain.DaysInMonth(in.Year, month)
	kpis.DailyAvgDeposit = domain.DailyAverage(totals.DepositAmount, kpis.ElapsedDays, fullDays)
	kpis.DailyAvgGGR = domain.DailyAverage(kpis.GGR, kpis.ElapsedDays, fullDays)

	if !month.IsAll() {
		uc.applyMoM(ctx, in, month, &kpis, totals)
	}

	sorted := cohort.SortedSummaries()
	start, end, pagination := paginate(len(sorted), in.Page, in.PageSize)

	return &SummaryResult{
		Year:       in.Year,
		Month:      month,
		Brand:      in.Brand,
		KPIs:       kpis,
		Users:      sorted[start:end],
		Pagination: pagination,
	}, nil
}

// applyMoM fetches the previous calendar month and fills the delta fields.
// A failed previous-period fetch leaves the deltas at zero; the current
// period's numbers are still valid on their own.
func (uc *GetSummaryUseCase) applyMoM(ctx context.Context, in GetSummaryInput, month domain.MonthKey, kpis *SummaryKPIs, totals domain.CohortTotals) {
	prevYear, prevMonth, err := domain.PreviousMonth(in.Year, month)
	if err != nil {
		return
	}

	prevRows, err := uc.fetcher.FetchAll(ctx, ports.RowQuery{
		Year:     prevYear,
		Month:    prevMonth,
		Brand:    in.Brand,
		Currency: in.Currency,
	})
	if err != nil {
		return
	}

	prevWindow := domain.MonthWindow(prevYear, prevMonth)
	prevTotals := domain.AggregateCohort(prevRows, prevWindow, domain.CohortOptions{
		Brand:         in.Brand,
		AllowedBrands: in.AllowedBrands,
	}).Totals()

	kpis.MoMDepositAmount = domain.MoMChange(totals.DepositAmount, prevTotals.DepositAmount)
	kpis.MoMGGR = domain.MoMChange(
		domain.GGR(totals.DepositAmount, totals.WithdrawAmount),
		domain.GGR(prevTotals.DepositAmount, prevTotals.WithdrawAmount),
	)
	kpis.MoMNetProfit = domain.MoMChange(totals.NetProfit, prevTotals.NetProfit)
	kpis.MoMActiveUsers = domain.MoMChange(float64(totals.Users), float64(prevTotals.Users))
}

func deriveKPIs(t domain.CohortTotals) SummaryKPIs {
	return SummaryKPIs{
		ActiveUsers:    t.Users,
		DepositCases:   t.DepositCases,
		DepositAmount:  t.DepositAmount,
		WithdrawCases:  t.WithdrawCases,
		WithdrawAmount: t.WithdrawAmount,
		NetProfit:      t.NetProfit,
		Bonus:          t.Bonus,

		GGR:               domain.GGR(t.DepositAmount, t.WithdrawAmount),
		ATV:               domain.ATV(t.DepositAmount, t.DepositCases),
		PurchaseFrequency: domain.PurchaseFrequency(t.DepositCases, t.ActiveDays),
		WinratePct:        domain.WinratePct(t.DepositAmount, t.WithdrawAmount),
		WithdrawalRatePct: domain.WithdrawalRatePct(t.WithdrawCases, t.DepositCases),
		HoldPct:           domain.HoldPct(t.NetProfit, t.ValidBetAmount),
	}
}
