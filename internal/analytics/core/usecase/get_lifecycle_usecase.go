package usecase

import (
	"context"
	"fmt"

	"brand-analytics-service/internal/analytics/core/domain"
	"brand-analytics-service/internal/analytics/core/ports"
)

// GetLifecycleInput selects a lifecycle breakdown for a concrete month
// against its previous calendar month. Month "ALL" is rejected because the
// previous period would be undefined.
type GetLifecycleInput struct {
	Year          int
	Month         string
	Brand         string
	Currency      string
	AllowedBrands []string

	// NewDepositorPolicy: "requested" (default) keys new depositors on the
	// requested period, "previous" on the prior period.
	NewDepositorPolicy string
}

// ChurnedDetail pairs a churned user with their prior-period summary for
// export.
type ChurnedDetail struct {
	UserKey   string
	MemberAge domain.MemberAge
	Summary   *domain.UserCohortSummary
}

// LifecycleCounts are the headline numbers of the breakdown.
type LifecycleCounts struct {
	New         int
	Retained    int
	Reactivated int
	Churned     int
}

// LifecycleResult is the full classification for one month pair.
type LifecycleResult struct {
	Year      int
	Month     domain.MonthKey
	PrevYear  int
	PrevMonth domain.MonthKey
	Brand     string

	Counts      LifecycleCounts
	New         []string
	Retained    []string
	Reactivated []string
	Churned     []ChurnedDetail
}

type GetLifecycleUseCase struct {
	fetcher *BatchedFetcher
}

func NewGetLifecycleUseCase(reader ports.RowReaderPort) *GetLifecycleUseCase {
	return &GetLifecycleUseCase{fetcher: NewBatchedFetcher(reader)}
}

// Execute classifies every user active in either month: NEW, RETENTION or
// REACTIVATION within the current active set (in that precedence order), and
// CHURNED from the prior active set, sub-labeled NEW/OLD MEMBER by first
// deposit date.
func (uc *GetLifecycleUseCase) Execute(ctx context.Context, in GetLifecycleInput) (*LifecycleResult, error) {
	if in.Year <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidYear, in.Year)
	}
	month, err := domain.ParseMonthKey(in.Month)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMonth, in.Month)
	}
	if month.IsAll() {
		return nil, ErrAmbiguousPeriod
	}
	if err := checkBrandAccess(in.Brand, in.AllowedBrands); err != nil {
		return nil, err
	}

	policy := domain.NewInRequestedPeriod
	switch in.NewDepositorPolicy {
	case "", "requested":
	case "previous":
		policy = domain.NewInPreviousPeriod
	default:
		return nil, fmt.Errorf("%w: new depositor policy %q", ErrInvalidPeriod, in.NewDepositorPolicy)
	}

	prevYear, prevMonth, err := domain.PreviousMonth(in.Year, month)
	if err != nil {
		return nil, ErrAmbiguousPeriod
	}

	current, err := uc.fetchCohort(ctx, in, in.Year, month)
	if err != nil {
		return nil, err
	}
	prior, err := uc.fetchCohort(ctx, in, prevYear, prevMonth)
	if err != nil {
		return nil, err
	}

	classified := domain.ClassifyLifecycle(prior, current, policy)

	churned := make([]ChurnedDetail, 0, len(classified.Churned))
	for _, cu := range classified.Churned {
		churned = append(churned, ChurnedDetail{
			UserKey:   cu.UserKey,
			MemberAge: cu.MemberAge,
			Summary:   prior.Summaries[cu.UserKey],
		})
	}

	return &LifecycleResult{
		Year:      in.Year,
		Month:     month,
		PrevYear:  prevYear,
		PrevMonth: prevMonth,
		Brand:     in.Brand,
		Counts: LifecycleCounts{
			New:         len(classified.New),
			Retained:    len(classified.Retained),
			Reactivated: len(classified.Reactivated),
			Churned:     len(classified.Churned),
		},
		New:         classified.New,
		Retained:    classified.Retained,
		Reactivated: classified.Reactivated,
		Churned:     churned,
	}, nil
}

func (uc *GetLifecycleUseCase) fetchCohort(ctx context.Context, in GetLifecycleInput, year int, month domain.MonthKey) (*domain.Cohort, error) {
	rows, err := uc.fetcher.FetchAll(ctx, ports.RowQuery{
		Year:     year,
		Month:    month,
		Brand:    in.Brand,
		Currency: in.Currency,
	})
	if err != nil {
		return nil, err
	}

	window := domain.MonthWindow(year, month)
	cohort := domain.AggregateCohort(rows, window, domain.CohortOptions{
		Brand:         in.Brand,
		AllowedBrands: in.AllowedBrands,
	})

	if len(cohort.MissingFirstDeposit) > 0 {
		earliest, err := uc.fetcher.EarliestDepositDates(ctx, cohort.MissingFirstDeposit)
		if err == nil {
			applyFirstDepositFallback(cohort, earliest)
		}
	}

	return cohort, nil
}
