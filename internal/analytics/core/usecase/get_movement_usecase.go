package usecase

import (
	"context"

	"brand-analytics-service/internal/analytics/core/domain"
	"brand-analytics-service/internal/analytics/core/ports"
)

// GetMovementInput selects a tier-movement diff from period A to period B.
// The two periods may be arbitrary (month selections or date ranges) but are
// scoped by the same brand/currency filters.
type GetMovementInput struct {
	From          PeriodRef
	To            PeriodRef
	Brand         string
	Currency      string
	AllowedBrands []string

	Page     int
	PageSize int
}

// MovementSummary is the aggregate side of the diff.
type MovementSummary struct {
	GrandTotal int
	TotalIn    [8]int
	TotalOut   [8]int
	Upgraded   int
	Downgraded int
	Stable     int
	New        int
	Churned    int
}

// MovementOutput is one page of per-user movement records plus the matrix and
// top-mover lists.
type MovementOutput struct {
	Brand         string
	Movements     []domain.MovementRecord
	Matrix        domain.TransitionMatrix
	Summary       MovementSummary
	TopUpgrades   []domain.MovementRecord
	TopDowngrades []domain.MovementRecord
	Pagination    Pagination
}

type GetMovementUseCase struct {
	fetcher *BatchedFetcher
}

func NewGetMovementUseCase(reader ports.RowReaderPort) *GetMovementUseCase {
	return &GetMovementUseCase{fetcher: NewBatchedFetcher(reader)}
}

// Execute assigns each user a tier per period and diffs the two assignments.
// Exactly one movement record is produced per user appearing in either
// period.
func (uc *GetMovementUseCase) Execute(ctx context.Context, in GetMovementInput) (*MovementOutput, error) {
	if err := checkBrandAccess(in.Brand, in.AllowedBrands); err != nil {
		return nil, err
	}

	fromTiers, err := uc.fetchTiers(ctx, in, in.From)
	if err != nil {
		return nil, err
	}
	toTiers, err := uc.fetchTiers(ctx, in, in.To)
	if err != nil {
		return nil, err
	}

	result := domain.CalculateMovement(fromTiers, toTiers)

	summary := MovementSummary{
		GrandTotal: result.Matrix.GrandTotal,
		TotalIn:    result.Matrix.TotalIn,
		TotalOut:   result.Matrix.TotalOut,
	}
	for _, m := range result.Movements {
		switch m.Type {
		case domain.MovementUpgrade:
			summary.Upgraded++
		case domain.MovementDowngrade:
			summary.Downgraded++
		case domain.MovementStable:
			summary.Stable++
		case domain.MovementNew:
			summary.New++
		case domain.MovementChurned:
			summary.Churned++
		}
	}

	start, end, pagination := paginate(len(result.Movements), in.Page, in.PageSize)

	return &MovementOutput{
		Brand:         in.Brand,
		Movements:     result.Movements[start:end],
		Matrix:        result.Matrix,
		Summary:       summary,
		TopUpgrades:   result.TopUpgrades,
		TopDowngrades: result.TopDowngrades,
		Pagination:    pagination,
	}, nil
}

// fetchTiers aggregates one period and returns its {userkey → tier} mapping.
func (uc *GetMovementUseCase) fetchTiers(ctx context.Context, in GetMovementInput, ref PeriodRef) (map[string]int, error) {
	window, year, month, err := ref.resolve()
	if err != nil {
		return nil, err
	}

	q := ports.RowQuery{Brand: in.Brand, Currency: in.Currency}
	if year > 0 {
		q.Year = year
		q.Month = month
	} else {
		from, to := window.Start, window.End
		q.DateFrom = &from
		q.DateTo = &to
	}

	rows, err := uc.fetcher.FetchAll(ctx, q)
	if err != nil {
		return nil, err
	}

	cohort := domain.AggregateCohort(rows, window, domain.CohortOptions{
		Brand:         in.Brand,
		AllowedBrands: in.AllowedBrands,
	})
	return cohort.TierAssignments(), nil
}
