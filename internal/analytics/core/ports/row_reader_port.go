package ports

import (
	"context"
	"time"

	"brand-analytics-service/internal/analytics/core/domain"
)

// RowQuery is one page request against the transaction row store. Zero values
// mean "no filter". Implementations must apply a fully deterministic sort
// (date desc, then userkey asc, then id asc) so page boundaries never shift
// between requests against an unchanging dataset.
type RowQuery struct {
	Year            int             // equality on year; 0 = any
	Month           domain.MonthKey // equality on month; MonthAll = any
	Brand           string          // equality on line
	Currency        string          // equality on currency
	DateFrom        *time.Time      // date >= (inclusive)
	DateTo          *time.Time      // date <= (inclusive)
	MinDepositCases *int64          // depositCases > value
	UserKeys        []string        // IN restriction; callers keep this under the store's list ceiling

	Offset int
	Limit  int
}

// RowReaderPort is the store boundary the engine reads through.
type RowReaderPort interface {
	// QueryRows returns one page of rows matching the query.
	QueryRows(ctx context.Context, q RowQuery) ([]domain.TransactionRow, error)

	// EarliestDepositDates returns each user's all-time minimum date with
	// deposit activity, for repairing rows with a missing firstDepositDate.
	// Users with no deposit on record are absent from the result.
	EarliestDepositDates(ctx context.Context, userKeys []string) (map[string]time.Time, error)
}
