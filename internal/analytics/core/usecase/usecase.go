package usecase

import (
	"errors"
	"fmt"
	"time"

	"brand-analytics-service/internal/analytics/core/domain"
)

// Validation and authorization sentinels shared by the analytics usecases.
// Validation failures are rejected before any fetch; an ambiguous period is
// never silently defaulted.
var (
	ErrInvalidYear     = errors.New("invalid year")
	ErrInvalidMonth    = errors.New("invalid month")
	ErrAmbiguousPeriod = errors.New("month and year must be concrete for this report")
	ErrInvalidPeriod   = errors.New("invalid period")
	ErrBrandNotAllowed = errors.New("brand is not in the allowed set")
)

// Pagination describes one page of a filtered result set. Counts always
// reflect the filtered set, not the raw rows behind it.
type Pagination struct {
	CurrentPage    int
	TotalPages     int
	TotalRecords   int
	RecordsPerPage int
	HasNextPage    bool
	HasPrevPage    bool
}

const defaultPageSize = 50

// paginate clamps page/perPage and returns the slice bounds plus the
// pagination descriptor for a filtered set of total records. A negative
// perPage disables paging: everything on one page, for export callers.
func paginate(total, page, perPage int) (int, int, Pagination) {
	if perPage < 0 {
		perPage = total
		if perPage == 0 {
			perPage = 1
		}
		page = 1
	}
	if perPage == 0 {
		perPage = defaultPageSize
	}
	if page <= 0 {
		page = 1
	}

	totalPages := (total + perPage - 1) / perPage
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return start, end, Pagination{
		CurrentPage:    page,
		TotalPages:     totalPages,
		TotalRecords:   total,
		RecordsPerPage: perPage,
		HasNextPage:    page < totalPages,
		HasPrevPage:    page > 1 && total > 0,
	}
}

// checkBrandAccess enforces the caller's allowed-brand restriction. A
// requested brand outside the restriction is refused outright, never
// silently filtered away.
func checkBrandAccess(brand string, allowed []string) error {
	if brand == "" || len(allowed) == 0 {
		return nil
	}
	for _, b := range allowed {
		if b == brand {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrBrandNotAllowed, brand)
}

// PeriodRef is a caller-facing period selection: either {Year, Month} with
// Month a name or "ALL", or an explicit inclusive date range which takes
// precedence when both bounds are present.
type PeriodRef struct {
	Year      int
	Month     string
	StartDate string // "2006-01-02"
	EndDate   string
}

const dateLayout = "2006-01-02"

// resolve turns a PeriodRef into a concrete window plus the month key used
// for store-side equality filters (MonthAll when the ref is a date range).
func (p PeriodRef) resolve() (domain.PeriodWindow, int, domain.MonthKey, error) {
	if p.StartDate != "" && p.EndDate != "" {
		start, err := time.Parse(dateLayout, p.StartDate)
		if err != nil {
			return domain.PeriodWindow{}, 0, 0, fmt.Errorf("%w: start date %q", ErrInvalidPeriod, p.StartDate)
		}
		end, err := time.Parse(dateLayout, p.EndDate)
		if err != nil {
			return domain.PeriodWindow{}, 0, 0, fmt.Errorf("%w: end date %q", ErrInvalidPeriod, p.EndDate)
		}
		if end.Before(start) {
			return domain.PeriodWindow{}, 0, 0, fmt.Errorf("%w: end before start", ErrInvalidPeriod)
		}
		return domain.DateRangeWindow(start, end), 0, domain.MonthAll, nil
	}

	if p.Year <= 0 {
		return domain.PeriodWindow{}, 0, 0, fmt.Errorf("%w: %d", ErrInvalidYear, p.Year)
	}
	month, err := domain.ParseMonthKey(p.Month)
	if err != nil {
		return domain.PeriodWindow{}, 0, 0, fmt.Errorf("%w: %q", ErrInvalidMonth, p.Month)
	}
	return domain.MonthWindow(p.Year, month), p.Year, month, nil
}

// applyFirstDepositFallback repairs summaries whose period rows all lacked a
// firstDepositDate, using each user's all-time earliest deposit date. Data
// gaps are recovered here, never surfaced to the caller.
func applyFirstDepositFallback(c *domain.Cohort, earliest map[string]time.Time) {
	if len(earliest) == 0 {
		return
	}
	for _, s := range c.Summaries {
		if s.FirstDepositDate != nil {
			continue
		}
		if d, ok := earliest[s.UserKey]; ok {
			fd := d
			s.FirstDepositDate = &fd
		}
	}
}
