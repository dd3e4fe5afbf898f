package domain

import (
	"fmt"
	"strings"
	"time"
)

// MonthKey is a calendar month (1..12). Some source tables store the month as a
// name ("January"), others as a numeric index; every comparison goes through
// this type instead of comparing the raw representations to each other.
type MonthKey int

// MonthAll selects the whole year instead of a single month.
const MonthAll MonthKey = 0

var monthNames = [13]string{
	"",
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// ParseMonthKey resolves a month name (case-insensitive) or "ALL".
func ParseMonthKey(s string) (MonthKey, error) {
	trimmed := strings.TrimSpace(s)
	if strings.EqualFold(trimmed, "ALL") {
		return MonthAll, nil
	}
	for i := 1; i <= 12; i++ {
		if strings.EqualFold(trimmed, monthNames[i]) {
			return MonthKey(i), nil
		}
	}
	return 0, fmt.Errorf("unknown month name: %q", s)
}

func (m MonthKey) Valid() bool {
	return m >= MonthAll && m <= 12
}

func (m MonthKey) IsAll() bool {
	return m == MonthAll
}

// Name returns the stored month-name representation ("January").
func (m MonthKey) Name() string {
	if m < 1 || m > 12 {
		return "ALL"
	}
	return monthNames[m]
}

// Index returns the numeric representation (1..12, 0 for ALL).
func (m MonthKey) Index() int {
	return int(m)
}

// PeriodWindow is a resolved inclusive [Start, End] date range. Month/year
// selections are converted to a window before any aggregation runs.
type PeriodWindow struct {
	Start time.Time
	End   time.Time
}

// MonthWindow resolves {year, month} to first/last calendar day. MonthAll
// covers the whole year.
func MonthWindow(year int, m MonthKey) PeriodWindow {
	if m.IsAll() {
		return PeriodWindow{
			Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
		}
	}
	start := time.Date(year, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
	return PeriodWindow{
		Start: start,
		End:   start.AddDate(0, 1, -1),
	}
}

// DateRangeWindow builds a window from explicit inclusive bounds.
func DateRangeWindow(start, end time.Time) PeriodWindow {
	return PeriodWindow{Start: start, End: end}
}

// Contains reports whether t falls inside the window (date precision).
func (w PeriodWindow) Contains(t time.Time) bool {
	day := t.Truncate(24 * time.Hour)
	return !day.Before(w.Start) && !day.After(w.End)
}

// PreviousMonth computes the previous calendar month, rolling the year back
// across January. Undefined for MonthAll.
func PreviousMonth(year int, m MonthKey) (int, MonthKey, error) {
	if m.IsAll() {
		return 0, 0, fmt.Errorf("previous period is undefined for month ALL")
	}
	if m < 1 || m > 12 {
		return 0, 0, fmt.Errorf("invalid month: %d", m)
	}
	if m == 1 {
		return year - 1, 12, nil
	}
	return year, m - 1, nil
}

// DaysInMonth returns the day count of the month (365/366 for MonthAll).
func DaysInMonth(year int, m MonthKey) int {
	if m.IsAll() {
		return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
	}
	first := time.Date(year, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}

// ElapsedDays returns how many days of the period have actually elapsed for
// averaging purposes. For a past month that is the full day count. For the
// month still in progress it is the day-of-month of the latest row present in
// the store, not today's day, because data can lag ingestion.
func ElapsedDays(year int, m MonthKey, latestRowDate time.Time, now time.Time) int {
	if m.IsAll() || year < now.Year() || (year == now.Year() && int(m) < int(now.Month())) {
		return DaysInMonth(year, m)
	}
	if latestRowDate.IsZero() {
		return 0
	}
	return latestRowDate.Day()
}

// DailyAverage divides a monthly total by the elapsed day count, falling back
// to the month's full day count when no day has elapsed.
func DailyAverage(total float64, elapsedDays, fullDays int) float64 {
	days := elapsedDays
	if days <= 0 {
		days = fullDays
	}
	if days <= 0 {
		return 0
	}
	return total / float64(days)
}

// MoMChange returns the month-over-month percentage delta. A zero previous
// value yields +100% when the current value is positive, otherwise 0%.
func MoMChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}
