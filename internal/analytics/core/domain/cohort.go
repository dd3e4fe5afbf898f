package domain

import (
	"sort"
	"time"
)

// UserCohortSummary is one user's aggregate for one period window.
type UserCohortSummary struct {
	UserKey           string
	UniqueCode        string
	Line              string
	DepositCases      int64
	DepositAmount     float64
	WithdrawCases     int64
	WithdrawAmount    float64
	AddTransaction    float64
	DeductTransaction float64
	ValidBetAmount    float64
	NetProfit         float64
	Bonus             float64
	ActiveDays        int
	FirstDepositDate  *time.Time
	LastDepositDate   *time.Time
	Tier              int
}

// CohortOptions scopes an aggregation run.
type CohortOptions struct {
	Brand         string   // restrict to one brand; empty = all
	AllowedBrands []string // access scope; empty = unrestricted
	PerBrand      bool     // key summaries by user+brand instead of user
}

// Cohort holds the aggregation result for one period window.
type Cohort struct {
	Window    PeriodWindow
	Summaries map[string]*UserCohortSummary

	// MissingFirstDeposit lists users whose rows all carried a null/blank
	// firstDepositDate; callers repair these via an all-time lookup.
	MissingFirstDeposit []string
}

// AggregateCohort reduces raw rows to one summary per user (or user+brand)
// for the window. Rows outside the window or the brand scope are skipped;
// rows with a blank userkey are discarded. No row is ever counted twice, so
// per-field sums across all summaries equal the raw-row sums for the window.
func AggregateCohort(rows []TransactionRow, window PeriodWindow, opts CohortOptions) *Cohort {
	allowed := map[string]bool{}
	for _, b := range opts.AllowedBrands {
		allowed[b] = true
	}

	summaries := map[string]*UserCohortSummary{}
	activeDates := map[string]map[string]bool{}
	labels := map[string][]string{}
	sawFirstDeposit := map[string]bool{}

	for i := range rows {
		row := &rows[i]
		if row.UserKey == "" {
			continue
		}
		if !window.Contains(row.Date) {
			continue
		}
		if opts.Brand != "" && row.Line != opts.Brand {
			continue
		}
		if len(allowed) > 0 && !allowed[row.Line] {
			continue
		}

		key := row.UserKey
		if opts.PerBrand {
			key = row.UserKey + "|" + row.Line
		}

		s, ok := summaries[key]
		if !ok {
			s = &UserCohortSummary{
				UserKey:    row.UserKey,
				UniqueCode: row.UniqueCode,
				Line:       row.Line,
			}
			summaries[key] = s
			activeDates[key] = map[string]bool{}
		}

		s.DepositCases += row.DepositCases
		s.DepositAmount += row.DepositAmount
		s.WithdrawCases += row.WithdrawCases
		s.WithdrawAmount += row.WithdrawAmount
		s.AddTransaction += row.AddTransaction
		s.DeductTransaction += row.DeductTransaction
		s.ValidBetAmount += row.ValidBetAmount
		s.NetProfit += row.NetProfit
		s.Bonus += row.Bonus
		if s.UniqueCode == "" {
			s.UniqueCode = row.UniqueCode
		}

		if row.DepositCases > 0 {
			activeDates[key][row.Date.Format("2006-01-02")] = true
		}
		if row.FirstDepositDate != nil {
			sawFirstDeposit[key] = true
			if s.FirstDepositDate == nil || row.FirstDepositDate.Before(*s.FirstDepositDate) {
				fd := *row.FirstDepositDate
				s.FirstDepositDate = &fd
			}
		}
		if row.LastDepositDate != nil {
			if s.LastDepositDate == nil || row.LastDepositDate.After(*s.LastDepositDate) {
				ld := *row.LastDepositDate
				s.LastDepositDate = &ld
			}
		}
		if row.TierLabel != "" {
			labels[key] = append(labels[key], row.TierLabel)
		}
	}

	cohort := &Cohort{Window: window, Summaries: summaries}
	for key, s := range summaries {
		s.ActiveDays = len(activeDates[key])
		s.Tier = TierFromLabels(labels[key])
		if !sawFirstDeposit[key] {
			cohort.MissingFirstDeposit = append(cohort.MissingFirstDeposit, s.UserKey)
		}
	}
	sort.Strings(cohort.MissingFirstDeposit)

	return cohort
}

// CohortTotals is the cohort summed across all users, the input to the KPI
// formulas for a brand/period grouping.
type CohortTotals struct {
	Users             int
	DepositCases      int64
	DepositAmount     float64
	WithdrawCases     int64
	WithdrawAmount    float64
	AddTransaction    float64
	DeductTransaction float64
	ValidBetAmount    float64
	NetProfit         float64
	Bonus             float64
	ActiveDays        int
	LatestDate        time.Time
}

// Totals folds every summary into one aggregate.
func (c *Cohort) Totals() CohortTotals {
	var t CohortTotals
	for _, s := range c.Summaries {
		t.Users++
		t.DepositCases += s.DepositCases
		t.DepositAmount += s.DepositAmount
		t.WithdrawCases += s.WithdrawCases
		t.WithdrawAmount += s.WithdrawAmount
		t.AddTransaction += s.AddTransaction
		t.DeductTransaction += s.DeductTransaction
		t.ValidBetAmount += s.ValidBetAmount
		t.NetProfit += s.NetProfit
		t.Bonus += s.Bonus
		t.ActiveDays += s.ActiveDays
		if s.LastDepositDate != nil && s.LastDepositDate.After(t.LatestDate) {
			t.LatestDate = *s.LastDepositDate
		}
	}
	return t
}

// ActiveUserKeys returns the userkeys with deposit activity in the period,
// sorted for deterministic downstream iteration.
func (c *Cohort) ActiveUserKeys() []string {
	keys := make([]string, 0, len(c.Summaries))
	seen := map[string]bool{}
	for _, s := range c.Summaries {
		if s.DepositCases > 0 && !seen[s.UserKey] {
			seen[s.UserKey] = true
			keys = append(keys, s.UserKey)
		}
	}
	sort.Strings(keys)
	return keys
}

// TierAssignments returns the per-user tier mapping for movement comparison.
func (c *Cohort) TierAssignments() map[string]int {
	tiers := make(map[string]int, len(c.Summaries))
	for _, s := range c.Summaries {
		tier, ok := tiers[s.UserKey]
		if !ok || s.Tier < tier {
			tiers[s.UserKey] = s.Tier
		}
	}
	return tiers
}

// SortedSummaries returns summaries ordered by deposit amount descending,
// then userkey ascending, the display order of the dashboard tables.
func (c *Cohort) SortedSummaries() []*UserCohortSummary {
	out := make([]*UserCohortSummary, 0, len(c.Summaries))
	for _, s := range c.Summaries {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DepositAmount != out[j].DepositAmount {
			return out[i].DepositAmount > out[j].DepositAmount
		}
		return out[i].UserKey < out[j].UserKey
	})
	return out
}

// LatestRowDate returns the most recent row date observed in the raw input
// for the window, used for elapsed-day proration of an in-progress month.
func LatestRowDate(rows []TransactionRow, window PeriodWindow) time.Time {
	var latest time.Time
	for i := range rows {
		if window.Contains(rows[i].Date) && rows[i].Date.After(latest) {
			latest = rows[i].Date
		}
	}
	return latest
}
