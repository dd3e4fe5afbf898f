package domain

import (
	"sort"
	"time"
)

// LifecycleStatus labels a user's position across two consecutive periods.
type LifecycleStatus string

const (
	StatusNew          LifecycleStatus = "NEW"
	StatusRetention    LifecycleStatus = "RETENTION"
	StatusReactivation LifecycleStatus = "REACTIVATION"
	StatusChurned      LifecycleStatus = "CHURNED"
)

// MemberAge sub-labels a churned user by whether their first deposit fell in
// the prior period.
type MemberAge string

const (
	NewMember MemberAge = "NEW MEMBER"
	OldMember MemberAge = "OLD MEMBER"
)

// NewDepositorPolicy selects which period a user's firstDepositDate must fall
// in to count them as a new depositor. Reports disagree on this, so it is a
// caller choice rather than a fixed rule.
type NewDepositorPolicy int

const (
	// NewInRequestedPeriod: first deposit in the current (requested) period.
	NewInRequestedPeriod NewDepositorPolicy = iota
	// NewInPreviousPeriod: first deposit in the previous period.
	NewInPreviousPeriod
)

// ChurnedUser is a prior-period active user with no current activity.
type ChurnedUser struct {
	UserKey   string
	MemberAge MemberAge
}

// LifecycleResult partitions the two active sets. New, Retained and
// Reactivated partition the current active set; Retained and Churned
// partition the prior active set. All slices are sorted by userkey.
type LifecycleResult struct {
	New         []string
	Retained    []string
	Reactivated []string
	Churned     []ChurnedUser
}

// ClassifyLifecycle labels users by comparing the prior and current cohorts.
// Activity means deposit cases > 0. Precedence: NEW beats RETENTION beats
// REACTIVATION. Both cohorts must already be scoped identically.
func ClassifyLifecycle(prior, current *Cohort, policy NewDepositorPolicy) LifecycleResult {
	priorActive := activeSet(prior)
	currentActive := activeSet(current)

	newWindow := current.Window
	if policy == NewInPreviousPeriod {
		newWindow = prior.Window
	}

	currentFirst := firstDeposits(current)
	priorFirst := firstDeposits(prior)

	var res LifecycleResult

	for _, key := range sortedKeys(currentActive) {
		switch {
		case inYearMonth(currentFirst[key], newWindow):
			res.New = append(res.New, key)
		case priorActive[key]:
			res.Retained = append(res.Retained, key)
		default:
			res.Reactivated = append(res.Reactivated, key)
		}
	}

	for _, key := range sortedKeys(priorActive) {
		if currentActive[key] {
			continue
		}
		age := OldMember
		if inYearMonth(priorFirst[key], prior.Window) {
			age = NewMember
		}
		res.Churned = append(res.Churned, ChurnedUser{UserKey: key, MemberAge: age})
	}

	return res
}

func activeSet(c *Cohort) map[string]bool {
	set := map[string]bool{}
	for _, s := range c.Summaries {
		if s.DepositCases > 0 {
			set[s.UserKey] = true
		}
	}
	return set
}

// firstDeposits collapses per-summary first deposit dates to the earliest one
// per userkey (PerBrand cohorts can hold several summaries per user).
func firstDeposits(c *Cohort) map[string]time.Time {
	out := map[string]time.Time{}
	for _, s := range c.Summaries {
		if s.FirstDepositDate == nil {
			continue
		}
		fd := *s.FirstDepositDate
		if existing, ok := out[s.UserKey]; !ok || fd.Before(existing) {
			out[s.UserKey] = fd
		}
	}
	return out
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// inYearMonth checks a date against the window's year-month span. A zero date
// (no first deposit on record) never matches.
func inYearMonth(t time.Time, window PeriodWindow) bool {
	if t.IsZero() {
		return false
	}
	if t.Year() != window.Start.Year() {
		return false
	}
	return t.Month() >= window.Start.Month() && t.Month() <= window.End.Month()
}
