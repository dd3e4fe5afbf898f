package domain

import "time"

// TransactionRow is the validated read model for one raw per-day record as the
// engine consumes it from the store. Year and Month are kept denormalized
// alongside Date because the source tables carry them that way.
type TransactionRow struct {
	ID                string
	UserKey           string
	UniqueCode        string
	Line              string // brand
	Currency          string
	Date              time.Time
	Year              int
	Month             string // month name ("January"), see MonthKey
	DepositCases      int64
	DepositAmount     float64
	WithdrawCases     int64
	WithdrawAmount    float64
	AddTransaction    float64
	DeductTransaction float64
	ValidBetAmount    float64
	NetProfit         float64
	Bonus             float64
	FirstDepositDate  *time.Time
	LastDepositDate   *time.Time
	TierLabel         string // free-text tier name, may be blank
}
