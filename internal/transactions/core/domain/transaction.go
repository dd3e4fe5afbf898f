package domain

import "time"

// Transaction is one validated per-day record ready for insertion. Year and
// Month (name form) are denormalized from Date at ingestion; nothing
// downstream re-derives them.
type Transaction struct {
	ID                string
	UserKey           string
	UniqueCode        string
	Line              string
	Currency          string
	Date              time.Time
	Year              int
	Month             string
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
	TierLabel         string
	DedupeKey         string
}
