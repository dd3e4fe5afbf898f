package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"brand-analytics-service/internal/transactions/core/domain"
	"brand-analytics-service/internal/transactions/core/ports"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrFutureDate         = errors.New("date cannot be in the future")
	ErrNegativeAmount     = errors.New("cases and amounts cannot be negative")
)

type StoreTransactionUseCase struct {
	repo ports.TransactionRepositoryPort
	now  func() time.Time
}

func NewStoreTransactionUseCase(repo ports.TransactionRepositoryPort) *StoreTransactionUseCase {
	return &StoreTransactionUseCase{repo: repo, now: time.Now}
}

// StoreTransactionInput is the raw ingestion payload before validation.
type StoreTransactionInput struct {
	UserKey           string
	UniqueCode        string
	Line              string
	Currency          string
	Date              string // "2006-01-02"
	DepositCases      int64
	DepositAmount     float64
	WithdrawCases     int64
	WithdrawAmount    float64
	AddTransaction    float64
	DeductTransaction float64
	ValidBetAmount    float64
	Bonus             float64
	FirstDepositDate  string // optional
	LastDepositDate   string // optional
	TierLabel         string
}

const dateLayout = "2006-01-02"

// Execute validates and normalizes one row, then inserts it idempotently.
// This is the single validation step: every downstream consumer works on the
// normalized schema, never on raw ambiguous input.
func (uc *StoreTransactionUseCase) Execute(ctx context.Context, in StoreTransactionInput) (bool, error) {
	t, err := uc.normalize(in)
	if err != nil {
		return false, err
	}
	return uc.repo.InsertTransaction(ctx, t)
}

func (uc *StoreTransactionUseCase) normalize(in StoreTransactionInput) (*domain.Transaction, error) {
	if in.UserKey == "" || in.Line == "" {
		return nil, fmt.Errorf("%w: userkey and line are required", ErrInvalidTransaction)
	}
	date, err := time.Parse(dateLayout, in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q", ErrInvalidTransaction, in.Date)
	}
	if date.After(uc.now()) {
		return nil, ErrFutureDate
	}
	if in.DepositCases < 0 || in.DepositAmount < 0 || in.WithdrawCases < 0 || in.WithdrawAmount < 0 || in.ValidBetAmount < 0 {
		return nil, ErrNegativeAmount
	}

	firstDeposit, err := parseOptionalDate(in.FirstDepositDate)
	if err != nil {
		return nil, fmt.Errorf("%w: first deposit date %q", ErrInvalidTransaction, in.FirstDepositDate)
	}
	lastDeposit, err := parseOptionalDate(in.LastDepositDate)
	if err != nil {
		return nil, fmt.Errorf("%w: last deposit date %q", ErrInvalidTransaction, in.LastDepositDate)
	}

	return &domain.Transaction{
		ID:                uuid.NewString(),
		UserKey:           in.UserKey,
		UniqueCode:        in.UniqueCode,
		Line:              in.Line,
		Currency:          in.Currency,
		Date:              date,
		Year:              date.Year(),
		Month:             date.Month().String(),
		DepositCases:      in.DepositCases,
		DepositAmount:     in.DepositAmount,
		WithdrawCases:     in.WithdrawCases,
		WithdrawAmount:    in.WithdrawAmount,
		AddTransaction:    in.AddTransaction,
		DeductTransaction: in.DeductTransaction,
		ValidBetAmount:    in.ValidBetAmount,
		NetProfit:         in.DepositAmount + in.AddTransaction - in.DeductTransaction - in.WithdrawAmount,
		Bonus:             in.Bonus,
		FirstDepositDate:  firstDeposit,
		LastDepositDate:   lastDeposit,
		TierLabel:         in.TierLabel,
		DedupeKey:         buildDedupeKey(in.UserKey, in.Line, date),
	}, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// One row per user, brand and day.
func buildDedupeKey(userKey, line string, date time.Time) string {
	return fmt.Sprintf("%s|%s|%s", userKey, line, date.Format(dateLayout))
}

type BulkStoreInput struct {
	Transactions []StoreTransactionInput
}

type BulkStoreResult struct {
	Created    int
	Duplicates int
}

// BulkStore validates every row up front, then inserts them one by one so a
// duplicate never aborts the batch.
func (uc *StoreTransactionUseCase) BulkStore(ctx context.Context, in BulkStoreInput) (BulkStoreResult, error) {
	var res BulkStoreResult

	for _, t := range in.Transactions {
		if _, err := uc.normalize(t); err != nil {
			return res, err
		}
	}

	for _, t := range in.Transactions {
		created, err := uc.Execute(ctx, t)
		if err != nil {
			return res, err
		}
		if created {
			res.Created++
		} else {
			res.Duplicates++
		}
	}

	return res, nil
}
