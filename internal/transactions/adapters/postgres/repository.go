package postgres

import (
	"context"
	"fmt"

	"brand-analytics-service/internal/transactions/core/domain"
	"brand-analytics-service/internal/transactions/core/ports"
)

type TransactionRepository struct {
	db DB
}

func NewTransactionRepository(db DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

var _ ports.TransactionRepositoryPort = (*TransactionRepository)(nil)

const insertTransactionSQL = `
INSERT INTO player_transactions (
    id,
    userkey,
    unique_code,
    line,
    currency,
    date,
    year,
    month,
    deposit_cases,
    deposit_amount,
    withdraw_cases,
    withdraw_amount,
    add_transaction,
    deduct_transaction,
    valid_bet_amount,
    net_profit,
    bonus,
    first_deposit_date,
    last_deposit_date,
    tier_label,
    dedupe_key
) VALUES (
    $1, $2, $3, $4, $5, $6, $7,
    $8, $9, $10, $11, $12, $13, $14,
    $15, $16, $17, $18, $19, $20, $21
)
ON CONFLICT (dedupe_key) DO NOTHING;
`

func (r *TransactionRepository) InsertTransaction(ctx context.Context, t *domain.Transaction) (bool, error) {
	var uniqueCode, currency, tierLabel any
	if t.UniqueCode != "" {
		uniqueCode = t.UniqueCode
	}
	if t.Currency != "" {
		currency = t.Currency
	}
	if t.TierLabel != "" {
		tierLabel = t.TierLabel
	}

	var firstDeposit, lastDeposit any
	if t.FirstDepositDate != nil {
		firstDeposit = *t.FirstDepositDate
	}
	if t.LastDepositDate != nil {
		lastDeposit = *t.LastDepositDate
	}

	res, err := r.db.ExecContext(ctx, insertTransactionSQL,
		t.ID,
		t.UserKey,
		uniqueCode,
		t.Line,
		currency,
		t.Date,
		t.Year,
		t.Month,
		t.DepositCases,
		t.DepositAmount,
		t.WithdrawCases,
		t.WithdrawAmount,
		t.AddTransaction,
		t.DeductTransaction,
		t.ValidBetAmount,
		t.NetProfit,
		t.Bonus,
		firstDeposit,
		lastDeposit,
		tierLabel,
		t.DedupeKey,
	)
	if err != nil {
		return false, fmt.Errorf("insert transaction: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}
