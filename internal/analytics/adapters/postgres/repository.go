package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"brand-analytics-service/internal/analytics/core/domain"
	"brand-analytics-service/internal/analytics/core/ports"

	"github.com/lib/pq"
)

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

// MonthStyle declares how the backing table stores the month column. Some
// tables carry the month name ("January"), others the numeric index; the
// repository must know which one it is querying.
type MonthStyle int

const (
	MonthStyleName MonthStyle = iota
	MonthStyleIndex
)

// RowRepository reads transaction rows from the player_transactions table.
type RowRepository struct {
	db         DB
	monthStyle MonthStyle
}

func NewRowRepository(db DB, style MonthStyle) *RowRepository {
	return &RowRepository{db: db, monthStyle: style}
}

var _ ports.RowReaderPort = (*RowRepository)(nil)

const rowColumns = `
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
    tier_label`

// QueryRows returns one page. The sort is fully deterministic (date desc,
// userkey asc, id asc) so page boundaries cannot shift between consecutive
// requests against an unchanging dataset.
func (r *RowRepository) QueryRows(ctx context.Context, q ports.RowQuery) ([]domain.TransactionRow, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Year > 0 {
		conds = append(conds, "year = "+arg(q.Year))
	}
	if !q.Month.IsAll() {
		switch r.monthStyle {
		case MonthStyleIndex:
			conds = append(conds, "month = "+arg(q.Month.Index()))
		default:
			conds = append(conds, "month = "+arg(q.Month.Name()))
		}
	}
	if q.Brand != "" {
		conds = append(conds, "line = "+arg(q.Brand))
	}
	if q.Currency != "" {
		conds = append(conds, "currency = "+arg(q.Currency))
	}
	if q.DateFrom != nil {
		conds = append(conds, "date >= "+arg(*q.DateFrom))
	}
	if q.DateTo != nil {
		conds = append(conds, "date <= "+arg(*q.DateTo))
	}
	if q.MinDepositCases != nil {
		conds = append(conds, "deposit_cases > "+arg(*q.MinDepositCases))
	}
	if len(q.UserKeys) > 0 {
		conds = append(conds, "userkey = ANY("+arg(pq.Array(q.UserKeys))+")")
	}

	query := "SELECT" + rowColumns + "\nFROM player_transactions"
	if len(conds) > 0 {
		query += "\nWHERE " + strings.Join(conds, " AND ")
	}
	query += "\nORDER BY date DESC, userkey ASC, id ASC"
	if q.Limit > 0 {
		query += "\nOFFSET " + arg(q.Offset) + " LIMIT " + arg(q.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transaction rows: %w", err)
	}
	defer rows.Close()

	var out []domain.TransactionRow
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func scanRow(rows RowScanner) (domain.TransactionRow, error) {
	var (
		row          domain.TransactionRow
		uniqueCode   sql.NullString
		currency     sql.NullString
		firstDeposit sql.NullTime
		lastDeposit  sql.NullTime
		tierLabel    sql.NullString
	)
	err := rows.Scan(
		&row.ID,
		&row.UserKey,
		&uniqueCode,
		&row.Line,
		&currency,
		&row.Date,
		&row.Year,
		&row.Month,
		&row.DepositCases,
		&row.DepositAmount,
		&row.WithdrawCases,
		&row.WithdrawAmount,
		&row.AddTransaction,
		&row.DeductTransaction,
		&row.ValidBetAmount,
		&row.NetProfit,
		&row.Bonus,
		&firstDeposit,
		&lastDeposit,
		&tierLabel,
	)
	if err != nil {
		return domain.TransactionRow{}, fmt.Errorf("scan transaction row: %w", err)
	}

	row.UniqueCode = uniqueCode.String
	row.Currency = currency.String
	row.TierLabel = tierLabel.String
	if firstDeposit.Valid {
		fd := firstDeposit.Time
		row.FirstDepositDate = &fd
	}
	if lastDeposit.Valid {
		ld := lastDeposit.Time
		row.LastDepositDate = &ld
	}

	return row, nil
}

const earliestDepositSQL = `
SELECT userkey, MIN(date)
FROM player_transactions
WHERE deposit_cases > 0 AND userkey = ANY($1)
GROUP BY userkey`

// EarliestDepositDates resolves each user's all-time minimum date with
// deposit activity. The caller keeps the key list under the IN ceiling.
func (r *RowRepository) EarliestDepositDates(ctx context.Context, userKeys []string) (map[string]time.Time, error) {
	rows, err := r.db.QueryContext(ctx, earliestDepositSQL, pq.Array(userKeys))
	if err != nil {
		return nil, fmt.Errorf("query earliest deposits: %w", err)
	}
	defer rows.Close()

	out := map[string]time.Time{}
	for rows.Next() {
		var (
			key  string
			date time.Time
		)
		if err := rows.Scan(&key, &date); err != nil {
			return nil, fmt.Errorf("scan earliest deposit: %w", err)
		}
		out[key] = date
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
