package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"

	"brand-analytics-service/internal/analytics/core/ports"
)

// fakeRowScanner implements RowScanner for tests.
type fakeRowScanner struct {
	rows []fakeRow
	i    int
	err  error
}

type fakeRow struct {
	values []any
}

func (f *fakeRowScanner) Next() bool {
	return f.i < len(f.rows)
}

func (f *fakeRowScanner) Scan(dest ...any) error {
	if f.i >= len(f.rows) {
		return errors.New("no more rows")
	}
	row := f.rows[f.i]
	if len(dest) != len(row.values) {
		return errors.New("dest length mismatch")
	}
	for i := range dest {
		switch d := dest[i].(type) {
		case *string:
			v, ok := row.values[i].(string)
			if !ok {
				return errors.New("type assertion to string failed")
			}
			*d = v
		case *int:
			v, ok := row.values[i].(int)
			if !ok {
				return errors.New("type assertion to int failed")
			}
			*d = v
		case *int64:
			v, ok := row.values[i].(int64)
			if !ok {
				return errors.New("type assertion to int64 failed")
			}
			*d = v
		case *float64:
			v, ok := row.values[i].(float64)
			if !ok {
				return errors.New("type assertion to float64 failed")
			}
			*d = v
		case *time.Time:
			v, ok := row.values[i].(time.Time)
			if !ok {
				return errors.New("type assertion to time.Time failed")
			}
			*d = v
		case *sql.NullString:
			if row.values[i] == nil {
				*d = sql.NullString{}
				continue
			}
			v, ok := row.values[i].(string)
			if !ok {
				return errors.New("type assertion to string failed")
			}
			*d = sql.NullString{String: v, Valid: true}
		case *sql.NullTime:
			if row.values[i] == nil {
				*d = sql.NullTime{}
				continue
			}
			v, ok := row.values[i].(time.Time)
			if !ok {
				return errors.New("type assertion to time.Time failed")
			}
			*d = sql.NullTime{Time: v, Valid: true}
		default:
			return errors.New("unsupported dest type")
		}
	}
	f.i++
	return nil
}

func (f *fakeRowScanner) Err() error {
	return f.err
}

func (f *fakeRowScanner) Close() error {
	return nil
}

// fakeDB implements DB interface.
type fakeDB struct {
	QueryFn   func(ctx context.Context, query string, args ...any) (RowScanner, error)
	lastQuery string
	lastArgs  []any
	called    bool
}

func (f *fakeDB) QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error) {
	f.called = true
	f.lastQuery = query
	f.lastArgs = args
	if f.QueryFn != nil {
		return f.QueryFn(ctx, query, args...)
	}
	return &fakeRowScanner{}, nil
}

func fullRowValues(id, user string, date time.Time) []any {
	fd := date.AddDate(-1, 0, 0)
	return []any{
		id,           // id
		user,         // userkey
		"UC-1",       // unique_code
		"alpha",      // line
		"USD",        // currency
		date,         // date
		date.Year(),  // year
		"June",       // month
		int64(2),     // deposit_cases
		150.5,        // deposit_amount
		int64(1),     // withdraw_cases
		40.0,         // withdraw_amount
		5.0,          // add_transaction
		1.0,          // deduct_transaction
		300.0,        // valid_bet_amount
		114.5,        // net_profit
		10.0,         // bonus
		fd,           // first_deposit_date
		nil,          // last_deposit_date
		"gold",       // tier_label
	}
}

// ------------------------------------------------------------
// QUERY BUILDING
// ------------------------------------------------------------

func TestRowRepository_QueryRows_Filters(t *testing.T) {
	db := &fakeDB{}
	repo := NewRowRepository(db, MonthStyleName)

	minCases := int64(0)
	_, err := repo.QueryRows(context.Background(), ports.RowQuery{
		Year:            2024,
		Month:           6,
		Brand:           "alpha",
		Currency:        "USD",
		MinDepositCases: &minCases,
		Offset:          100,
		Limit:           50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !db.called {
		t.Fatalf("expected QueryContext to be called")
	}
	for _, want := range []string{
		"FROM player_transactions",
		"year = $1",
		"month = $2",
		"line = $3",
		"currency = $4",
		"deposit_cases > $5",
		"ORDER BY date DESC, userkey ASC, id ASC",
		"OFFSET $6 LIMIT $7",
	} {
		if !strings.Contains(db.lastQuery, want) {
			t.Fatalf("query missing %q:\n%s", want, db.lastQuery)
		}
	}
	if db.lastArgs[1] != "June" {
		t.Fatalf("expected month name arg, got %v", db.lastArgs[1])
	}
	if db.lastArgs[5] != 100 || db.lastArgs[6] != 50 {
		t.Fatalf("expected offset/limit args, got %v", db.lastArgs[5:])
	}
}

func TestRowRepository_QueryRows_MonthIndexStyle(t *testing.T) {
	db := &fakeDB{}
	repo := NewRowRepository(db, MonthStyleIndex)

	_, err := repo.QueryRows(context.Background(), ports.RowQuery{Year: 2024, Month: 6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db.lastArgs[1] != 6 {
		t.Fatalf("expected month index arg 6, got %v", db.lastArgs[1])
	}
}

func TestRowRepository_QueryRows_AllMonthsSkipsMonthFilter(t *testing.T) {
	db := &fakeDB{}
	repo := NewRowRepository(db, MonthStyleName)

	_, err := repo.QueryRows(context.Background(), ports.RowQuery{Year: 2024, Month: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(db.lastQuery, "month =") {
		t.Fatalf("ALL months should not filter on month:\n%s", db.lastQuery)
	}
}

func TestRowRepository_QueryRows_UserKeysUseArray(t *testing.T) {
	db := &fakeDB{}
	repo := NewRowRepository(db, MonthStyleName)

	_, err := repo.QueryRows(context.Background(), ports.RowQuery{
		Year:     2024,
		Month:    6,
		UserKeys: []string{"u1", "u2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(db.lastQuery, "userkey = ANY($3)") {
		t.Fatalf("expected ANY placeholder:\n%s", db.lastQuery)
	}
	arr, ok := db.lastArgs[2].(*pq.StringArray)
	if !ok {
		t.Fatalf("expected *pq.StringArray arg, got %T", db.lastArgs[2])
	}
	if len(*arr) != 2 {
		t.Fatalf("expected 2 keys in array, got %d", len(*arr))
	}
}

func TestRowRepository_QueryRows_DateRange(t *testing.T) {
	db := &fakeDB{}
	repo := NewRowRepository(db, MonthStyleName)

	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	_, err := repo.QueryRows(context.Background(), ports.RowQuery{DateFrom: &from, DateTo: &to})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(db.lastQuery, "date >= $1") || !strings.Contains(db.lastQuery, "date <= $2") {
		t.Fatalf("expected date range conditions:\n%s", db.lastQuery)
	}
}

// ------------------------------------------------------------
// SCANNING
// ------------------------------------------------------------

func TestRowRepository_QueryRows_Scans(t *testing.T) {
	date := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return &fakeRowScanner{rows: []fakeRow{{values: fullRowValues("row-1", "u1", date)}}}, nil
		},
	}
	repo := NewRowRepository(db, MonthStyleName)

	rows, err := repo.QueryRows(context.Background(), ports.RowQuery{Year: 2024, Month: 6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	r := rows[0]
	if r.ID != "row-1" || r.UserKey != "u1" || r.Line != "alpha" {
		t.Fatalf("unexpected row: %+v", r)
	}
	if r.DepositCases != 2 || r.DepositAmount != 150.5 || r.NetProfit != 114.5 {
		t.Fatalf("unexpected amounts: %+v", r)
	}
	if r.FirstDepositDate == nil || !r.FirstDepositDate.Equal(date.AddDate(-1, 0, 0)) {
		t.Fatalf("unexpected first deposit date: %v", r.FirstDepositDate)
	}
	if r.LastDepositDate != nil {
		t.Fatalf("expected nil last deposit date for NULL column")
	}
	if r.TierLabel != "gold" {
		t.Fatalf("unexpected tier label: %q", r.TierLabel)
	}
}

// ------------------------------------------------------------
// DB ERROR
// ------------------------------------------------------------

func TestRowRepository_QueryRows_DBError(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return nil, errors.New("db failure")
		},
	}
	repo := NewRowRepository(db, MonthStyleName)

	rows, err := repo.QueryRows(context.Background(), ports.RowQuery{Year: 2024, Month: 6})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "db failure") {
		t.Fatalf("expected wrapped db failure, got %v", err)
	}
	if rows != nil {
		t.Fatalf("expected nil rows on error")
	}
}

// ------------------------------------------------------------
// EARLIEST DEPOSIT DATES
// ------------------------------------------------------------

func TestRowRepository_EarliestDepositDates(t *testing.T) {
	d1 := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			if !strings.Contains(query, "MIN(date)") || !strings.Contains(query, "deposit_cases > 0") {
				t.Fatalf("unexpected query: %s", query)
			}
			return &fakeRowScanner{rows: []fakeRow{
				{values: []any{"u1", d1}},
				{values: []any{"u2", d2}},
			}}, nil
		},
	}
	repo := NewRowRepository(db, MonthStyleName)

	out, err := repo.EarliestDepositDates(context.Background(), []string{"u1", "u2", "u3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(out))
	}
	if !out["u1"].Equal(d1) || !out["u2"].Equal(d2) {
		t.Fatalf("unexpected map: %+v", out)
	}
	arr, ok := db.lastArgs[0].(*pq.StringArray)
	if !ok {
		t.Fatalf("expected *pq.StringArray arg, got %T", db.lastArgs[0])
	}
	if len(*arr) != 3 {
		t.Fatalf("expected 3 keys in array, got %d", len(*arr))
	}
}
