// Package export renders aggregated analytics results as tabular CSV for the
// download endpoints. Column order is fixed per report type; null or blank
// values render as "-", non-integer numerics with two decimals.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"brand-analytics-service/internal/analytics/core/domain"
	"brand-analytics-service/internal/analytics/core/usecase"
)

const blank = "-"

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatCount(v int64) string {
	return strconv.FormatInt(v, 10)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return blank
	}
	return t.Format("2006-01-02")
}

func formatText(s string) string {
	if s == "" {
		return blank
	}
	return s
}

var summaryHeader = []string{
	"USER KEY", "UNIQUE CODE", "BRAND", "TIER",
	"DEPOSIT CASES", "DEPOSIT AMOUNT", "WITHDRAW CASES", "WITHDRAW AMOUNT",
	"GGR", "NET PROFIT", "BONUS", "ACTIVE DAYS", "ATV", "PF",
	"FIRST DEPOSIT DATE", "LAST DEPOSIT DATE",
}

// WriteSummaryCSV renders every per-user summary row of the result.
func WriteSummaryCSV(w io.Writer, res *usecase.SummaryResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(summaryHeader); err != nil {
		return err
	}
	for _, s := range res.Users {
		record := []string{
			formatText(s.UserKey),
			formatText(s.UniqueCode),
			formatText(s.Line),
			domain.TierName(s.Tier),
			formatCount(s.DepositCases),
			formatAmount(s.DepositAmount),
			formatCount(s.WithdrawCases),
			formatAmount(s.WithdrawAmount),
			formatAmount(domain.GGR(s.DepositAmount, s.WithdrawAmount)),
			formatAmount(s.NetProfit),
			formatAmount(s.Bonus),
			strconv.Itoa(s.ActiveDays),
			formatAmount(domain.ATV(s.DepositAmount, s.DepositCases)),
			formatAmount(domain.PurchaseFrequency(s.DepositCases, s.ActiveDays)),
			formatDate(s.FirstDepositDate),
			formatDate(s.LastDepositDate),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

var lifecycleHeader = []string{
	"USER KEY", "UNIQUE CODE", "BRAND", "STATUS", "MEMBER TYPE",
	"DEPOSIT CASES", "DEPOSIT AMOUNT", "WITHDRAW AMOUNT", "NET PROFIT",
	"FIRST DEPOSIT DATE", "LAST DEPOSIT DATE",
}

// WriteLifecycleCSV renders the churned-user report: every churned user with
// their prior-period figures and NEW/OLD MEMBER label.
func WriteLifecycleCSV(w io.Writer, res *usecase.LifecycleResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(lifecycleHeader); err != nil {
		return err
	}
	for _, c := range res.Churned {
		record := []string{
			formatText(c.UserKey),
			blank, blank,
			string(domain.StatusChurned),
			string(c.MemberAge),
			blank, blank, blank, blank, blank, blank,
		}
		if s := c.Summary; s != nil {
			record[1] = formatText(s.UniqueCode)
			record[2] = formatText(s.Line)
			record[5] = formatCount(s.DepositCases)
			record[6] = formatAmount(s.DepositAmount)
			record[7] = formatAmount(s.WithdrawAmount)
			record[8] = formatAmount(s.NetProfit)
			record[9] = formatDate(s.FirstDepositDate)
			record[10] = formatDate(s.LastDepositDate)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
