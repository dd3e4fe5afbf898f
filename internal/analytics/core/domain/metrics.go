package domain

// Derived KPI formulas. Every division is zero-guarded in one place: a zero
// denominator yields 0, never NaN or an error, so callers can chain these
// without checking inputs first.

func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// ATV is the average transaction value: deposit amount per deposit case.
func ATV(depositAmount float64, depositCases int64) float64 {
	return safeDiv(depositAmount, float64(depositCases))
}

// PurchaseFrequency is deposit cases per active day.
func PurchaseFrequency(depositCases int64, activeDays int) float64 {
	return safeDiv(float64(depositCases), float64(activeDays))
}

// GGR is gross gaming revenue: deposits minus withdrawals.
func GGR(depositAmount, withdrawAmount float64) float64 {
	return depositAmount - withdrawAmount
}

// NetProfit folds manual adjustments into the deposit/withdraw delta.
func NetProfit(depositAmount, addTransaction, deductTransaction, withdrawAmount float64) float64 {
	return depositAmount + addTransaction - deductTransaction - withdrawAmount
}

// WinratePct is GGR as a percentage of deposits.
func WinratePct(depositAmount, withdrawAmount float64) float64 {
	return safeDiv(GGR(depositAmount, withdrawAmount), depositAmount) * 100
}

// WithdrawalRatePct is withdraw cases as a percentage of deposit cases.
func WithdrawalRatePct(withdrawCases, depositCases int64) float64 {
	return safeDiv(float64(withdrawCases), float64(depositCases)) * 100
}

// HoldPct is net profit as a percentage of the valid bet amount.
func HoldPct(netProfit, validBetAmount float64) float64 {
	return safeDiv(netProfit, validBetAmount) * 100
}

// ConversionRatePct is new depositors as a percentage of new registrations.
func ConversionRatePct(newDepositors, newRegistrations int64) float64 {
	return safeDiv(float64(newDepositors), float64(newRegistrations)) * 100
}
