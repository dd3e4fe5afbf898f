package fiber

// TransactionRequest is one raw row in an ingestion payload.
// @Description Transaction row ingestion DTO
type TransactionRequest struct {
	UserKey           string  `json:"userkey"`
	UniqueCode        string  `json:"uniqueCode"`
	Line              string  `json:"line"`
	Currency          string  `json:"currency"`
	Date              string  `json:"date" example:"2026-08-01"`
	DepositCases      int64   `json:"depositCases"`
	DepositAmount     float64 `json:"depositAmount"`
	WithdrawCases     int64   `json:"withdrawCases"`
	WithdrawAmount    float64 `json:"withdrawAmount"`
	AddTransaction    float64 `json:"addTransaction"`
	DeductTransaction float64 `json:"deductTransaction"`
	ValidBetAmount    float64 `json:"validBetAmount"`
	Bonus             float64 `json:"bonus"`
	FirstDepositDate  string  `json:"firstDepositDate,omitempty"`
	LastDepositDate   string  `json:"lastDepositDate,omitempty"`
	TierLabel         string  `json:"tierLabel,omitempty"`
}

type CreateTransactionResponse struct {
	Status string `json:"status"`
}

type BulkCreateTransactionsRequest struct {
	Transactions []TransactionRequest `json:"transactions"`
}

type BulkCreateTransactionsResponse struct {
	Created    int `json:"created"`
	Duplicates int `json:"duplicates"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_transaction"`
	Message string `json:"message" example:"userkey and line are required"`
}
