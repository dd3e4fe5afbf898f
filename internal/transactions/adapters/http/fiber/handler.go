package fiber

import (
	"context"
	"errors"
	"net/http"

	"brand-analytics-service/internal/transactions/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type StoreTransactionUseCase interface {
	Execute(ctx context.Context, in usecase.StoreTransactionInput) (bool, error)
	BulkStore(ctx context.Context, in usecase.BulkStoreInput) (usecase.BulkStoreResult, error)
}

type TransactionHandler struct {
	storeUC StoreTransactionUseCase
}

func NewTransactionHandler(storeUC StoreTransactionUseCase) *TransactionHandler {
	return &TransactionHandler{storeUC: storeUC}
}

func toInput(req TransactionRequest) usecase.StoreTransactionInput {
	return usecase.StoreTransactionInput{
		UserKey:           req.UserKey,
		UniqueCode:        req.UniqueCode,
		Line:              req.Line,
		Currency:          req.Currency,
		Date:              req.Date,
		DepositCases:      req.DepositCases,
		DepositAmount:     req.DepositAmount,
		WithdrawCases:     req.WithdrawCases,
		WithdrawAmount:    req.WithdrawAmount,
		AddTransaction:    req.AddTransaction,
		DeductTransaction: req.DeductTransaction,
		ValidBetAmount:    req.ValidBetAmount,
		Bonus:             req.Bonus,
		FirstDepositDate:  req.FirstDepositDate,
		LastDepositDate:   req.LastDepositDate,
		TierLabel:         req.TierLabel,
	}
}

func mapStoreError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidTransaction),
		errors.Is(err, usecase.ErrFutureDate),
		errors.Is(err, usecase.ErrNegativeAmount):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_transaction",
			Message: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}

// CreateTransaction godoc
// @Summary Ingest one transaction row
// @Description Validates, normalizes and stores a single row with idempotency handling
// @Tags Transactions
// @Accept json
// @Produce json
// @Param request body TransactionRequest true "Transaction payload"
// @Success 201 {object} CreateTransactionResponse
// @Success 200 {object} CreateTransactionResponse "Duplicate row"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var req TransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	created, err := h.storeUC.Execute(c.UserContext(), toInput(req))
	if err != nil {
		return mapStoreError(c, err)
	}

	if !created {
		return c.Status(http.StatusOK).JSON(CreateTransactionResponse{Status: "duplicate"})
	}
	return c.Status(http.StatusCreated).JSON(CreateTransactionResponse{Status: "created"})
}

// BulkCreateTransactions godoc
// @Summary Bulk ingest transaction rows
// @Description Accepts a list of rows and stores them individually
// @Tags Transactions
// @Accept json
// @Produce json
// @Param request body BulkCreateTransactionsRequest true "Bulk payload"
// @Success 201 {object} BulkCreateTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions/bulk [post]
func (h *TransactionHandler) BulkCreateTransactions(c *fiber.Ctx) error {
	var req BulkCreateTransactionsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	if len(req.Transactions) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "transactions_list_required",
		})
	}

	inputs := make([]usecase.StoreTransactionInput, len(req.Transactions))
	for i, t := range req.Transactions {
		inputs[i] = toInput(t)
	}

	result, err := h.storeUC.BulkStore(
		c.UserContext(),
		usecase.BulkStoreInput{Transactions: inputs},
	)
	if err != nil {
		return mapStoreError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(BulkCreateTransactionsResponse{
		Created:    result.Created,
		Duplicates: result.Duplicates,
	})
}
