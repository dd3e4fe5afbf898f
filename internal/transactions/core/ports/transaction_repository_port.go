package ports

import (
	"context"

	"brand-analytics-service/internal/transactions/core/domain"
)

type TransactionRepositoryPort interface {
	// InsertTransaction stores one row idempotently. Returns false when a row
	// with the same dedupe key already exists.
	InsertTransaction(ctx context.Context, t *domain.Transaction) (bool, error)
}
