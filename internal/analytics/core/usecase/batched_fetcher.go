package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"brand-analytics-service/internal/analytics/core/domain"
	"brand-analytics-service/internal/analytics/core/ports"
)

// Paging and batching limits of the backing store. One crossover threshold is
// used everywhere: identity lists above it are cheaper to resolve with a full
// period scan filtered in memory than with many IN sub-queries.
const (
	pageSize          = 5000
	maxFetchRows      = 200000
	inListBatchSize   = 500
	inMemoryCrossover = 2000
	earliestBatchSize = 500
)

var errAllBatchesFailed = errors.New("all sub-batches failed")

// BatchedFetcher drains the row store past its per-request row cap and its
// IN-list size cap, returning one flat ordered collection. Sub-batches run
// sequentially to keep ordering deterministic and peak memory bounded.
type BatchedFetcher struct {
	reader ports.RowReaderPort
}

func NewBatchedFetcher(reader ports.RowReaderPort) *BatchedFetcher {
	return &BatchedFetcher{reader: reader}
}

// FetchAll pages through every row matching the query until a short page is
// returned, stopping early at the safety ceiling rather than exhausting
// memory.
func (f *BatchedFetcher) FetchAll(ctx context.Context, q ports.RowQuery) ([]domain.TransactionRow, error) {
	var rows []domain.TransactionRow

	q.Limit = pageSize
	for offset := 0; ; offset += pageSize {
		q.Offset = offset
		page, err := f.reader.QueryRows(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("fetch page at offset %d: %w", offset, err)
		}
		rows = append(rows, page...)
		if len(page) < pageSize {
			break
		}
		if len(rows) >= maxFetchRows {
			break
		}
	}

	return rows, nil
}

// FetchByUserKeys restricts the query to an identity list. Small lists are
// split into IN sub-batches of at most inListBatchSize keys, fetched
// sequentially and unioned. Lists above the crossover threshold fall back to
// one unfiltered fetch filtered in memory against a lookup set.
//
// A failed sub-batch does not abort the remaining ones; the union of
// successes is returned. Only when every sub-batch failed and no row was
// obtained is the whole operation an error.
func (f *BatchedFetcher) FetchByUserKeys(ctx context.Context, q ports.RowQuery, userKeys []string) ([]domain.TransactionRow, error) {
	if len(userKeys) == 0 {
		return nil, nil
	}

	if len(userKeys) > inMemoryCrossover {
		return f.fetchAndFilter(ctx, q, userKeys)
	}

	var (
		rows     []domain.TransactionRow
		failures int
		batches  int
		lastErr  error
	)
	for start := 0; start < len(userKeys); start += inListBatchSize {
		end := start + inListBatchSize
		if end > len(userKeys) {
			end = len(userKeys)
		}
		batches++

		sub := q
		sub.UserKeys = userKeys[start:end]
		batchRows, err := f.FetchAll(ctx, sub)
		if err != nil {
			failures++
			lastErr = err
			continue
		}
		rows = append(rows, batchRows...)
	}

	if failures == batches && len(rows) == 0 {
		return nil, fmt.Errorf("%w: %v", errAllBatchesFailed, lastErr)
	}

	return rows, nil
}

func (f *BatchedFetcher) fetchAndFilter(ctx context.Context, q ports.RowQuery, userKeys []string) ([]domain.TransactionRow, error) {
	wanted := make(map[string]bool, len(userKeys))
	for _, k := range userKeys {
		wanted[k] = true
	}

	q.UserKeys = nil
	all, err := f.FetchAll(ctx, q)
	if err != nil {
		return nil, err
	}

	var rows []domain.TransactionRow
	for i := range all {
		if wanted[all[i].UserKey] {
			rows = append(rows, all[i])
		}
	}
	return rows, nil
}

// EarliestDepositDates resolves all-time first deposit dates for the given
// users, chunked under the store's IN-list ceiling. Partial failures follow
// the same union-of-successes rule as FetchByUserKeys.
func (f *BatchedFetcher) EarliestDepositDates(ctx context.Context, userKeys []string) (map[string]time.Time, error) {
	if len(userKeys) == 0 {
		return map[string]time.Time{}, nil
	}

	out := map[string]time.Time{}
	var (
		failures int
		batches  int
		lastErr  error
	)
	for start := 0; start < len(userKeys); start += earliestBatchSize {
		end := start + earliestBatchSize
		if end > len(userKeys) {
			end = len(userKeys)
		}
		batches++

		dates, err := f.reader.EarliestDepositDates(ctx, userKeys[start:end])
		if err != nil {
			failures++
			lastErr = err
			continue
		}
		for k, v := range dates {
			out[k] = v
		}
	}

	if failures == batches && len(out) == 0 && lastErr != nil {
		return nil, fmt.Errorf("%w: %v", errAllBatchesFailed, lastErr)
	}

	return out, nil
}
