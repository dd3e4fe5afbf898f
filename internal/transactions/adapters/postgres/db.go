package postgres

import (
	"context"
	"database/sql"
)

// DB is the narrow write-side surface the ingestion repository needs.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
