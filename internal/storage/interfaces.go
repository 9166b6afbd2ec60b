package storage

import (
	"context"

	"apt-market-lab/internal/domain"
)

// TransactionStore provides append-only, deduplicated persistence of
// canonical transactions, partitioned logically by region code.
//
// The store never updates rows: the only mutations are insert-if-absent and
// bulk delete-by-region. Duplicate-key conflicts on upsert are the intended
// dedup mechanism and are silently skipped, never surfaced as errors.
// Connectivity and schema failures are real errors.
type TransactionStore interface {
	// Init idempotently ensures the schema and its uniqueness constraint
	// exist.
	Init(ctx context.Context) error

	// UpsertBulk inserts transactions whose dedup key is not already stored.
	// Conflicting rows are skipped silently. Returns the number of rows
	// actually inserted, which makes replayed or overlapping monthly fetches
	// observable but harmless.
	UpsertBulk(ctx context.Context, txs []*domain.Transaction) (int, error)

	// LatestPeriod returns the maximum YYYYMM stored for a region, or
	// ErrNoData when the region has no transactions. Used to compute the
	// next incremental fetch window.
	LatestPeriod(ctx context.Context, regionCode string) (int, error)

	// LoadByRegion returns all transactions for a region. Order is not
	// guaranteed; callers sort as needed.
	LoadByRegion(ctx context.Context, regionCode string) ([]*domain.Transaction, error)

	// DeleteRegion removes all transactions for a region (force full
	// resync).
	DeleteRegion(ctx context.Context, regionCode string) error
}
