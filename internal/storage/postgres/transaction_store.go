package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"apt-market-lab/internal/domain"
	"apt-market-lab/internal/storage"
	"apt-market-lab/internal/storage/migrations"
)

// TransactionStore implements storage.TransactionStore using PostgreSQL.
// Postgres is the system of record: the uniqueness constraint on the dedup
// tuple is what makes replayed monthly fetches safe.
type TransactionStore struct {
	pool *Pool
}

// NewTransactionStore creates a new TransactionStore.
func NewTransactionStore(pool *Pool) *TransactionStore {
	return &TransactionStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TransactionStore = (*TransactionStore)(nil)

// Init applies the embedded migrations. Migrations are idempotent, so Init
// is safe to call on every startup.
func (s *TransactionStore) Init(ctx context.Context) error {
	return migrations.RunPostgres(ctx, s.pool)
}

// UpsertBulk inserts transactions whose dedup key is not already stored.
// ON CONFLICT DO NOTHING makes duplicate rows a silent skip, not an error.
// Returns the number of rows actually inserted.
func (s *TransactionStore) UpsertBulk(ctx context.Context, txs []*domain.Transaction) (int, error) {
	if len(txs) == 0 {
		return 0, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO transactions (
			region_code, deal_year, deal_month, deal_day, year_month,
			complex_id, complex_name, legal_dong_name, lot_number,
			floor_area_m2, price_10k_won, floor, build_year, ingested_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10, $11, $12, $13, $14
		)
		ON CONFLICT (region_code, complex_id, deal_year, deal_month, deal_day,
			floor_area_m2, floor, price_10k_won) DO NOTHING
	`

	now := time.Now().UTC()
	inserted := 0
	for _, t := range txs {
		if t == nil || t.RegionCode == "" {
			return 0, storage.ErrInvalidInput
		}

		ingestedAt := t.IngestedAt
		if ingestedAt.IsZero() {
			ingestedAt = now
		}

		tag, err := tx.Exec(ctx, query,
			t.RegionCode, t.DealYear, t.DealMonth, t.DealDay, t.YearMonth(),
			t.ComplexID, t.ComplexName, t.LegalDongName, t.LotNumber,
			t.FloorAreaM2, t.Price10kWon, t.Floor, t.BuildYear, ingestedAt,
		)
		if err != nil {
			return 0, fmt.Errorf("insert transaction: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}

	return inserted, nil
}

// LatestPeriod returns the maximum year_month stored for a region, or
// storage.ErrNoData when the region has no transactions.
func (s *TransactionStore) LatestPeriod(ctx context.Context, regionCode string) (int, error) {
	query := `SELECT MAX(year_month) FROM transactions WHERE region_code = $1`

	var period *int
	if err := s.pool.QueryRow(ctx, query, regionCode).Scan(&period); err != nil {
		return 0, fmt.Errorf("query latest period: %w", err)
	}
	if period == nil {
		return 0, storage.ErrNoData
	}
	return *period, nil
}

// LoadByRegion returns all transactions for a region.
func (s *TransactionStore) LoadByRegion(ctx context.Context, regionCode string) ([]*domain.Transaction, error) {
	query := `
		SELECT
			region_code, deal_year, deal_month, deal_day,
			complex_id, complex_name, legal_dong_name, lot_number,
			floor_area_m2, price_10k_won, floor, build_year, ingested_at
		FROM transactions
		WHERE region_code = $1
	`

	rows, err := s.pool.Query(ctx, query, regionCode)
	if err != nil {
		return nil, fmt.Errorf("load transactions by region: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// DeleteRegion removes all transactions for a region.
func (s *TransactionStore) DeleteRegion(ctx context.Context, regionCode string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM transactions WHERE region_code = $1`, regionCode); err != nil {
		return fmt.Errorf("delete region: %w", err)
	}
	return nil
}

// scanTransactions scans multiple rows into a slice of Transaction.
func scanTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var txs []*domain.Transaction

	for rows.Next() {
		var t domain.Transaction

		err := rows.Scan(
			&t.RegionCode, &t.DealYear, &t.DealMonth, &t.DealDay,
			&t.ComplexID, &t.ComplexName, &t.LegalDongName, &t.LotNumber,
			&t.FloorAreaM2, &t.Price10kWon, &t.Floor, &t.BuildYear, &t.IngestedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}

		txs = append(txs, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}

	return txs, nil
}
