package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"apt-market-lab/internal/domain"
	"apt-market-lab/internal/storage"
	"apt-market-lab/internal/storage/migrations"
)

// TransactionStore implements storage.TransactionStore using ClickHouse.
//
// The table is a ReplacingMergeTree keyed by the dedup tuple. The engine
// collapses duplicate keys asynchronously, so reads go through FINAL and
// upserts pre-filter against the stored key set to keep the inserted count
// exact. Intended as an analytics-grade backend; postgres remains the
// system of record.
type TransactionStore struct {
	conn *Conn
}

// NewTransactionStore creates a new TransactionStore.
func NewTransactionStore(conn *Conn) *TransactionStore {
	return &TransactionStore{conn: conn}
}

// Compile-time interface check.
var _ storage.TransactionStore = (*TransactionStore)(nil)

// Init applies the embedded migrations.
func (s *TransactionStore) Init(ctx context.Context) error {
	return migrations.RunClickhouse(ctx, s.conn)
}

// UpsertBulk inserts transactions whose dedup key is not already stored.
// Duplicates, including intra-batch ones, are skipped silently.
func (s *TransactionStore) UpsertBulk(ctx context.Context, txs []*domain.Transaction) (int, error) {
	if len(txs) == 0 {
		return 0, nil
	}

	regions := make(map[string]struct{})
	for _, t := range txs {
		if t == nil || t.RegionCode == "" {
			return 0, storage.ErrInvalidInput
		}
		regions[t.RegionCode] = struct{}{}
	}

	seen := make(map[domain.DedupKey]struct{})
	for region := range regions {
		keys, err := s.existingKeys(ctx, region)
		if err != nil {
			return 0, fmt.Errorf("load existing keys: %w", err)
		}
		for k := range keys {
			seen[k] = struct{}{}
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO transactions (
			region_code, deal_year, deal_month, deal_day, year_month,
			complex_id, complex_name, legal_dong_name, lot_number,
			floor_area_m2, price_10k_won, floor, build_year, ingested_at
		)
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare batch: %w", err)
	}

	now := time.Now().UTC()
	inserted := 0
	for _, t := range txs {
		key := t.Key()
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}

		ingestedAt := t.IngestedAt
		if ingestedAt.IsZero() {
			ingestedAt = now
		}

		err = batch.Append(
			t.RegionCode, int32(t.DealYear), int32(t.DealMonth), int32(t.DealDay), int32(t.YearMonth()),
			t.ComplexID, t.ComplexName, t.LegalDongName, t.LotNumber,
			t.FloorAreaM2, t.Price10kWon, int32(t.Floor), int32(t.BuildYear), ingestedAt,
		)
		if err != nil {
			return 0, fmt.Errorf("append to batch: %w", err)
		}
		inserted++
	}

	if inserted == 0 {
		return 0, nil
	}

	if err := batch.Send(); err != nil {
		return 0, fmt.Errorf("send batch: %w", err)
	}

	return inserted, nil
}

// LatestPeriod returns the maximum year_month stored for a region, or
// storage.ErrNoData when the region has no transactions.
func (s *TransactionStore) LatestPeriod(ctx context.Context, regionCode string) (int, error) {
	query := `
		SELECT count(), max(year_month)
		FROM transactions FINAL
		WHERE region_code = ?
	`

	var count uint64
	var period int32
	if err := s.conn.QueryRow(ctx, query, regionCode).Scan(&count, &period); err != nil {
		return 0, fmt.Errorf("query latest period: %w", err)
	}
	if count == 0 {
		return 0, storage.ErrNoData
	}
	return int(period), nil
}

// LoadByRegion returns all transactions for a region.
func (s *TransactionStore) LoadByRegion(ctx context.Context, regionCode string) ([]*domain.Transaction, error) {
	query := `
		SELECT
			region_code, deal_year, deal_month, deal_day,
			complex_id, complex_name, legal_dong_name, lot_number,
			floor_area_m2, price_10k_won, floor, build_year, ingested_at
		FROM transactions FINAL
		WHERE region_code = ?
	`

	rows, err := s.conn.Query(ctx, query, regionCode)
	if err != nil {
		return nil, fmt.Errorf("load transactions by region: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// DeleteRegion removes all transactions for a region. Lightweight deletes
// apply on subsequent reads.
func (s *TransactionStore) DeleteRegion(ctx context.Context, regionCode string) error {
	if err := s.conn.Exec(ctx, `DELETE FROM transactions WHERE region_code = ?`, regionCode); err != nil {
		return fmt.Errorf("delete region: %w", err)
	}
	return nil
}

// existingKeys loads the dedup keys already stored for a region.
func (s *TransactionStore) existingKeys(ctx context.Context, regionCode string) (map[domain.DedupKey]struct{}, error) {
	query := `
		SELECT complex_id, deal_year, deal_month, deal_day,
		       floor_area_m2, floor, price_10k_won
		FROM transactions FINAL
		WHERE region_code = ?
	`

	rows, err := s.conn.Query(ctx, query, regionCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make(map[domain.DedupKey]struct{})
	for rows.Next() {
		var (
			complexID                    string
			dealYear, dealMonth, dealDay int32
			floorAreaM2                  float64
			floor                        int32
			price10kWon                  int64
		)
		if err := rows.Scan(&complexID, &dealYear, &dealMonth, &dealDay, &floorAreaM2, &floor, &price10kWon); err != nil {
			return nil, err
		}
		keys[domain.DedupKey{
			RegionCode:  regionCode,
			ComplexID:   complexID,
			DealYear:    int(dealYear),
			DealMonth:   int(dealMonth),
			DealDay:     int(dealDay),
			FloorAreaM2: floorAreaM2,
			Floor:       int(floor),
			Price10kWon: price10kWon,
		}] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return keys, nil
}

// scanTransactions scans multiple rows into a slice of Transaction.
func scanTransactions(rows driver.Rows) ([]*domain.Transaction, error) {
	var txs []*domain.Transaction

	for rows.Next() {
		var (
			t                            domain.Transaction
			dealYear, dealMonth, dealDay int32
			floor, buildYear             int32
		)

		err := rows.Scan(
			&t.RegionCode, &dealYear, &dealMonth, &dealDay,
			&t.ComplexID, &t.ComplexName, &t.LegalDongName, &t.LotNumber,
			&t.FloorAreaM2, &t.Price10kWon, &floor, &buildYear, &t.IngestedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}

		t.DealYear = int(dealYear)
		t.DealMonth = int(dealMonth)
		t.DealDay = int(dealDay)
		t.Floor = int(floor)
		t.BuildYear = int(buildYear)

		txs = append(txs, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}

	return txs, nil
}
