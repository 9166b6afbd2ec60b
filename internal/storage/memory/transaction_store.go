package memory

import (
	"context"
	"sync"
	"time"

	"apt-market-lab/internal/domain"
	"apt-market-lab/internal/storage"
)

// TransactionStore is an in-memory implementation of
// storage.TransactionStore. It mirrors the postgres semantics: duplicate
// dedup keys are silently skipped on upsert.
type TransactionStore struct {
	mu   sync.RWMutex
	data map[domain.DedupKey]*domain.Transaction
}

// NewTransactionStore creates a new in-memory transaction store.
func NewTransactionStore() *TransactionStore {
	return &TransactionStore{
		data: make(map[domain.DedupKey]*domain.Transaction),
	}
}

// Compile-time interface check.
var _ storage.TransactionStore = (*TransactionStore)(nil)

// Init is a no-op; the map needs no schema.
func (s *TransactionStore) Init(_ context.Context) error {
	return nil
}

// UpsertBulk inserts transactions whose dedup key is not already stored.
// Duplicates, including intra-batch ones, are skipped silently. Returns the
// number of rows actually inserted. The batch is validated up front so that
// an invalid row rejects the whole batch, matching the transactional
// postgres backend.
func (s *TransactionStore) UpsertBulk(_ context.Context, txs []*domain.Transaction) (int, error) {
	if len(txs) == 0 {
		return 0, nil
	}

	for _, t := range txs {
		if t == nil || t.RegionCode == "" {
			return 0, storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	inserted := 0
	for _, t := range txs {
		key := t.Key()
		if _, exists := s.data[key]; exists {
			continue
		}

		stored := *t
		if stored.IngestedAt.IsZero() {
			stored.IngestedAt = now
		}
		s.data[key] = &stored
		inserted++
	}

	return inserted, nil
}

// LatestPeriod returns the maximum year_month stored for a region, or
// storage.ErrNoData when the region has no transactions.
func (s *TransactionStore) LatestPeriod(_ context.Context, regionCode string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	latest := 0
	found := false
	for _, t := range s.data {
		if t.RegionCode != regionCode {
			continue
		}
		found = true
		if ym := t.YearMonth(); ym > latest {
			latest = ym
		}
	}

	if !found {
		return 0, storage.ErrNoData
	}
	return latest, nil
}

// LoadByRegion returns all transactions for a region, unordered.
func (s *TransactionStore) LoadByRegion(_ context.Context, regionCode string) ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Transaction
	for _, t := range s.data {
		if t.RegionCode != regionCode {
			continue
		}
		stored := *t
		result = append(result, &stored)
	}
	return result, nil
}

// DeleteRegion removes all transactions for a region.
func (s *TransactionStore) DeleteRegion(_ context.Context, regionCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, t := range s.data {
		if t.RegionCode == regionCode {
			delete(s.data, key)
		}
	}
	return nil
}
