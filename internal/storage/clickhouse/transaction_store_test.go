package clickhouse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apt-market-lab/internal/domain"
	"apt-market-lab/internal/storage"
)

// testTx builds a transaction with a distinct dedup key per deal day.
func testTx(region string, year, month, day int) *domain.Transaction {
	return &domain.Transaction{
		RegionCode:    region,
		DealYear:      year,
		DealMonth:     month,
		DealDay:       day,
		ComplexID:     "11680-123",
		ComplexName:   "래미안",
		LegalDongName: "대치동",
		LotNumber:     "316",
		FloorAreaM2:   84.97,
		Price10kWon:   150000,
		Floor:         12,
		BuildYear:     2015,
	}
}

func TestTransactionStore_UpsertAndLoad(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTransactionStore(conn)

	inserted, err := store.UpsertBulk(ctx, []*domain.Transaction{
		testTx("11680", 2025, 6, 1),
		testTx("11680", 2025, 6, 2),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	got, err := store.LoadByRegion(ctx, "11680")
	require.NoError(t, err)
	require.Len(t, got, 2)

	byDay := map[int]*domain.Transaction{}
	for _, g := range got {
		byDay[g.DealDay] = g
	}
	loaded := byDay[1]
	require.NotNil(t, loaded)
	assert.Equal(t, "래미안", loaded.ComplexName)
	assert.InDelta(t, 84.97, loaded.FloorAreaM2, 0.0001)
	assert.Equal(t, int64(150000), loaded.Price10kWon)
	assert.Equal(t, 2015, loaded.BuildYear)
}

func TestTransactionStore_ReUpsertIsNoOp(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTransactionStore(conn)

	batch := []*domain.Transaction{testTx("11680", 2025, 6, 1), testTx("11680", 2025, 6, 2)}

	inserted, err := store.UpsertBulk(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	// Replay: the pre-filter against stored keys skips every row
	inserted, err = store.UpsertBulk(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)

	got, err := store.LoadByRegion(ctx, "11680")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestTransactionStore_IntraBatchDuplicate(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTransactionStore(conn)

	inserted, err := store.UpsertBulk(ctx, []*domain.Transaction{
		testTx("11680", 2025, 6, 1),
		testTx("11680", 2025, 6, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
}

func TestTransactionStore_LatestPeriod(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTransactionStore(conn)

	_, err := store.LatestPeriod(ctx, "11680")
	assert.ErrorIs(t, err, storage.ErrNoData)

	_, err = store.UpsertBulk(ctx, []*domain.Transaction{
		testTx("11680", 2024, 12, 1),
		testTx("11680", 2025, 6, 1),
	})
	require.NoError(t, err)

	latest, err := store.LatestPeriod(ctx, "11680")
	require.NoError(t, err)
	assert.Equal(t, 202506, latest)
}

func TestTransactionStore_DeleteRegion(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTransactionStore(conn)

	_, err := store.UpsertBulk(ctx, []*domain.Transaction{
		testTx("11680", 2025, 6, 1),
		testTx("99999", 2025, 6, 1),
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteRegion(ctx, "11680"))

	_, err = store.LatestPeriod(ctx, "11680")
	assert.ErrorIs(t, err, storage.ErrNoData)

	got, err := store.LoadByRegion(ctx, "99999")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestTransactionStore_InvalidInput(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTransactionStore(conn)

	_, err := store.UpsertBulk(ctx, []*domain.Transaction{{}})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}
