package reporting_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amanahtour/gudang-api/internal/application/ledger"
	"github.com/amanahtour/gudang-api/internal/application/reporting"
	"github.com/amanahtour/gudang-api/internal/domain/entity"
	"github.com/amanahtour/gudang-api/internal/domain/repository"
	"github.com/amanahtour/gudang-api/internal/infrastructure/memory"
)

// fakeCache cache in-memory sederhana untuk memverifikasi alur hit/miss
// dan invalidasi.
type fakeCache struct {
	data map[repository.SummaryFilter][]*entity.StockSummaryRow
	hits int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[repository.SummaryFilter][]*entity.StockSummaryRow{}}
}

func (c *fakeCache) Get(_ context.Context, filter repository.SummaryFilter) ([]*entity.StockSummaryRow, bool, error) {
	rows, ok := c.data[filter]
	if ok {
		c.hits++
	}
	return rows, ok, nil
}

func (c *fakeCache) Set(_ context.Context, filter repository.SummaryFilter, rows []*entity.StockSummaryRow) error {
	c.data[filter] = rows
	return nil
}

func (c *fakeCache) InvalidateAll(context.Context) error {
	c.data = map[repository.SummaryFilter][]*entity.StockSummaryRow{}
	return nil
}

func TestClassifyStock(t *testing.T) {
	min := decimal.NewFromInt(10)

	cases := []struct {
		qty  int64
		want string
	}{
		{0, entity.StockStatusLow},
		{9, entity.StockStatusLow},
		{10, entity.StockStatusLow},    // tepat di minimum tetap low
		{11, entity.StockStatusMedium},
		{15, entity.StockStatusMedium}, // tepat di 1.5x minimum
		{16, entity.StockStatusGood},
		{100, entity.StockStatusGood},
	}
	for _, tc := range cases {
		got := reporting.ClassifyStock(decimal.NewFromInt(tc.qty), min)
		assert.Equal(t, tc.want, got, "qty=%d", tc.qty)
	}
}

func setupSummary(t *testing.T) (*memory.Store, string, string) {
	t.Helper()
	store := memory.New()
	itemID := "33333333-3333-3333-3333-333333333333"
	warehouseID := "cccccccc-cccc-cccc-cccc-cccccccccccc"
	store.SeedItem(&entity.Item{
		ID:              itemID,
		Code:            "KRS-001",
		Name:            "Kursi Roda",
		Unit:            "pcs",
		MinimumQuantity: decimal.NewFromInt(10),
	})
	store.SeedWarehouse(&entity.Warehouse{ID: warehouseID, Code: "GDG-C", Name: "Gudang C", IsActive: true})

	uc := ledger.NewStockLedgerUseCase()
	err := store.Run(context.Background(), func(
		movRepo repository.MovementRepository,
		stockRepo repository.WarehouseStockRepository,
		itemRepo repository.ItemRepository,
	) error {
		_, err := uc.RecordIncoming(movRepo, stockRepo, itemRepo, ledger.MovementInput{
			ItemID:      itemID,
			WarehouseID: warehouseID,
			Quantity:    decimal.NewFromInt(8),
		})
		return err
	})
	require.NoError(t, err)
	return store, itemID, warehouseID
}

func TestStockSummary_MengklasifikasiBaris(t *testing.T) {
	store, itemID, warehouseID := setupSummary(t)
	uc := reporting.NewStockSummaryUseCase(store.Summaries(), nil)

	rows, err := uc.StockSummary(context.Background(), repository.SummaryFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, itemID, row.ItemID)
	assert.Equal(t, warehouseID, row.WarehouseID)
	assert.True(t, row.Quantity.Equal(decimal.NewFromInt(8)))
	assert.Equal(t, entity.StockStatusLow, row.Status)
}

func TestStockSummary_MemakaiCache(t *testing.T) {
	store, _, warehouseID := setupSummary(t)
	cache := newFakeCache()
	uc := reporting.NewStockSummaryUseCase(store.Summaries(), cache)
	filter := repository.SummaryFilter{WarehouseID: warehouseID}

	_, err := uc.StockSummary(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 0, cache.hits)

	_, err = uc.StockSummary(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)

	uc.Invalidate(context.Background())
	_, err = uc.StockSummary(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits, "setelah invalidate harus miss lagi")
}
