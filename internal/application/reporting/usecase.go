package reporting

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/amanahtour/gudang-api/internal/domain/entity"
	"github.com/amanahtour/gudang-api/internal/domain/repository"
)

// koefisien ambang medium: quantity <= 1.5 x minimum.
var mediumFactor = decimal.NewFromFloat(1.5)

// SummaryCache cache hasil ringkasan stok per filter. Implementasi Redis
// di infrastructure/cache; noop kalau cache dimatikan.
type SummaryCache interface {
	Get(ctx context.Context, filter repository.SummaryFilter) ([]*entity.StockSummaryRow, bool, error)
	Set(ctx context.Context, filter repository.SummaryFilter, rows []*entity.StockSummaryRow) error
	InvalidateAll(ctx context.Context) error
}

// StockSummaryUseCase accessor baca untuk ringkasan stok dashboard.
// Klasifikasi status: quantity <= minimum => low, <= 1.5 x minimum =>
// medium, selain itu good. Tidak pernah mengubah state ledger.
type StockSummaryUseCase struct {
	summaryRepo repository.SummaryRepository
	cache       SummaryCache
}

// NewStockSummaryUseCase membangun accessor. cache boleh nil (tanpa cache).
func NewStockSummaryUseCase(summaryRepo repository.SummaryRepository, cache SummaryCache) *StockSummaryUseCase {
	return &StockSummaryUseCase{summaryRepo: summaryRepo, cache: cache}
}

// StockSummary mengembalikan baris ringkasan terklasifikasi, lewat cache
// bila tersedia.
func (uc *StockSummaryUseCase) StockSummary(ctx context.Context, filter repository.SummaryFilter) ([]*entity.StockSummaryRow, error) {
	if uc.cache != nil {
		if rows, ok, err := uc.cache.Get(ctx, filter); err == nil && ok {
			return rows, nil
		}
	}

	rows, err := uc.summaryRepo.StockSummary(filter)
	if err != nil {
		return nil, fmt.Errorf("ringkasan stok: %w", err)
	}
	for _, row := range rows {
		row.Status = ClassifyStock(row.Quantity, row.MinimumStock)
	}

	if uc.cache != nil {
		// Gagal menulis cache tidak menggagalkan request.
		_ = uc.cache.Set(ctx, filter, rows)
	}
	return rows, nil
}

// Invalidate membuang seluruh entri cache ringkasan. Dipanggil handler
// setelah transaksi movement commit.
func (uc *StockSummaryUseCase) Invalidate(ctx context.Context) {
	if uc.cache != nil {
		_ = uc.cache.InvalidateAll(ctx)
	}
}

// ClassifyStock mengklasifikasikan satu saldo terhadap ambang minimumnya.
func ClassifyStock(quantity, minimum decimal.Decimal) string {
	switch {
	case quantity.LessThanOrEqual(minimum):
		return entity.StockStatusLow
	case quantity.LessThanOrEqual(minimum.Mul(mediumFactor)):
		return entity.StockStatusMedium
	default:
		return entity.StockStatusGood
	}
}
