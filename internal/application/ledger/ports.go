package ledger

import (
	"context"

	"github.com/amanahtour/gudang-api/internal/domain/repository"
)

// TxRunner menjalankan fungsi di dalam satu transaksi DB, memberikan
// repository yang terikat ke transaksi itu. Menjamin atomisitas untuk
// ledger engine: movement, saldo gudang, dan agregat global ditulis
// commit-atau-rollback sebagai satu kesatuan.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.WarehouseStockRepository,
		itemRepo repository.ItemRepository,
	) error) error
}
