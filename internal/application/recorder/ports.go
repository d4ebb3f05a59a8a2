package recorder

import (
	"context"

	"github.com/amanahtour/gudang-api/internal/domain/repository"
)

// TxRunner varian runner transaksi untuk recorder: selain repo ledger,
// recorder butuh repo record bisnis (incoming/outgoing/transfer) di dalam
// transaksi yang sama supaya record bisnis dan movement tercipta atomik.
type TxRunner interface {
	RunRecorder(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.WarehouseStockRepository,
		itemRepo repository.ItemRepository,
		incomingRepo repository.IncomingRepository,
		outgoingRepo repository.OutgoingRepository,
		transferRepo repository.TransferRepository,
	) error) error
}

// LowStockMonitor dipanggil SETELAH commit (tidak pernah di dalam
// transaksi) untuk mengecek ambang minimum dan mengirim notifikasi.
type LowStockMonitor interface {
	CheckItem(ctx context.Context, itemID string)
}
