package recorder

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/amanahtour/gudang-api/internal/application/ledger"
	"github.com/amanahtour/gudang-api/internal/domain"
	"github.com/amanahtour/gudang-api/internal/domain/repository"
)

// TransferInput input transfer antar gudang.
type TransferInput struct {
	ItemID          string
	FromWarehouseID string
	ToWarehouseID   string
	Quantity        decimal.Decimal
	Notes           string
	UserID          string
}

// TransferResult hasil transfer.
type TransferResult struct {
	TransferID string `json:"transfer_id"`
}

// TransferRecorder membungkus TransferStock dalam satu transaksi. Record
// transfer dan kedua movement dimiliki engine; recorder hanya pemilik
// transaksi.
type TransferRecorder struct {
	txRunner TxRunner
	engine   *ledger.StockLedgerUseCase
}

// NewTransferRecorder membangun recorder transfer.
func NewTransferRecorder(txRunner TxRunner, engine *ledger.StockLedgerUseCase) *TransferRecorder {
	return &TransferRecorder{txRunner: txRunner, engine: engine}
}

// CreateTransfer menjalankan TransferStock di dalam satu transaksi.
func (rc *TransferRecorder) CreateTransfer(ctx context.Context, in TransferInput) (*TransferResult, error) {
	if in.ItemID == "" || in.FromWarehouseID == "" || in.ToWarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}

	var result TransferResult
	err := rc.txRunner.RunRecorder(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.WarehouseStockRepository,
		itemRepo repository.ItemRepository,
		_ repository.IncomingRepository,
		_ repository.OutgoingRepository,
		transferRepo repository.TransferRepository,
	) error {
		transferID, err := rc.engine.TransferStock(movRepo, stockRepo, itemRepo, transferRepo, ledger.TransferInput{
			ItemID:          in.ItemID,
			FromWarehouseID: in.FromWarehouseID,
			ToWarehouseID:   in.ToWarehouseID,
			Quantity:        in.Quantity,
			Notes:           in.Notes,
			UserID:          in.UserID,
		})
		if err != nil {
			return err
		}
		result = TransferResult{TransferID: transferID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
