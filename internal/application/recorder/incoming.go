package recorder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amanahtour/gudang-api/internal/application/ledger"
	"github.com/amanahtour/gudang-api/internal/domain"
	"github.com/amanahtour/gudang-api/internal/domain/entity"
	"github.com/amanahtour/gudang-api/internal/domain/repository"
)

// IncomingInput input pencatatan barang masuk.
type IncomingInput struct {
	SupplierID  string
	ItemID      string
	WarehouseID string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	InvoiceNo   string
	ReceivedAt  time.Time
	Notes       string
}

// IncomingResult hasil pencatatan: id record bisnis + id movement.
type IncomingResult struct {
	ReceiptID  string `json:"receipt_id"`
	MovementID string `json:"movement_id"`
}

// IncomingRecorder menerjemahkan satu event barang masuk menjadi record
// bisnis + panggilan ledger engine dalam satu transaksi.
type IncomingRecorder struct {
	txRunner TxRunner
	engine   *ledger.StockLedgerUseCase
	monitor  LowStockMonitor
}

// NewIncomingRecorder membangun recorder barang masuk. monitor boleh nil.
func NewIncomingRecorder(txRunner TxRunner, engine *ledger.StockLedgerUseCase, monitor LowStockMonitor) *IncomingRecorder {
	return &IncomingRecorder{txRunner: txRunner, engine: engine, monitor: monitor}
}

// CreateIncoming: satu transaksi berisi insert record barang masuk (total =
// quantity x harga satuan) lalu RecordIncoming dengan reference menunjuk ke
// record itu. Gagal di langkah mana pun membatalkan keduanya.
func (rc *IncomingRecorder) CreateIncoming(ctx context.Context, in IncomingInput) (*IncomingResult, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) || in.UnitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.ItemID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}

	notes := in.Notes
	if notes == "" {
		notes = fmt.Sprintf("Barang masuk dari %s", in.InvoiceNo)
	}
	receivedAt := in.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}

	var result IncomingResult
	err := rc.txRunner.RunRecorder(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.WarehouseStockRepository,
		itemRepo repository.ItemRepository,
		incomingRepo repository.IncomingRepository,
		_ repository.OutgoingRepository,
		_ repository.TransferRepository,
	) error {
		receipt := &entity.IncomingReceipt{
			ID:          uuid.New().String(),
			SupplierID:  in.SupplierID,
			ItemID:      in.ItemID,
			WarehouseID: in.WarehouseID,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			TotalPrice:  in.Quantity.Mul(in.UnitPrice),
			InvoiceNo:   in.InvoiceNo,
			ReceivedAt:  receivedAt,
			Notes:       in.Notes,
			CreatedAt:   time.Now(),
		}
		if err := incomingRepo.Create(receipt); err != nil {
			return err
		}
		movementID, err := rc.engine.RecordIncoming(movRepo, stockRepo, itemRepo, ledger.MovementInput{
			ItemID:        in.ItemID,
			WarehouseID:   in.WarehouseID,
			Quantity:      in.Quantity,
			ReferenceType: entity.ReferenceTypeIncoming,
			ReferenceID:   receipt.ID,
			Notes:         notes,
		})
		if err != nil {
			return err
		}
		result = IncomingResult{ReceiptID: receipt.ID, MovementID: movementID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Notifikasi stok rendah setelah commit, di luar transaksi.
	if rc.monitor != nil {
		rc.monitor.CheckItem(ctx, in.ItemID)
	}
	return &result, nil
}
