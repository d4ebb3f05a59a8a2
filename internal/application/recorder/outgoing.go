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

// OutgoingInput input pencatatan barang keluar.
type OutgoingInput struct {
	ItemID      string
	WarehouseID string
	Quantity    decimal.Decimal
	Recipient   string
	Destination string
	IssuedAt    time.Time
	Notes       string
}

// OutgoingResult hasil pencatatan barang keluar.
type OutgoingResult struct {
	IssueID    string `json:"issue_id"`
	MovementID string `json:"movement_id"`
}

// OutgoingRecorder menerjemahkan satu event barang keluar menjadi record
// bisnis + panggilan ledger engine dalam satu transaksi. Validasi saldo
// terjadi di dalam RecordOutgoing, di bawah row lock.
type OutgoingRecorder struct {
	txRunner TxRunner
	engine   *ledger.StockLedgerUseCase
	monitor  LowStockMonitor
}

// NewOutgoingRecorder membangun recorder barang keluar. monitor boleh nil.
func NewOutgoingRecorder(txRunner TxRunner, engine *ledger.StockLedgerUseCase, monitor LowStockMonitor) *OutgoingRecorder {
	return &OutgoingRecorder{txRunner: txRunner, engine: engine, monitor: monitor}
}

// CreateOutgoing: satu transaksi berisi insert record barang keluar lalu
// RecordOutgoing dengan reference menunjuk ke record itu. Saldo kurang =>
// InsufficientStockError dan tidak ada state apa pun yang ter-commit.
func (rc *OutgoingRecorder) CreateOutgoing(ctx context.Context, in OutgoingInput) (*OutgoingResult, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) || in.ItemID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}

	notes := in.Notes
	if notes == "" {
		target := in.Destination
		if target == "" {
			target = in.Recipient
		}
		notes = fmt.Sprintf("Barang keluar ke %s", target)
	}
	issuedAt := in.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = time.Now()
	}

	var result OutgoingResult
	err := rc.txRunner.RunRecorder(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.WarehouseStockRepository,
		itemRepo repository.ItemRepository,
		_ repository.IncomingRepository,
		outgoingRepo repository.OutgoingRepository,
		_ repository.TransferRepository,
	) error {
		issue := &entity.OutgoingIssue{
			ID:          uuid.New().String(),
			ItemID:      in.ItemID,
			WarehouseID: in.WarehouseID,
			Quantity:    in.Quantity,
			Recipient:   in.Recipient,
			Destination: in.Destination,
			IssuedAt:    issuedAt,
			Notes:       in.Notes,
			CreatedAt:   time.Now(),
		}
		if err := outgoingRepo.Create(issue); err != nil {
			return err
		}
		movementID, err := rc.engine.RecordOutgoing(movRepo, stockRepo, itemRepo, ledger.MovementInput{
			ItemID:        in.ItemID,
			WarehouseID:   in.WarehouseID,
			Quantity:      in.Quantity,
			ReferenceType: entity.ReferenceTypeOutgoing,
			ReferenceID:   issue.ID,
			Notes:         notes,
		})
		if err != nil {
			return err
		}
		result = OutgoingResult{IssueID: issue.ID, MovementID: movementID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if rc.monitor != nil {
		rc.monitor.CheckItem(ctx, in.ItemID)
	}
	return &result, nil
}
