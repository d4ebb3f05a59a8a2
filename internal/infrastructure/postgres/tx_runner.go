package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amanahtour/gudang-api/internal/application/ledger"
	"github.com/amanahtour/gudang-api/internal/application/recorder"
	"github.com/amanahtour/gudang-api/internal/domain/repository"
)

// Pastikan TxRunner memenuhi ledger.TxRunner dan recorder.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ recorder.TxRunner = (*TxRunner)(nil)

// TxRunner menjalankan callback di dalam satu transaksi PostgreSQL.
// Handle transaksi hanya dimiliki satu request dan tidak pernah dibagi
// antar goroutine.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner membangun runner dengan pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run memulai transaksi, menjalankan fn dengan repo ledger yang terikat ke
// tx itu, lalu Commit atau Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.WarehouseStockRepository,
	itemRepo repository.ItemRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewMovementRepository(tx)
	stockRepo := NewWarehouseStockRepository(tx)
	itemRepo := NewItemRepository(tx)

	if err := fn(movRepo, stockRepo, itemRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunRecorder seperti Run tapi juga memberikan repo record bisnis, supaya
// record incoming/outgoing/transfer dan movement-nya tercipta atomik
// dalam transaksi yang sama.
func (r *TxRunner) RunRecorder(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.WarehouseStockRepository,
	itemRepo repository.ItemRepository,
	incomingRepo repository.IncomingRepository,
	outgoingRepo repository.OutgoingRepository,
	transferRepo repository.TransferRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewMovementRepository(tx)
	stockRepo := NewWarehouseStockRepository(tx)
	itemRepo := NewItemRepository(tx)
	incomingRepo := NewIncomingRepository(tx)
	outgoingRepo := NewOutgoingRepository(tx)
	transferRepo := NewTransferRepository(tx)

	if err := fn(movRepo, stockRepo, itemRepo, incomingRepo, outgoingRepo, transferRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
