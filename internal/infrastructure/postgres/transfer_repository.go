package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/amanahtour/gudang-api/internal/domain"
	"github.com/amanahtour/gudang-api/internal/domain/entity"
	"github.com/amanahtour/gudang-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementasi TransferRepository di PostgreSQL (bisa pool
// atau tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository membangun adapter transfer. Beri pool atau tx.
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, transfer_number, item_id, from_warehouse_id, to_warehouse_id, quantity, status, notes, requested_by, created_at`

// Create menyimpan record transfer.
func (r *TransferRepo) Create(transfer *entity.Transfer) error {
	query := `
		INSERT INTO warehouse_transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.TransferNumber, transfer.ItemID,
		transfer.FromWarehouseID, transfer.ToWarehouseID, transfer.Quantity,
		transfer.Status, transfer.Notes, transfer.RequestedBy, transfer.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// Dua transfer di milidetik yang sama menabrak transfer_number.
			return fmt.Errorf("insert transfer %s: %w", transfer.TransferNumber, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByID mengambil satu transfer, nil bila tidak ada.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM warehouse_transfers WHERE id = $1`
	var t entity.Transfer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.TransferNumber, &t.ItemID, &t.FromWarehouseID, &t.ToWarehouseID,
		&t.Quantity, &t.Status, &t.Notes, &t.RequestedBy, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return &t, nil
}

// UpdateStatus mengubah status transfer (pending -> completed).
func (r *TransferRepo) UpdateStatus(id, status string) error {
	query := `UPDATE warehouse_transfers SET status = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update transfer status: transfer %s tidak ditemukan", id)
	}
	return nil
}

// List daftar transfer terbaru dulu.
func (r *TransferRepo) List(limit, offset int) ([]*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM warehouse_transfers
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Transfer
	for rows.Next() {
		var t entity.Transfer
		if err := rows.Scan(&t.ID, &t.TransferNumber, &t.ItemID, &t.FromWarehouseID, &t.ToWarehouseID,
			&t.Quantity, &t.Status, &t.Notes, &t.RequestedBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
