package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/amanahtour/gudang-api/internal/domain/entity"
	"github.com/amanahtour/gudang-api/internal/domain/repository"
)

var _ repository.IncomingRepository = (*IncomingRepo)(nil)

// IncomingRepo implementasi IncomingRepository di PostgreSQL (bisa pool
// atau tx).
type IncomingRepo struct {
	q Querier
}

// NewIncomingRepository membangun adapter barang masuk. Beri pool atau tx.
func NewIncomingRepository(q Querier) *IncomingRepo {
	return &IncomingRepo{q: q}
}

const incomingColumns = `id, supplier_id, item_id, warehouse_id, quantity, unit_price, total_price, invoice_no, received_at, notes, created_at`

// Create menyimpan record barang masuk.
func (r *IncomingRepo) Create(receipt *entity.IncomingReceipt) error {
	query := `
		INSERT INTO incoming_receipts (` + incomingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	supplierID := (*string)(nil)
	if receipt.SupplierID != "" {
		supplierID = &receipt.SupplierID
	}
	_, err := r.q.Exec(context.Background(), query,
		receipt.ID, supplierID, receipt.ItemID, receipt.WarehouseID,
		receipt.Quantity, receipt.UnitPrice, receipt.TotalPrice,
		receipt.InvoiceNo, receipt.ReceivedAt, receipt.Notes, receipt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert incoming receipt: %w", err)
	}
	return nil
}

// GetByID mengambil satu record barang masuk, nil bila tidak ada.
func (r *IncomingRepo) GetByID(id string) (*entity.IncomingReceipt, error) {
	query := `SELECT ` + incomingColumns + ` FROM incoming_receipts WHERE id = $1`
	rec, err := scanIncoming(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get incoming receipt: %w", err)
	}
	return rec, nil
}

// List daftar barang masuk terbaru dulu.
func (r *IncomingRepo) List(limit, offset int) ([]*entity.IncomingReceipt, error) {
	query := `
		SELECT ` + incomingColumns + `
		FROM incoming_receipts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list incoming receipts: %w", err)
	}
	defer rows.Close()

	var list []*entity.IncomingReceipt
	for rows.Next() {
		rec, err := scanIncoming(rows)
		if err != nil {
			return nil, fmt.Errorf("scan incoming receipt: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func scanIncoming(row pgx.Row) (*entity.IncomingReceipt, error) {
	var rec entity.IncomingReceipt
	var supplierID *string
	err := row.Scan(&rec.ID, &supplierID, &rec.ItemID, &rec.WarehouseID,
		&rec.Quantity, &rec.UnitPrice, &rec.TotalPrice,
		&rec.InvoiceNo, &rec.ReceivedAt, &rec.Notes, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	if supplierID != nil {
		rec.SupplierID = *supplierID
	}
	return &rec, nil
}
