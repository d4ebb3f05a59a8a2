package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/amanahtour/gudang-api/internal/domain/entity"
	"github.com/amanahtour/gudang-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementasi MovementRepository di PostgreSQL (bisa pool
// atau tx). Tabel stock_movements append-only: tidak ada UPDATE/DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository membangun adapter. Beri pool atau tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create menyimpan satu movement.
func (r *MovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, item_id, warehouse_id, type, quantity, reference_type, reference_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ItemID, movement.WarehouseID, movement.Type,
		movement.Quantity, movement.ReferenceType, movement.ReferenceID,
		movement.Notes, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID mengambil satu movement.
func (r *MovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `
		SELECT id, item_id, warehouse_id, type, quantity, reference_type, reference_id, notes, created_at
		FROM stock_movements WHERE id = $1`
	var m entity.StockMovement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.ItemID, &m.WarehouseID, &m.Type, &m.Quantity,
		&m.ReferenceType, &m.ReferenceID, &m.Notes, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// SumByItemAndWarehouse menjumlahkan quantity bertanda untuk satu pasangan
// (barang, gudang). Bergantung pada index (item_id, warehouse_id).
func (r *MovementRepo) SumByItemAndWarehouse(itemID, warehouseID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM stock_movements
		WHERE item_id = $1 AND warehouse_id = $2`
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, itemID, warehouseID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum movements: %w", err)
	}
	return total, nil
}

// ListByItem daftar movement satu barang, terbaru dulu.
func (r *MovementRepo) ListByItem(itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, item_id, warehouse_id, type, quantity, reference_type, reference_id, notes, created_at
		FROM stock_movements
		WHERE item_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ItemID, &m.WarehouseID, &m.Type, &m.Quantity,
			&m.ReferenceType, &m.ReferenceID, &m.Notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
