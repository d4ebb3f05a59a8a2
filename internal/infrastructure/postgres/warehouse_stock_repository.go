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

var _ repository.WarehouseStockRepository = (*WarehouseStockRepo)(nil)

// WarehouseStockRepo implementasi WarehouseStockRepository di PostgreSQL
// (bisa pool atau tx).
type WarehouseStockRepo struct {
	q Querier
}

// NewWarehouseStockRepository membangun adapter saldo stok. Beri pool atau tx.
func NewWarehouseStockRepository(q Querier) *WarehouseStockRepo {
	return &WarehouseStockRepo{q: q}
}

const warehouseStockSelect = `
	SELECT item_id, warehouse_id, quantity, updated_at
	FROM warehouse_stock WHERE item_id = $1 AND warehouse_id = $2`

// Get mengambil saldo satu pasangan (barang, gudang). Pasangan yang belum
// pernah bergerak dianggap bersaldo nol, bukan error.
func (r *WarehouseStockRepo) Get(itemID, warehouseID string) (*entity.WarehouseStock, error) {
	var s entity.WarehouseStock
	err := r.q.QueryRow(context.Background(), warehouseStockSelect, itemID, warehouseID).Scan(
		&s.ItemID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.WarehouseStock{ItemID: itemID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get warehouse stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate seperti Get tapi mengunci baris (SELECT FOR UPDATE) sampai
// akhir transaksi.
func (r *WarehouseStockRepo) GetForUpdate(itemID, warehouseID string) (*entity.WarehouseStock, error) {
	var s entity.WarehouseStock
	err := r.q.QueryRow(context.Background(), warehouseStockSelect+` FOR UPDATE`, itemID, warehouseID).Scan(
		&s.ItemID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.WarehouseStock{ItemID: itemID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get warehouse stock for update: %w", err)
	}
	return &s, nil
}

// Upsert menulis saldo hasil rekalkulasi (insert pada movement pertama,
// update setelahnya).
func (r *WarehouseStockRepo) Upsert(stock *entity.WarehouseStock) error {
	query := `
		INSERT INTO warehouse_stock (item_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (item_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.ItemID, stock.WarehouseID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert warehouse stock: %w", err)
	}
	return nil
}

// SumByItem menjumlahkan saldo seluruh gudang untuk satu barang.
func (r *WarehouseStockRepo) SumByItem(itemID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM warehouse_stock WHERE item_id = $1`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, itemID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum warehouse stock: %w", err)
	}
	return total, nil
}

// ListByItem daftar saldo per gudang untuk satu barang.
func (r *WarehouseStockRepo) ListByItem(itemID string) ([]*entity.WarehouseStock, error) {
	query := `
		SELECT item_id, warehouse_id, quantity, updated_at
		FROM warehouse_stock WHERE item_id = $1
		ORDER BY warehouse_id`
	rows, err := r.q.Query(context.Background(), query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list warehouse stock: %w", err)
	}
	defer rows.Close()

	var list []*entity.WarehouseStock
	for rows.Next() {
		var s entity.WarehouseStock
		if err := rows.Scan(&s.ItemID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
