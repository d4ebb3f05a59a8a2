package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/amanahtour/gudang-api/internal/domain/entity"
	"github.com/amanahtour/gudang-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementasi WarehouseRepository di PostgreSQL. Kolom
// is_active baru ada di skema terbaru; caps menentukan apakah kolom itu
// ikut di-select dan dipakai memfilter listing.
type WarehouseRepo struct {
	q    Querier
	caps *SchemaCapabilities
}

// NewWarehouseRepository membangun adapter gudang.
func NewWarehouseRepository(q Querier, caps *SchemaCapabilities) *WarehouseRepo {
	return &WarehouseRepo{q: q, caps: caps}
}

func (r *WarehouseRepo) hasIsActive() bool {
	return r.caps != nil && r.caps.WarehouseIsActive
}

func (r *WarehouseRepo) columns() string {
	if r.hasIsActive() {
		return `id, code, name, branch_id, is_active, created_at, updated_at`
	}
	return `id, code, name, branch_id, true, created_at, updated_at`
}

// GetByID mengambil satu gudang, nil bila tidak ada.
func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	query := `SELECT ` + r.columns() + ` FROM warehouses WHERE id = $1`
	w, err := scanWarehouse(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return w, nil
}

// List seluruh gudang untuk dropdown, urut nama; hanya yang aktif bila
// skema mendukung.
func (r *WarehouseRepo) List() ([]*entity.Warehouse, error) {
	query := `SELECT ` + r.columns() + ` FROM warehouses`
	if r.hasIsActive() {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name`

	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()

	var list []*entity.Warehouse
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

func scanWarehouse(row pgx.Row) (*entity.Warehouse, error) {
	var w entity.Warehouse
	var branchID *string
	err := row.Scan(&w.ID, &w.Code, &w.Name, &branchID, &w.IsActive, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if branchID != nil {
		w.BranchID = *branchID
	}
	return &w, nil
}
