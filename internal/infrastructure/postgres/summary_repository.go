package postgres

import (
	"context"
	"fmt"

	"github.com/amanahtour/gudang-api/internal/domain/entity"
	"github.com/amanahtour/gudang-api/internal/domain/repository"
)

var _ repository.SummaryRepository = (*SummaryRepo)(nil)

// SummaryRepo implementasi SummaryRepository di PostgreSQL. Read-only.
type SummaryRepo struct {
	q Querier
}

// NewSummaryRepository membangun accessor ringkasan stok.
func NewSummaryRepository(q Querier) *SummaryRepo {
	return &SummaryRepo{q: q}
}

// StockSummary join warehouse_stock x items x warehouses dengan filter
// opsional. Kolom status dibiarkan kosong; klasifikasi dilakukan use case.
func (r *SummaryRepo) StockSummary(filter repository.SummaryFilter) ([]*entity.StockSummaryRow, error) {
	query := `
		SELECT ws.item_id, i.code, i.name, ws.warehouse_id, w.name,
		       i.unit, ws.quantity, i.minimum_quantity, ws.updated_at
		FROM warehouse_stock ws
		JOIN items i ON ws.item_id = i.id
		JOIN warehouses w ON ws.warehouse_id = w.id
		WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ItemID != "" {
		query += fmt.Sprintf(" AND ws.item_id = $%d", pos)
		args = append(args, filter.ItemID)
		pos++
	}
	if filter.WarehouseID != "" {
		query += fmt.Sprintf(" AND ws.warehouse_id = $%d", pos)
		args = append(args, filter.WarehouseID)
		pos++
	}
	query += " ORDER BY i.name, w.name"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("stock summary: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockSummaryRow
	for rows.Next() {
		var row entity.StockSummaryRow
		if err := rows.Scan(&row.ItemID, &row.ItemCode, &row.ItemName,
			&row.WarehouseID, &row.WarehouseName, &row.Unit,
			&row.Quantity, &row.MinimumStock, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}
