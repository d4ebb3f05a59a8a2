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

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementasi ItemRepository di PostgreSQL (bisa pool atau tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository membangun adapter master barang. Beri pool atau tx.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, code, name, unit, minimum_quantity, on_hand_quantity, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(&it.ID, &it.Code, &it.Name, &it.Unit,
		&it.MinimumQuantity, &it.OnHandQuantity, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// GetByID mengambil satu barang, nil bila tidak ada.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	it, err := scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// GetForUpdate seperti GetByID tapi mengunci baris sampai akhir transaksi.
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	it, err := scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return it, nil
}

// List seluruh barang, urut nama.
func (r *ItemRepo) List() ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY name`
	return r.list(query)
}

// ListBelowMinimum barang dengan on-hand <= minimum (minimum > 0), urut
// dari rasio paling kritis. Dipakai monitor stok rendah.
func (r *ItemRepo) ListBelowMinimum() ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE on_hand_quantity <= minimum_quantity AND minimum_quantity > 0
		ORDER BY on_hand_quantity / GREATEST(minimum_quantity, 1) ASC`
	return r.list(query)
}

func (r *ItemRepo) list(query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// UpdateOnHand menulis agregat global hasil rekalkulasi ledger engine.
func (r *ItemRepo) UpdateOnHand(id string, quantity decimal.Decimal) error {
	query := `UPDATE items SET on_hand_quantity = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, quantity)
	if err != nil {
		return fmt.Errorf("update on-hand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update on-hand: barang %s tidak ditemukan", id)
	}
	return nil
}
