package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/amanahtour/gudang-api/internal/domain/entity"
	"github.com/amanahtour/gudang-api/internal/domain/repository"
)

var _ repository.OutgoingRepository = (*OutgoingRepo)(nil)

// OutgoingRepo implementasi OutgoingRepository di PostgreSQL (bisa pool
// atau tx).
type OutgoingRepo struct {
	q Querier
}

// NewOutgoingRepository membangun adapter barang keluar. Beri pool atau tx.
func NewOutgoingRepository(q Querier) *OutgoingRepo {
	return &OutgoingRepo{q: q}
}

const outgoingColumns = `id, item_id, warehouse_id, quantity, recipient, destination, issued_at, notes, created_at`

// Create menyimpan record barang keluar.
func (r *OutgoingRepo) Create(issue *entity.OutgoingIssue) error {
	query := `
		INSERT INTO outgoing_issues (` + outgoingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		issue.ID, issue.ItemID, issue.WarehouseID, issue.Quantity,
		issue.Recipient, issue.Destination, issue.IssuedAt, issue.Notes, issue.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert outgoing issue: %w", err)
	}
	return nil
}

// GetByID mengambil satu record barang keluar, nil bila tidak ada.
func (r *OutgoingRepo) GetByID(id string) (*entity.OutgoingIssue, error) {
	query := `SELECT ` + outgoingColumns + ` FROM outgoing_issues WHERE id = $1`
	var issue entity.OutgoingIssue
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&issue.ID, &issue.ItemID, &issue.WarehouseID, &issue.Quantity,
		&issue.Recipient, &issue.Destination, &issue.IssuedAt, &issue.Notes, &issue.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get outgoing issue: %w", err)
	}
	return &issue, nil
}

// List daftar barang keluar terbaru dulu.
func (r *OutgoingRepo) List(limit, offset int) ([]*entity.OutgoingIssue, error) {
	query := `
		SELECT ` + outgoingColumns + `
		FROM outgoing_issues
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list outgoing issues: %w", err)
	}
	defer rows.Close()

	var list []*entity.OutgoingIssue
	for rows.Next() {
		var issue entity.OutgoingIssue
		if err := rows.Scan(&issue.ID, &issue.ItemID, &issue.WarehouseID, &issue.Quantity,
			&issue.Recipient, &issue.Destination, &issue.IssuedAt, &issue.Notes, &issue.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outgoing issue: %w", err)
		}
		list = append(list, &issue)
	}
	return list, rows.Err()
}
