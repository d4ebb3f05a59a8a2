package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SchemaCapabilities memotret kolom opsional skema SEKALI saat startup,
// menggantikan introspeksi lazy per-request yang memoized di map global.
// Struct ini immutable setelah dibangun dan dibagikan lewat referensi.
type SchemaCapabilities struct {
	// WarehouseIsActive: tabel warehouses punya kolom is_active, sehingga
	// listing gudang bisa memfilter yang aktif saja. Deployment lama belum
	// punya kolom ini.
	WarehouseIsActive bool
}

// LoadSchemaCapabilities membaca information_schema satu kali.
func LoadSchemaCapabilities(ctx context.Context, pool *pgxpool.Pool) (*SchemaCapabilities, error) {
	caps := &SchemaCapabilities{}
	var err error
	caps.WarehouseIsActive, err = hasColumn(ctx, pool, "warehouses", "is_active")
	if err != nil {
		return nil, fmt.Errorf("load schema capabilities: %w", err)
	}
	return caps, nil
}

func hasColumn(ctx context.Context, pool *pgxpool.Pool, table, column string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = $1 AND column_name = $2
		)`
	var exists bool
	if err := pool.QueryRow(ctx, query, table, column).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
