// Package cache berisi cache Redis untuk hasil ringkasan stok.
// Cache di-invalidate setiap ada movement yang commit, jadi TTL pendek
// hanya jaring pengaman.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/amanahtour/gudang-api/internal/application/reporting"
	"github.com/amanahtour/gudang-api/internal/domain/entity"
	"github.com/amanahtour/gudang-api/internal/domain/repository"
)

const summaryKeyPrefix = "stock_summary:"

var _ reporting.SummaryCache = (*SummaryCache)(nil)

// SummaryCache menyimpan payload ringkasan stok per kombinasi filter.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewSummaryCache membuat cache di atas koneksi Redis yang sudah di-ping.
func NewSummaryCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *SummaryCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &SummaryCache{client: client, ttl: ttl, logger: logger}
}

func summaryKey(filter repository.SummaryFilter) string {
	return fmt.Sprintf("%sitem=%s:wh=%s", summaryKeyPrefix, filter.ItemID, filter.WarehouseID)
}

// Get mengembalikan ok=false saat cache miss.
func (c *SummaryCache) Get(ctx context.Context, filter repository.SummaryFilter) ([]*entity.StockSummaryRow, bool, error) {
	payload, err := c.client.Get(ctx, summaryKey(filter)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("baca cache ringkasan: %w", err)
	}
	var rows []*entity.StockSummaryRow
	if err := json.Unmarshal(payload, &rows); err != nil {
		return nil, false, fmt.Errorf("decode cache ringkasan: %w", err)
	}
	return rows, true, nil
}

// Set menyimpan hasil ringkasan dengan TTL.
func (c *SummaryCache) Set(ctx context.Context, filter repository.SummaryFilter, rows []*entity.StockSummaryRow) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode cache ringkasan: %w", err)
	}
	if err := c.client.Set(ctx, summaryKey(filter), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("tulis cache ringkasan: %w", err)
	}
	return nil
}

// InvalidateAll menghapus seluruh key ringkasan via SCAN supaya tidak
// memblokir Redis dengan KEYS.
func (c *SummaryCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, summaryKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan key ringkasan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("hapus key ringkasan: %w", err)
	}
	c.logger.Debug().Int("keys", len(keys)).Msg("cache ringkasan stok di-invalidate")
	return nil
}

// NoopSummaryCache dipakai saat Redis dimatikan lewat konfigurasi.
type NoopSummaryCache struct{}

var _ reporting.SummaryCache = (*NoopSummaryCache)(nil)

func (NoopSummaryCache) Get(ctx context.Context, filter repository.SummaryFilter) ([]*entity.StockSummaryRow, bool, error) {
	return nil, false, nil
}

func (NoopSummaryCache) Set(ctx context.Context, filter repository.SummaryFilter, rows []*entity.StockSummaryRow) error {
	return nil
}

func (NoopSummaryCache) InvalidateAll(ctx context.Context) error { return nil }
