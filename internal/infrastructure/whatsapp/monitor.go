package whatsapp

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/amanahtour/gudang-api/internal/application/recorder"
	"github.com/amanahtour/gudang-api/internal/domain/entity"
	"github.com/amanahtour/gudang-api/internal/domain/repository"
)

// Sender abstraksi pengirim pesan supaya monitor bisa dites tanpa gateway.
type Sender interface {
	Send(ctx context.Context, message string) error
}

var _ recorder.LowStockMonitor = (*StockMonitor)(nil)

// StockMonitor mengecek ambang minimum barang dan mengirim peringatan
// WhatsApp. Cooldown per barang mencegah spam ketika barang keluar
// berkali-kali selagi stok tetap di bawah minimum.
type StockMonitor struct {
	itemRepo repository.ItemRepository
	sender   Sender
	cooldown time.Duration
	logger   zerolog.Logger

	mu       sync.Mutex
	lastSent map[string]time.Time
}

// NewStockMonitor membuat monitor; cooldown <= 0 memakai default 6 jam.
func NewStockMonitor(itemRepo repository.ItemRepository, sender Sender, cooldown time.Duration, logger zerolog.Logger) *StockMonitor {
	if cooldown <= 0 {
		cooldown = 6 * time.Hour
	}
	return &StockMonitor{
		itemRepo: itemRepo,
		sender:   sender,
		cooldown: cooldown,
		logger:   logger,
		lastSent: map[string]time.Time{},
	}
}

// CheckItem mengecek satu barang setelah movement commit. Best-effort:
// kegagalan hanya dicatat.
func (m *StockMonitor) CheckItem(ctx context.Context, itemID string) {
	item, err := m.itemRepo.GetByID(itemID)
	if err != nil {
		m.logger.Warn().Err(err).Str("item_id", itemID).Msg("monitor stok gagal membaca barang")
		return
	}
	if item == nil || item.MinimumQuantity.Sign() <= 0 {
		return
	}
	if item.OnHandQuantity.GreaterThan(item.MinimumQuantity) {
		m.clearCooldown(itemID)
		return
	}
	if !m.shouldNotify(itemID) {
		return
	}

	msg := buildAlert([]*entity.Item{item})
	if err := m.sender.Send(ctx, msg); err != nil {
		m.logger.Warn().Err(err).Str("item_id", itemID).Msg("gagal mengirim peringatan stok rendah")
		return
	}
	m.logger.Info().Str("item_id", itemID).Str("item", item.Name).Msg("peringatan stok rendah terkirim")
}

// CheckAll mengecek seluruh barang di bawah minimum dan mengirim satu
// pesan gabungan. Dipakai scheduler periodik.
func (m *StockMonitor) CheckAll(ctx context.Context) {
	items, err := m.itemRepo.ListBelowMinimum()
	if err != nil {
		m.logger.Warn().Err(err).Msg("monitor stok gagal membaca daftar barang")
		return
	}
	if len(items) == 0 {
		return
	}

	var due []*entity.Item
	for _, item := range items {
		if m.shouldNotify(item.ID) {
			due = append(due, item)
		}
	}
	if len(due) == 0 {
		return
	}

	if err := m.sender.Send(ctx, buildAlert(due)); err != nil {
		m.logger.Warn().Err(err).Int("items", len(due)).Msg("gagal mengirim peringatan stok rendah")
		return
	}
	m.logger.Info().Int("items", len(due)).Msg("peringatan stok rendah gabungan terkirim")
}

func (m *StockMonitor) shouldNotify(itemID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if last, ok := m.lastSent[itemID]; ok && time.Since(last) < m.cooldown {
		return false
	}
	m.lastSent[itemID] = time.Now()
	return true
}

func (m *StockMonitor) clearCooldown(itemID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lastSent, itemID)
}

func buildAlert(items []*entity.Item) string {
	var b strings.Builder
	b.WriteString("🚨 *PERINGATAN STOCK RENDAH* 🚨\n\n")
	for _, item := range items {
		fmt.Fprintf(&b, "*%s* (%s)\nStock: %s %s\nMinimal: %s %s\n\n",
			item.Name, item.Code,
			item.OnHandQuantity, item.Unit,
			item.MinimumQuantity, item.Unit)
	}
	b.WriteString("Mohon segera lakukan pengadaan barang.")
	return b.String()
}
