package whatsapp_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amanahtour/gudang-api/internal/domain/entity"
	"github.com/amanahtour/gudang-api/internal/infrastructure/memory"
	"github.com/amanahtour/gudang-api/internal/infrastructure/whatsapp"
)

type fakeSender struct {
	messages []string
}

func (s *fakeSender) Send(_ context.Context, message string) error {
	s.messages = append(s.messages, message)
	return nil
}

const monItemID = "77777777-7777-7777-7777-777777777777"

func seedMonitorItem(onHand int64) *memory.Store {
	store := memory.New()
	store.SeedItem(&entity.Item{
		ID:              monItemID,
		Code:            "OBT-001",
		Name:            "Obat P3K",
		Unit:            "box",
		MinimumQuantity: decimal.NewFromInt(10),
		OnHandQuantity:  decimal.NewFromInt(onHand),
	})
	return store
}

func TestCheckItem_StokDiBawahMinimumMengirimPeringatan(t *testing.T) {
	store := seedMonitorItem(5)
	sender := &fakeSender{}
	mon := whatsapp.NewStockMonitor(store.Items(), sender, time.Hour, zerolog.Nop())

	mon.CheckItem(context.Background(), monItemID)

	require.Len(t, sender.messages, 1)
	msg := sender.messages[0]
	assert.Contains(t, msg, "PERINGATAN STOCK RENDAH")
	assert.Contains(t, msg, "Obat P3K")
	assert.Contains(t, msg, "Stock: 5 box")
	assert.Contains(t, msg, "Minimal: 10 box")
}

func TestCheckItem_StokCukupTidakMengirim(t *testing.T) {
	store := seedMonitorItem(50)
	sender := &fakeSender{}
	mon := whatsapp.NewStockMonitor(store.Items(), sender, time.Hour, zerolog.Nop())

	mon.CheckItem(context.Background(), monItemID)
	assert.Empty(t, sender.messages)
}

func TestCheckItem_CooldownMencegahSpam(t *testing.T) {
	store := seedMonitorItem(5)
	sender := &fakeSender{}
	mon := whatsapp.NewStockMonitor(store.Items(), sender, time.Hour, zerolog.Nop())

	mon.CheckItem(context.Background(), monItemID)
	mon.CheckItem(context.Background(), monItemID)
	mon.CheckItem(context.Background(), monItemID)

	assert.Len(t, sender.messages, 1)
}

func TestCheckItem_BarangTanpaMinimumDiabaikan(t *testing.T) {
	store := memory.New()
	store.SeedItem(&entity.Item{
		ID:              monItemID,
		Code:            "OBT-001",
		Name:            "Obat P3K",
		Unit:            "box",
		MinimumQuantity: decimal.Zero,
		OnHandQuantity:  decimal.Zero,
	})
	sender := &fakeSender{}
	mon := whatsapp.NewStockMonitor(store.Items(), sender, time.Hour, zerolog.Nop())

	mon.CheckItem(context.Background(), monItemID)
	assert.Empty(t, sender.messages)
}

func TestCheckAll_SatuPesanGabungan(t *testing.T) {
	store := memory.New()
	store.SeedItem(&entity.Item{
		ID: "item-1", Code: "A", Name: "Barang A", Unit: "pcs",
		MinimumQuantity: decimal.NewFromInt(10), OnHandQuantity: decimal.NewFromInt(2),
	})
	store.SeedItem(&entity.Item{
		ID: "item-2", Code: "B", Name: "Barang B", Unit: "pcs",
		MinimumQuantity: decimal.NewFromInt(10), OnHandQuantity: decimal.NewFromInt(7),
	})
	sender := &fakeSender{}
	mon := whatsapp.NewStockMonitor(store.Items(), sender, time.Hour, zerolog.Nop())

	mon.CheckAll(context.Background())

	require.Len(t, sender.messages, 1)
	assert.Contains(t, sender.messages[0], "Barang A")
	assert.Contains(t, sender.messages[0], "Barang B")
}
