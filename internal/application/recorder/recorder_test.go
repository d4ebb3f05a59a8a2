package recorder_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amanahtour/gudang-api/internal/application/ledger"
	"github.com/amanahtour/gudang-api/internal/application/recorder"
	"github.com/amanahtour/gudang-api/internal/domain"
	"github.com/amanahtour/gudang-api/internal/domain/entity"
	"github.com/amanahtour/gudang-api/internal/infrastructure/memory"
)

const (
	itemSelimut = "22222222-2222-2222-2222-222222222222"
	gudangA     = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	gudangB     = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
)

// spyMonitor merekam pemanggilan CheckItem pasca commit.
type spyMonitor struct {
	checked []string
}

func (m *spyMonitor) CheckItem(_ context.Context, itemID string) {
	m.checked = append(m.checked, itemID)
}

func setupStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.New()
	store.SeedItem(&entity.Item{
		ID:              itemSelimut,
		Code:            "SLM-001",
		Name:            "Selimut Jamaah",
		Unit:            "pcs",
		MinimumQuantity: decimal.NewFromInt(20),
	})
	store.SeedWarehouse(&entity.Warehouse{ID: gudangA, Code: "GDG-A", Name: "Gudang A", IsActive: true})
	store.SeedWarehouse(&entity.Warehouse{ID: gudangB, Code: "GDG-B", Name: "Gudang B", IsActive: true})
	return store
}

func seedStock(t *testing.T, store *memory.Store, qty int64) {
	t.Helper()
	rc := recorder.NewIncomingRecorder(store, ledger.NewStockLedgerUseCase(), nil)
	_, err := rc.CreateIncoming(context.Background(), recorder.IncomingInput{
		ItemID:      itemSelimut,
		WarehouseID: gudangA,
		Quantity:    decimal.NewFromInt(qty),
		UnitPrice:   decimal.NewFromInt(50000),
		InvoiceNo:   "INV-SEED",
	})
	require.NoError(t, err)
}

func TestCreateIncoming_RecordDanMovementTerhubung(t *testing.T) {
	store := setupStore(t)
	monitor := &spyMonitor{}
	rc := recorder.NewIncomingRecorder(store, ledger.NewStockLedgerUseCase(), monitor)

	result, err := rc.CreateIncoming(context.Background(), recorder.IncomingInput{
		SupplierID:  "supplier-1",
		ItemID:      itemSelimut,
		WarehouseID: gudangA,
		Quantity:    decimal.NewFromInt(100),
		UnitPrice:   decimal.NewFromInt(75000),
		InvoiceNo:   "INV-2026-001",
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	receipt, err := store.Incomings().GetByID(result.ReceiptID)
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.True(t, receipt.TotalPrice.Equal(decimal.NewFromInt(7500000)))

	// Movement mereferensikan record barang masuk.
	mov, err := store.Movements().GetByID(result.MovementID)
	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.Equal(t, entity.ReferenceTypeIncoming, mov.ReferenceType)
	assert.Equal(t, receipt.ID, mov.ReferenceID)
	assert.Equal(t, "Barang masuk dari INV-2026-001", mov.Notes)

	// Monitor dipanggil setelah commit.
	assert.Equal(t, []string{itemSelimut}, monitor.checked)

	item, err := store.Items().GetByID(itemSelimut)
	require.NoError(t, err)
	assert.True(t, item.OnHandQuantity.Equal(decimal.NewFromInt(100)))
}

func TestCreateIncoming_InputTidakValid(t *testing.T) {
	store := setupStore(t)
	rc := recorder.NewIncomingRecorder(store, ledger.NewStockLedgerUseCase(), nil)

	cases := []recorder.IncomingInput{
		{ItemID: itemSelimut, WarehouseID: gudangA, Quantity: decimal.Zero},
		{ItemID: itemSelimut, WarehouseID: gudangA, Quantity: decimal.NewFromInt(-3)},
		{ItemID: "", WarehouseID: gudangA, Quantity: decimal.NewFromInt(5)},
		{ItemID: itemSelimut, WarehouseID: "", Quantity: decimal.NewFromInt(5)},
		{ItemID: itemSelimut, WarehouseID: gudangA, Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(-1)},
	}
	for _, in := range cases {
		_, err := rc.CreateIncoming(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	receipts, err := store.Incomings().List(10, 0)
	require.NoError(t, err)
	assert.Empty(t, receipts)
}

func TestCreateOutgoing_SaldoKurangTidakMeninggalkanRecord(t *testing.T) {
	store := setupStore(t)
	seedStock(t, store, 70)
	monitor := &spyMonitor{}
	rc := recorder.NewOutgoingRecorder(store, ledger.NewStockLedgerUseCase(), monitor)

	_, err := rc.CreateOutgoing(context.Background(), recorder.OutgoingInput{
		ItemID:      itemSelimut,
		WarehouseID: gudangA,
		Quantity:    decimal.NewFromInt(1000),
		Recipient:   "Tim Handling Bandara",
	})

	var shortfall *domain.InsufficientStockError
	require.ErrorAs(t, err, &shortfall)
	assert.Equal(t, "Stock tidak mencukupi. Tersedia: 70, Dibutuhkan: 1000", shortfall.Error())

	// Rollback: record barang keluar tidak tercipta, saldo utuh, monitor
	// tidak dipanggil.
	issues, listErr := store.Outgoings().List(10, 0)
	require.NoError(t, listErr)
	assert.Empty(t, issues)
	stock, stockErr := store.Stocks().Get(itemSelimut, gudangA)
	require.NoError(t, stockErr)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(70)))
	assert.Empty(t, monitor.checked)
}

func TestCreateOutgoing_CatatanDefault(t *testing.T) {
	store := setupStore(t)
	seedStock(t, store, 100)
	rc := recorder.NewOutgoingRecorder(store, ledger.NewStockLedgerUseCase(), nil)

	result, err := rc.CreateOutgoing(context.Background(), recorder.OutgoingInput{
		ItemID:      itemSelimut,
		WarehouseID: gudangA,
		Quantity:    decimal.NewFromInt(10),
		Destination: "Hotel Al Noor Madinah",
	})
	require.NoError(t, err)

	mov, err := store.Movements().GetByID(result.MovementID)
	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.Equal(t, "Barang keluar ke Hotel Al Noor Madinah", mov.Notes)
	// OUT dicatat negatif di ledger.
	assert.True(t, mov.Quantity.Equal(decimal.NewFromInt(-10)))
}

func TestCreateOutgoing_MonitorDipanggilSetelahSukses(t *testing.T) {
	store := setupStore(t)
	seedStock(t, store, 100)
	monitor := &spyMonitor{}
	rc := recorder.NewOutgoingRecorder(store, ledger.NewStockLedgerUseCase(), monitor)

	_, err := rc.CreateOutgoing(context.Background(), recorder.OutgoingInput{
		ItemID:      itemSelimut,
		WarehouseID: gudangA,
		Quantity:    decimal.NewFromInt(90),
		Recipient:   "Kargo",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{itemSelimut}, monitor.checked)
}

func TestCreateTransfer_MemindahkanStok(t *testing.T) {
	store := setupStore(t)
	seedStock(t, store, 100)
	rc := recorder.NewTransferRecorder(store, ledger.NewStockLedgerUseCase())

	result, err := rc.CreateTransfer(context.Background(), recorder.TransferInput{
		ItemID:          itemSelimut,
		FromWarehouseID: gudangA,
		ToWarehouseID:   gudangB,
		Quantity:        decimal.NewFromInt(40),
		UserID:          "user-1",
	})
	require.NoError(t, err)

	transfer, err := store.Transfers().GetByID(result.TransferID)
	require.NoError(t, err)
	require.NotNil(t, transfer)
	assert.Equal(t, entity.TransferStatusCompleted, transfer.Status)
	assert.Equal(t, "user-1", transfer.RequestedBy)

	stockA, err := store.Stocks().Get(itemSelimut, gudangA)
	require.NoError(t, err)
	stockB, err := store.Stocks().Get(itemSelimut, gudangB)
	require.NoError(t, err)
	assert.True(t, stockA.Quantity.Equal(decimal.NewFromInt(60)))
	assert.True(t, stockB.Quantity.Equal(decimal.NewFromInt(40)))
}

func TestCreateTransfer_InputKosongDitolak(t *testing.T) {
	store := setupStore(t)
	rc := recorder.NewTransferRecorder(store, ledger.NewStockLedgerUseCase())

	_, err := rc.CreateTransfer(context.Background(), recorder.TransferInput{
		ItemID:          "",
		FromWarehouseID: gudangA,
		ToWarehouseID:   gudangB,
		Quantity:        decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
