package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amanahtour/gudang-api/internal/domain"
	"github.com/amanahtour/gudang-api/internal/domain/entity"
	"github.com/amanahtour/gudang-api/internal/domain/repository"
)

// StockLedgerUseCase menjaga konsistensi antara stock_movements,
// warehouse_stock, dan items.on_hand_quantity di dalam transaksi milik
// caller. Semua method menerima repository yang sudah terikat ke transaksi
// (lewat TxRunner); engine sendiri tidak membuka transaksi dan tidak pernah
// menelan error - semua kegagalan diteruskan ke pemilik transaksi.
type StockLedgerUseCase struct{}

// NewStockLedgerUseCase membangun engine. Stateless.
func NewStockLedgerUseCase() *StockLedgerUseCase {
	return &StockLedgerUseCase{}
}

// MovementInput input untuk RecordIncoming/RecordOutgoing.
type MovementInput struct {
	ItemID        string
	WarehouseID   string
	Quantity      decimal.Decimal
	ReferenceType string
	ReferenceID   string
	Notes         string
}

// TransferInput input untuk TransferStock.
type TransferInput struct {
	ItemID          string
	FromWarehouseID string
	ToWarehouseID   string
	Quantity        decimal.Decimal
	Notes           string
	UserID          string
}

// Availability hasil pengecekan ketersediaan stok.
type Availability struct {
	Available    bool            `json:"available"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	Message      string          `json:"message"`
}

// RecomputeWarehouseStock menghitung ulang saldo satu pasangan (barang,
// gudang) dari seluruh movement (SUM quantity bertanda) dan meng-upsert
// warehouse_stock dengan hasilnya. Tidak inkremental: selalu rekalkulasi
// penuh dari log, sehingga idempoten dan memperbaiki update yang terlewat.
func (uc *StockLedgerUseCase) RecomputeWarehouseStock(
	movRepo repository.MovementRepository,
	stockRepo repository.WarehouseStockRepository,
	itemID, warehouseID string,
) (decimal.Decimal, error) {
	total, err := movRepo.SumByItemAndWarehouse(itemID, warehouseID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rekalkulasi stok gudang: %w", err)
	}
	stock := &entity.WarehouseStock{
		ItemID:      itemID,
		WarehouseID: warehouseID,
		Quantity:    total,
		UpdatedAt:   time.Now(),
	}
	if err := stockRepo.Upsert(stock); err != nil {
		return decimal.Zero, fmt.Errorf("simpan stok gudang: %w", err)
	}
	return total, nil
}

// RecomputeGlobalStock menjumlahkan warehouse_stock seluruh gudang untuk
// satu barang dan menulis hasilnya ke items.on_hand_quantity. Wajib
// dipanggil setelah setiap RecomputeWarehouseStock supaya agregat
// denormalisasi tidak drift. Caller wajib sudah memegang lock baris items
// (GetForUpdate) di transaksi yang sama; jalur tulis engine dan Repair
// melakukannya di awal.
func (uc *StockLedgerUseCase) RecomputeGlobalStock(
	stockRepo repository.WarehouseStockRepository,
	itemRepo repository.ItemRepository,
	itemID string,
) (decimal.Decimal, error) {
	total, err := stockRepo.SumByItem(itemID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rekalkulasi stok global: %w", err)
	}
	if err := itemRepo.UpdateOnHand(itemID, total); err != nil {
		return decimal.Zero, fmt.Errorf("update stok global: %w", err)
	}
	return total, nil
}

// ValidateAvailability membaca saldo per gudang dan membandingkan dengan
// kebutuhan. Read-only, tidak pernah mengubah state. Jalur debit tetap
// melakukan cek ulang di bawah row lock; method ini untuk pre-check caller.
func (uc *StockLedgerUseCase) ValidateAvailability(
	stockRepo repository.WarehouseStockRepository,
	itemID, warehouseID string,
	required decimal.Decimal,
) (Availability, error) {
	stock, err := stockRepo.Get(itemID, warehouseID)
	if err != nil {
		return Availability{}, fmt.Errorf("cek ketersediaan stok: %w", err)
	}
	current := stock.Quantity
	if current.GreaterThanOrEqual(required) {
		return Availability{Available: true, CurrentStock: current, Message: "Stock tersedia"}, nil
	}
	shortfall := &domain.InsufficientStockError{
		ItemID:      itemID,
		WarehouseID: warehouseID,
		Available:   current,
		Required:    required,
	}
	return Availability{Available: false, CurrentStock: current, Message: shortfall.Error()}, nil
}

// RecordIncoming mencatat barang masuk: satu movement IN lalu rekalkulasi
// saldo gudang dan stok global. Quantity <= 0 ditolak dengan
// ErrInvalidInput. Baris items dikunci (GetForUpdate) sebelum movement
// ditulis; tanpa itu dua kredit bersamaan masing-masing menjumlahkan log
// tanpa melihat movement lawannya dan yang commit terakhir menimpa saldo
// dengan hasil basi. Pascakondisi: on-hand naik tepat sebesar quantity dan
// ada movement yang traceable lewat reference type/id.
func (uc *StockLedgerUseCase) RecordIncoming(
	movRepo repository.MovementRepository,
	stockRepo repository.WarehouseStockRepository,
	itemRepo repository.ItemRepository,
	in MovementInput,
) (string, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return "", domain.ErrInvalidInput
	}
	item, err := itemRepo.GetForUpdate(in.ItemID)
	if err != nil {
		return "", err
	}
	if item == nil {
		return "", domain.ErrNotFound
	}

	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		ItemID:        in.ItemID,
		WarehouseID:   in.WarehouseID,
		Type:          entity.MovementTypeIN,
		Quantity:      in.Quantity,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		Notes:         in.Notes,
		CreatedAt:     time.Now(),
	}
	if err := movRepo.Create(mov); err != nil {
		return "", err
	}
	if _, err := uc.RecomputeWarehouseStock(movRepo, stockRepo, in.ItemID, in.WarehouseID); err != nil {
		return "", err
	}
	if _, err := uc.RecomputeGlobalStock(stockRepo, itemRepo, in.ItemID); err != nil {
		return "", err
	}
	return mov.ID, nil
}

// RecordOutgoing mencatat barang keluar. Mengunci baris items lalu baris
// warehouse_stock (SELECT FOR UPDATE) dan memvalidasi saldo di bawah lock
// itu, sehingga dua request keluar bersamaan tidak bisa sama-sama lolos
// dari snapshot yang sama, dan dua debit di gudang berbeda tidak saling
// menimpa on_hand_quantity. Saat saldo kurang, gagal dengan
// InsufficientStockError tanpa menulis apa pun.
func (uc *StockLedgerUseCase) RecordOutgoing(
	movRepo repository.MovementRepository,
	stockRepo repository.WarehouseStockRepository,
	itemRepo repository.ItemRepository,
	in MovementInput,
) (string, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return "", domain.ErrInvalidInput
	}
	item, err := itemRepo.GetForUpdate(in.ItemID)
	if err != nil {
		return "", err
	}
	if item == nil {
		return "", domain.ErrNotFound
	}
	stock, err := stockRepo.GetForUpdate(in.ItemID, in.WarehouseID)
	if err != nil {
		return "", err
	}
	current := stock.Quantity
	if current.LessThan(in.Quantity) {
		return "", &domain.InsufficientStockError{
			ItemID:      in.ItemID,
			WarehouseID: in.WarehouseID,
			Available:   current,
			Required:    in.Quantity,
		}
	}

	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		ItemID:        in.ItemID,
		WarehouseID:   in.WarehouseID,
		Type:          entity.MovementTypeOUT,
		Quantity:      in.Quantity.Neg(),
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		Notes:         in.Notes,
		CreatedAt:     time.Now(),
	}
	if err := movRepo.Create(mov); err != nil {
		return "", err
	}
	if _, err := uc.RecomputeWarehouseStock(movRepo, stockRepo, in.ItemID, in.WarehouseID); err != nil {
		return "", err
	}
	if _, err := uc.RecomputeGlobalStock(stockRepo, itemRepo, in.ItemID); err != nil {
		return "", err
	}
	return mov.ID, nil
}

// TransferStock memindahkan stok antar gudang: kunci baris items, validasi
// saldo gudang asal di bawah row lock, buat record transfer, tulis dua
// movement (OUT di asal, IN di tujuan) yang mereferensikan transfer itu,
// rekalkulasi kedua gudang plus stok global, lalu tandai transfer completed
// di transaksi yang sama. Lock di baris items ikut melindungi sisi kredit
// (gudang tujuan) yang belum tentu punya baris warehouse_stock untuk
// dikunci. Stok global tidak berubah; hanya distribusinya.
func (uc *StockLedgerUseCase) TransferStock(
	movRepo repository.MovementRepository,
	stockRepo repository.WarehouseStockRepository,
	itemRepo repository.ItemRepository,
	transferRepo repository.TransferRepository,
	in TransferInput,
) (string, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) || in.FromWarehouseID == in.ToWarehouseID {
		return "", domain.ErrInvalidInput
	}
	item, err := itemRepo.GetForUpdate(in.ItemID)
	if err != nil {
		return "", err
	}
	if item == nil {
		return "", domain.ErrNotFound
	}

	source, err := stockRepo.GetForUpdate(in.ItemID, in.FromWarehouseID)
	if err != nil {
		return "", err
	}
	current := source.Quantity
	if current.LessThan(in.Quantity) {
		return "", &domain.InsufficientStockError{
			ItemID:      in.ItemID,
			WarehouseID: in.FromWarehouseID,
			Available:   current,
			Required:    in.Quantity,
		}
	}

	now := time.Now()
	transfer := &entity.Transfer{
		ID:              uuid.New().String(),
		TransferNumber:  fmt.Sprintf("TRF-%d", now.UnixMilli()),
		ItemID:          in.ItemID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Quantity:        in.Quantity,
		Status:          entity.TransferStatusPending,
		Notes:           in.Notes,
		RequestedBy:     in.UserID,
		CreatedAt:       now,
	}
	if err := transferRepo.Create(transfer); err != nil {
		return "", err
	}

	outMov := &entity.StockMovement{
		ID:            uuid.New().String(),
		ItemID:        in.ItemID,
		WarehouseID:   in.FromWarehouseID,
		Type:          entity.MovementTypeOUT,
		Quantity:      in.Quantity.Neg(),
		ReferenceType: entity.ReferenceTypeTransfer,
		ReferenceID:   transfer.ID,
		Notes:         in.Notes,
		CreatedAt:     now,
	}
	if err := movRepo.Create(outMov); err != nil {
		return "", err
	}
	inMov := &entity.StockMovement{
		ID:            uuid.New().String(),
		ItemID:        in.ItemID,
		WarehouseID:   in.ToWarehouseID,
		Type:          entity.MovementTypeIN,
		Quantity:      in.Quantity,
		ReferenceType: entity.ReferenceTypeTransfer,
		ReferenceID:   transfer.ID,
		Notes:         in.Notes,
		CreatedAt:     now,
	}
	if err := movRepo.Create(inMov); err != nil {
		return "", err
	}

	if _, err := uc.RecomputeWarehouseStock(movRepo, stockRepo, in.ItemID, in.FromWarehouseID); err != nil {
		return "", err
	}
	if _, err := uc.RecomputeWarehouseStock(movRepo, stockRepo, in.ItemID, in.ToWarehouseID); err != nil {
		return "", err
	}
	if _, err := uc.RecomputeGlobalStock(stockRepo, itemRepo, in.ItemID); err != nil {
		return "", err
	}

	if err := transferRepo.UpdateStatus(transfer.ID, entity.TransferStatusCompleted); err != nil {
		return "", err
	}
	return transfer.ID, nil
}
