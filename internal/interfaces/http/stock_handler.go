package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/amanahtour/gudang-api/internal/application/dto"
	"github.com/amanahtour/gudang-api/internal/application/ledger"
	"github.com/amanahtour/gudang-api/internal/application/reporting"
	"github.com/amanahtour/gudang-api/internal/domain/repository"
)

// StockHandler menangani endpoint baca stok dan rekonsiliasi.
type StockHandler struct {
	summary   *reporting.StockSummaryUseCase
	engine    *ledger.StockLedgerUseCase
	reconcile *ledger.ReconcileUseCase
	stockRepo repository.WarehouseStockRepository
	movRepo   repository.MovementRepository
}

// NewStockHandler membangun handler stok.
func NewStockHandler(
	summary *reporting.StockSummaryUseCase,
	engine *ledger.StockLedgerUseCase,
	reconcile *ledger.ReconcileUseCase,
	stockRepo repository.WarehouseStockRepository,
	movRepo repository.MovementRepository,
) *StockHandler {
	return &StockHandler{
		summary:   summary,
		engine:    engine,
		reconcile: reconcile,
		stockRepo: stockRepo,
		movRepo:   movRepo,
	}
}

// Summary mengembalikan ringkasan stok terklasifikasi per (barang, gudang).
// Filter opsional: ?item_id=...&warehouse_id=...
func (h *StockHandler) Summary(c *fiber.Ctx) error {
	rows, err := h.summary.StockSummary(c.Context(), repository.SummaryFilter{
		ItemID:      c.Query("item_id"),
		WarehouseID: c.Query("warehouse_id"),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(rows)
}

// Availability pre-check ketersediaan stok sebelum membuat barang keluar.
// Jalur debit tetap memvalidasi ulang di bawah row lock.
func (h *StockHandler) Availability(c *fiber.Ctx) error {
	itemID := c.Query("item_id")
	warehouseID := c.Query("warehouse_id")
	if itemID == "" || warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id dan warehouse_id wajib diisi"})
	}
	quantity, err := decimal.NewFromString(c.Query("quantity", "0"))
	if err != nil || !quantity.GreaterThan(decimal.Zero) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity harus berupa angka positif"})
	}

	avail, err := h.engine.ValidateAvailability(h.stockRepo, itemID, warehouseID, quantity)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(avail)
}

// Movements mengembalikan riwayat movement satu barang, terbaru dulu.
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	itemID := c.Params("itemId")
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parameter paginasi tidak valid"})
	}
	page.DefaultPage()

	movements, err := h.movRepo.ListByItem(itemID, page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(movements)
}

// reconcileResponse hasil rekonsiliasi untuk klien.
type reconcileResponse struct {
	Repaired bool                `json:"repaired"`
	Drifts   []ledger.DriftEntry `json:"drifts"`
}

// Reconcile membandingkan saldo tersimpan dengan saldo turunan dari log
// movement. ?repair=true memperbaiki drift yang ditemukan.
func (h *StockHandler) Reconcile(c *fiber.Ctx) error {
	repair := c.QueryBool("repair", false)

	var (
		drifts []ledger.DriftEntry
		err    error
	)
	if repair {
		drifts, err = h.reconcile.Repair(c.Context())
	} else {
		drifts, err = h.reconcile.Check(c.Context())
	}
	if err != nil {
		return writeDomainError(c, err)
	}
	if repair && len(drifts) > 0 {
		h.summary.Invalidate(c.Context())
	}
	if drifts == nil {
		drifts = []ledger.DriftEntry{}
	}
	return c.JSON(reconcileResponse{Repaired: repair, Drifts: drifts})
}
