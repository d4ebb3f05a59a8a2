package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/amanahtour/gudang-api/internal/application/dto"
	"github.com/amanahtour/gudang-api/internal/application/recorder"
	"github.com/amanahtour/gudang-api/internal/application/reporting"
	"github.com/amanahtour/gudang-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// IncomingHandler menangani pencatatan dan listing barang masuk.
// Listing dibaca langsung dari repo; pencatatan lewat recorder supaya
// record bisnis dan movement tercipta dalam satu transaksi.
type IncomingHandler struct {
	recorder  *recorder.IncomingRecorder
	repo      repository.IncomingRepository
	reporting *reporting.StockSummaryUseCase
}

// NewIncomingHandler membangun handler barang masuk.
func NewIncomingHandler(rc *recorder.IncomingRecorder, repo repository.IncomingRepository, rep *reporting.StockSummaryUseCase) *IncomingHandler {
	return &IncomingHandler{recorder: rc, repo: repo, reporting: rep}
}

// Create mencatat barang masuk.
func (h *IncomingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIncomingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body tidak valid"})
	}
	if err := validateStruct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	receivedAt, err := parseDate(in.ReceivedAt)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "received_at harus berformat YYYY-MM-DD"})
	}

	result, err := h.recorder.CreateIncoming(c.Context(), recorder.IncomingInput{
		SupplierID:  in.SupplierID,
		ItemID:      in.ItemID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		InvoiceNo:   in.InvoiceNo,
		ReceivedAt:  receivedAt,
		Notes:       in.Notes,
	})
	if err != nil {
		return writeDomainError(c, err)
	}

	h.reporting.Invalidate(c.Context())
	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetByID mengembalikan satu record barang masuk.
func (h *IncomingHandler) GetByID(c *fiber.Ctx) error {
	receipt, err := h.repo.GetByID(c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	if receipt == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "record barang masuk tidak ditemukan"})
	}
	return c.JSON(receipt)
}

// List mengembalikan record barang masuk terbaru.
func (h *IncomingHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parameter paginasi tidak valid"})
	}
	page.DefaultPage()

	receipts, err := h.repo.List(page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(receipts)
}

// parseDate menerima string kosong (pakai waktu sekarang di recorder)
// atau tanggal YYYY-MM-DD.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}
