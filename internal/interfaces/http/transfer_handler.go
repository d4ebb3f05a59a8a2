package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amanahtour/gudang-api/internal/application/dto"
	"github.com/amanahtour/gudang-api/internal/application/recorder"
	"github.com/amanahtour/gudang-api/internal/application/reporting"
	"github.com/amanahtour/gudang-api/internal/domain/repository"
)

// TransferHandler menangani transfer stok antar gudang.
type TransferHandler struct {
	recorder  *recorder.TransferRecorder
	repo      repository.TransferRepository
	reporting *reporting.StockSummaryUseCase
}

// NewTransferHandler membangun handler transfer.
func NewTransferHandler(rc *recorder.TransferRecorder, repo repository.TransferRepository, rep *reporting.StockSummaryUseCase) *TransferHandler {
	return &TransferHandler{recorder: rc, repo: repo, reporting: rep}
}

// Create menjalankan transfer: debit gudang asal, kredit gudang tujuan,
// atomik. Gudang asal dan tujuan harus berbeda.
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body tidak valid"})
	}
	if err := validateStruct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	result, err := h.recorder.CreateTransfer(c.Context(), recorder.TransferInput{
		ItemID:          in.ItemID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Quantity:        in.Quantity,
		Notes:           in.Notes,
		UserID:          GetUserID(c),
	})
	if err != nil {
		return writeDomainError(c, err)
	}

	h.reporting.Invalidate(c.Context())
	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetByID mengembalikan satu record transfer.
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	transfer, err := h.repo.GetByID(c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	if transfer == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "record transfer tidak ditemukan"})
	}
	return c.JSON(transfer)
}

// List mengembalikan transfer terbaru.
func (h *TransferHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parameter paginasi tidak valid"})
	}
	page.DefaultPage()

	transfers, err := h.repo.List(page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(transfers)
}
