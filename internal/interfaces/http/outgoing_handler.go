package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amanahtour/gudang-api/internal/application/dto"
	"github.com/amanahtour/gudang-api/internal/application/recorder"
	"github.com/amanahtour/gudang-api/internal/application/reporting"
	"github.com/amanahtour/gudang-api/internal/domain/repository"
)

// OutgoingHandler menangani pencatatan dan listing barang keluar.
type OutgoingHandler struct {
	recorder  *recorder.OutgoingRecorder
	repo      repository.OutgoingRepository
	reporting *reporting.StockSummaryUseCase
}

// NewOutgoingHandler membangun handler barang keluar.
func NewOutgoingHandler(rc *recorder.OutgoingRecorder, repo repository.OutgoingRepository, rep *reporting.StockSummaryUseCase) *OutgoingHandler {
	return &OutgoingHandler{recorder: rc, repo: repo, reporting: rep}
}

// Create mencatat barang keluar. Saldo kurang dijawab 409 dengan pesan
// kekurangan stok.
func (h *OutgoingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOutgoingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body tidak valid"})
	}
	if err := validateStruct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	issuedAt, err := parseDate(in.IssuedAt)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "issued_at harus berformat YYYY-MM-DD"})
	}

	result, err := h.recorder.CreateOutgoing(c.Context(), recorder.OutgoingInput{
		ItemID:      in.ItemID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		Recipient:   in.Recipient,
		Destination: in.Destination,
		IssuedAt:    issuedAt,
		Notes:       in.Notes,
	})
	if err != nil {
		return writeDomainError(c, err)
	}

	h.reporting.Invalidate(c.Context())
	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetByID mengembalikan satu record barang keluar.
func (h *OutgoingHandler) GetByID(c *fiber.Ctx) error {
	issue, err := h.repo.GetByID(c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	if issue == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "record barang keluar tidak ditemukan"})
	}
	return c.JSON(issue)
}

// List mengembalikan record barang keluar terbaru.
func (h *OutgoingHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parameter paginasi tidak valid"})
	}
	page.DefaultPage()

	issues, err := h.repo.List(page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(issues)
}
