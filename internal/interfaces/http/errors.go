package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/amanahtour/gudang-api/internal/application/dto"
	"github.com/amanahtour/gudang-api/internal/domain"
)

// writeDomainError memetakan error domain ke status HTTP:
// input tidak valid 400, tidak ditemukan 404, stok kurang 409, sisanya 500.
func writeDomainError(c *fiber.Ctx, err error) error {
	var shortfall *domain.InsufficientStockError
	switch {
	case errors.As(err, &shortfall):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: shortfall.Error(),
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "input tidak valid",
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "data tidak ditemukan",
		})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "DUPLICATE",
			Message: "data sudah ada",
		})
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code:    "UNAUTHORIZED",
			Message: "kredensial tidak valid",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    "INTERNAL",
			Message: err.Error(),
		})
	}
}
