package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amanahtour/gudang-api/internal/application/auth"
	"github.com/amanahtour/gudang-api/internal/application/dto"
)

// AuthHandler menangani login.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler membangun handler auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login menukar email/password dengan token JWT.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body tidak valid"})
	}
	if err := validateStruct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}
