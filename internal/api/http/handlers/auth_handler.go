package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soldesk/ticket-service/internal/api/dto"
	"github.com/soldesk/ticket-service/internal/service"
	apperrors "github.com/soldesk/ticket-service/pkg/util/errorutil"
)

// AuthHandler manages login.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	token, expiresAt, user, err := h.auth.Login(c.Context(), req.AlfNum, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.UserResponseFrom(user),
	}})
}
