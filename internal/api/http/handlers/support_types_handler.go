package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soldesk/ticket-service/internal/api/dto"
	"github.com/soldesk/ticket-service/internal/repository"
	apperrors "github.com/soldesk/ticket-service/pkg/util/errorutil"
)

// SupportTypesHandler lists ticket categories.
type SupportTypesHandler struct {
	supportTypes repository.SupportTypeRepository
}

// NewSupportTypesHandler constructs handler.
func NewSupportTypesHandler(supportTypes repository.SupportTypeRepository) *SupportTypesHandler {
	return &SupportTypesHandler{supportTypes: supportTypes}
}

// List GET /support-types.
func (h *SupportTypesHandler) List(c *fiber.Ctx) error {
	types, err := h.supportTypes.List(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	items := make([]dto.SupportTypeResponse, 0, len(types))
	for _, st := range types {
		items = append(items, dto.SupportTypeResponse{ID: st.ID, Name: st.Name})
	}
	return c.JSON(fiber.Map{"data": items})
}
