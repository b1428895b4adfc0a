package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/soldesk/ticket-service/internal/api/dto"
	"github.com/soldesk/ticket-service/internal/domain"
	"github.com/soldesk/ticket-service/internal/service"
	apperrors "github.com/soldesk/ticket-service/pkg/util/errorutil"
)

// TicketsHandler manages end-user ticket endpoints.
type TicketsHandler struct {
	tickets *service.TicketService
	metrics *service.MetricsService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService, metrics *service.MetricsService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, metrics: metrics}
}

// CreateSupportRequest POST /tickets/support-request.
func (h *TicketsHandler) CreateSupportRequest(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	createdAt, err := req.Validate()
	if err != nil {
		return err
	}

	code, err := h.tickets.Create(c.Context(), service.CreateTicketInput{
		Description:   req.Descripcion,
		RequesterCode: req.AlfNumUsuario,
		SupportTypeID: req.IDTipoSoporte,
		Status:        domain.TicketStatus(req.IDEstadoTicket),
		CreatedAt:     createdAt,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.TicketCreatedResponse{TicketNumber: code})
}

// ListUserTickets GET /tickets/user/:userId.
func (h *TicketsHandler) ListUserTickets(c *fiber.Ctx) error {
	views, err := h.tickets.ListForUser(c.Context(), c.Params("userId"))
	if err != nil {
		return err
	}
	rows := make([]dto.TicketRow, 0, len(views))
	for _, view := range views {
		rows = append(rows, dto.TicketRowFromView(view))
	}
	return c.JSON(rows)
}

// DeleteTicket DELETE /tickets/:codigoConsulta.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	code := c.Params("codigoConsulta")
	count, err := h.tickets.DeleteByCode(c.Context(), code)
	if err != nil {
		return err
	}
	return c.JSON(dto.DeleteTicketResponse{
		Message:      "ticket " + code + " deleted",
		DeletedCount: count,
	})
}

// UserMetrics GET /tickets/metrics/:userId.
func (h *TicketsHandler) UserMetrics(c *fiber.Ctx) error {
	report, err := h.metrics.ForUser(c.Context(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(report)
}
