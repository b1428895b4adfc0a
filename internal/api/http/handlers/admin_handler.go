package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/soldesk/ticket-service/internal/api/dto"
	"github.com/soldesk/ticket-service/internal/domain"
	"github.com/soldesk/ticket-service/internal/service"
	apperrors "github.com/soldesk/ticket-service/pkg/util/errorutil"
)

// AdminHandler manages administrative endpoints.
type AdminHandler struct {
	admin   *service.AdminService
	tickets *service.TicketService
	metrics *service.MetricsService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(admin *service.AdminService, tickets *service.TicketService, metrics *service.MetricsService) *AdminHandler {
	return &AdminHandler{admin: admin, tickets: tickets, metrics: metrics}
}

// CreateUser POST /admin/create-user.
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	user, err := h.admin.CreateUser(c.Context(), service.CreateUserInput{
		AlfNum:   req.AlfNum,
		Names:    req.Nombres,
		Surnames: req.Apellidos,
		Email:    req.Email,
		DNI:      req.DNI,
		Phone:    req.Celular,
		RoleID:   domain.Role(req.IDRol),
		Active:   *req.Activo,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.UserResponseFrom(user)})
}

// ListTickets GET /admin/tickets.
func (h *AdminHandler) ListTickets(c *fiber.Ctx) error {
	views, err := h.tickets.ListAll(c.Context())
	if err != nil {
		return err
	}
	rows := make([]dto.TicketRow, 0, len(views))
	for _, view := range views {
		rows = append(rows, dto.TicketRowFromView(view))
	}
	return c.JSON(rows)
}

// AssignTechnician POST /admin/assign-technician.
func (h *AdminHandler) AssignTechnician(c *fiber.Ctx) error {
	var req dto.AssignTechnicianRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	ticket, err := h.tickets.AssignTechnician(c.Context(), req.IDTicket, req.AlfNumTecnico)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"id_ticket":                ticket.ID,
		"alf_num_tecnico_asignado": ticket.TechnicianCode,
		"id_estado_ticket":         ticket.Status,
	}})
}

// CloseTicket POST /admin/close-ticket.
func (h *AdminHandler) CloseTicket(c *fiber.Ctx) error {
	var req dto.CloseTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	ticket, err := h.tickets.Close(c.Context(), req.IDTicket, req.FechaCierre)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"id_ticket":        ticket.ID,
		"id_estado_ticket": ticket.Status,
		"fecha_cierre":     ticket.ClosedAt,
	}})
}

// DeleteTicket DELETE /admin/ticket/:codigoConsulta.
func (h *AdminHandler) DeleteTicket(c *fiber.Ctx) error {
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

// GlobalMetrics GET /admin/metrics.
func (h *AdminHandler) GlobalMetrics(c *fiber.Ctx) error {
	report, err := h.metrics.Global(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(report)
}

// TechnicianMetrics GET /admin/metrics/technician/:alfNum.
func (h *AdminHandler) TechnicianMetrics(c *fiber.Ctx) error {
	report, err := h.metrics.ForTechnician(c.Context(), c.Params("alfNum"))
	if err != nil {
		return err
	}
	return c.JSON(report)
}

// Overview GET /admin/overview computes the global scope plus any technician
// scopes named in the "technicians" query parameter, concurrently. Each scope
// fails on its own; partial results are still returned.
func (h *AdminHandler) Overview(c *fiber.Ctx) error {
	requests := []service.ScopeRequest{{Scope: service.ScopeGlobal}}
	if raw := c.Query("technicians"); raw != "" {
		for _, alfNum := range strings.Split(raw, ",") {
			alfNum = strings.TrimSpace(alfNum)
			if alfNum != "" {
				requests = append(requests, service.ScopeRequest{Scope: service.ScopeTechnician, AlfNum: alfNum})
			}
		}
	}

	results := h.metrics.ComputeMany(c.Context(), requests)
	payload := make([]fiber.Map, 0, len(results))
	for _, result := range results {
		entry := fiber.Map{"scope": result.Scope}
		if result.AlfNum != "" {
			entry["alf_num"] = result.AlfNum
		}
		if result.Err != nil {
			domainErr := apperrors.ToDomainError(result.Err)
			entry["error"] = fiber.Map{"code": domainErr.Code, "message": domainErr.Message}
		} else {
			entry["report"] = result.Report
		}
		payload = append(payload, entry)
	}
	return c.JSON(fiber.Map{"data": payload})
}
