package dto

import (
	"time"
	"unicode/utf8"

	"github.com/soldesk/ticket-service/internal/domain"
	"github.com/soldesk/ticket-service/internal/repository"
	apperrors "github.com/soldesk/ticket-service/pkg/util/errorutil"
)

// CreateTicketRequest is the support-request payload. Field names follow the
// persisted wire format.
type CreateTicketRequest struct {
	Descripcion    string `json:"descripcion"`
	AlfNumUsuario  string `json:"alf_num_usuario"`
	IDTipoSoporte  int    `json:"id_tipo_soporte"`
	IDEstadoTicket int    `json:"id_estado_ticket"`
	FechaCreacion  string `json:"fecha_creacion"`
}

// Validate checks the payload and returns the parsed creation timestamp.
// Descriptions are 10-500 characters; the creation timestamp must be RFC 3339
// with an explicit offset.
func (r CreateTicketRequest) Validate() (time.Time, error) {
	details := map[string]any{}

	if n := utf8.RuneCountInString(r.Descripcion); n < 10 {
		details["descripcion"] = "must be at least 10 characters"
	} else if n > 500 {
		details["descripcion"] = "must not exceed 500 characters"
	}
	if r.AlfNumUsuario == "" {
		details["alf_num_usuario"] = "required"
	}
	if r.IDTipoSoporte <= 0 {
		details["id_tipo_soporte"] = "must be a positive integer"
	}
	if !domain.TicketStatus(r.IDEstadoTicket).Valid() {
		details["id_estado_ticket"] = "must be one of 1, 2, 3, 4"
	}

	createdAt, err := time.Parse(time.RFC3339, r.FechaCreacion)
	if err != nil {
		details["fecha_creacion"] = "must be an ISO 8601 timestamp with timezone offset"
	}

	if len(details) > 0 {
		return time.Time{}, apperrors.NewValidationError("invalid ticket payload", details)
	}
	return createdAt, nil
}

// AssignTechnicianRequest assigns a technician to a ticket.
type AssignTechnicianRequest struct {
	IDTicket      int64  `json:"id_ticket"`
	AlfNumTecnico string `json:"alf_num_tecnico_asignado"`
}

// Validate checks the payload.
func (r AssignTechnicianRequest) Validate() error {
	details := map[string]any{}
	if r.IDTicket <= 0 {
		details["id_ticket"] = "must be a positive integer"
	}
	if r.AlfNumTecnico == "" {
		details["alf_num_tecnico_asignado"] = "required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid assignment payload", details)
	}
	return nil
}

// CloseTicketRequest closes a ticket. FechaCierre is stored verbatim, so it is
// validated but never re-formatted.
type CloseTicketRequest struct {
	IDTicket    int64  `json:"id_ticket"`
	FechaCierre string `json:"fecha_cierre"`
}

// Validate checks the payload.
func (r CloseTicketRequest) Validate() error {
	details := map[string]any{}
	if r.IDTicket <= 0 {
		details["id_ticket"] = "must be a positive integer"
	}
	if _, err := time.Parse(time.RFC3339, r.FechaCierre); err != nil {
		details["fecha_cierre"] = "must be an ISO 8601 timestamp with timezone offset"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid close payload", details)
	}
	return nil
}

// TicketCreatedResponse returns the generated consultation code.
type TicketCreatedResponse struct {
	TicketNumber string `json:"ticketNumber"`
}

// DeleteTicketResponse reports the delete outcome.
type DeleteTicketResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

// TicketRow mirrors the joined listing view consumed by the dashboards. The
// JSON keys match the columns the previous raw query aliased.
type TicketRow struct {
	IDTicket    int64               `json:"id_ticket"`
	ID          string              `json:"id"`
	Type        string              `json:"type"`
	Description string              `json:"description"`
	Status      domain.TicketStatus `json:"status"`
	Fecha       time.Time           `json:"fecha"`
	Technician  *string             `json:"technician"`
}

// TicketRowFromView maps a repository view row.
func TicketRowFromView(view repository.TicketView) TicketRow {
	return TicketRow{
		IDTicket:    view.ID,
		ID:          view.ConsultationCode,
		Type:        view.SupportType,
		Description: view.Description,
		Status:      view.Status,
		Fecha:       view.CreatedAt,
		Technician:  view.Technician,
	}
}

// SupportTypeResponse lists a ticket category.
type SupportTypeResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
