package events

import (
	"time"

	"github.com/soldesk/ticket-service/internal/domain"
)

// EventType labels ticket lifecycle events.
type EventType string

const (
	EventTicketCreated      EventType = "ticket.created"
	EventTechnicianAssigned EventType = "ticket.technician_assigned"
	EventTicketClosed       EventType = "ticket.closed"
	EventTicketDeleted      EventType = "ticket.deleted"
)

// Event is the envelope published through the dispatcher.
type Event struct {
	ID        string
	Type      EventType
	TicketID  int64
	Actor     string
	Timestamp time.Time
	Payload   any
}

// TicketCreatedPayload accompanies EventTicketCreated.
type TicketCreatedPayload struct {
	ConsultationCode string
	RequesterCode    string
	SupportTypeID    int
	Status           domain.TicketStatus
}

// TechnicianAssignedPayload accompanies EventTechnicianAssigned.
type TechnicianAssignedPayload struct {
	TechnicianCode string
	OldTechnician  *string
	OldStatus      domain.TicketStatus
}

// TicketClosedPayload accompanies EventTicketClosed.
type TicketClosedPayload struct {
	ClosedAt  string
	OldStatus domain.TicketStatus
}

// TicketDeletedPayload accompanies EventTicketDeleted.
type TicketDeletedPayload struct {
	ConsultationCode string
	DeletedCount     int64
}
