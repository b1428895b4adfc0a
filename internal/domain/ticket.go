package domain

import "time"

// TicketStatus enumerates the four lifecycle states. The numeric values are
// part of the persisted format and must not change.
type TicketStatus int

const (
	TicketStatusOpen       TicketStatus = 1
	TicketStatusInProgress TicketStatus = 2
	TicketStatusPending    TicketStatus = 3
	TicketStatusResolved   TicketStatus = 4
)

// Valid reports whether the status is one of the four known values.
func (s TicketStatus) Valid() bool {
	return s >= TicketStatusOpen && s <= TicketStatusResolved
}

// Ticket is the aggregate for support requests.
//
// ConsultationCode is assigned once at creation and never changes. ClosedAt
// holds the closure timestamp exactly as received from the caller, without
// timezone normalization, which is why it is a string rather than a time.Time.
type Ticket struct {
	ID               int64
	ConsultationCode string
	Description      string
	RequesterCode    string
	SupportTypeID    int
	TechnicianCode   *string
	Status           TicketStatus
	CreatedAt        time.Time
	ClosedAt         *string
	HandlingHours    *float64
}

// SupportType categorizes tickets (hardware, software, network, ...).
type SupportType struct {
	ID   int
	Name string
}
