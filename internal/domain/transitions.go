package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned by the strict transition variant when the
// ticket's current status does not permit the requested transition.
var ErrInvalidTransition = errors.New("invalid status transition")

// TransitionMode selects between the desk's informal workflow and a guarded
// state machine. Both variants share one transition table.
type TransitionMode int

const (
	// Permissive applies assign and close from any state. This matches the
	// desk's informal workflow where staff correct mistakes by re-running a
	// transition, including on already-closed tickets.
	Permissive TransitionMode = iota
	// Strict only allows transitions listed in the transition table.
	Strict
)

// AssignEvent assigns (or re-assigns) a technician.
type AssignEvent struct {
	TechnicianCode string
}

// CloseEvent closes a ticket. ClosedAt carries the closure timestamp in the
// exact representation supplied by the caller.
type CloseEvent struct {
	ClosedAt string
}

// allowedNext lists the statuses each status may move to under Strict mode.
// Pending (3) is never produced by these transitions; it only appears as a
// source state because it can be set externally.
var allowedNext = map[TicketStatus][]TicketStatus{
	TicketStatusOpen:       {TicketStatusInProgress},
	TicketStatusInProgress: {TicketStatusInProgress, TicketStatusResolved},
	TicketStatusPending:    {TicketStatusInProgress, TicketStatusResolved},
	TicketStatusResolved:   {},
}

func transitionAllowed(current, next TicketStatus) bool {
	for _, candidate := range allowedNext[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ApplyAssign sets the assigned technician and forces status to In Progress.
// Under Permissive mode the ticket's current status is not checked.
func ApplyAssign(ticket Ticket, ev AssignEvent, mode TransitionMode) (Ticket, error) {
	if mode == Strict && !transitionAllowed(ticket.Status, TicketStatusInProgress) {
		return ticket, fmt.Errorf("%w: %d -> %d", ErrInvalidTransition, ticket.Status, TicketStatusInProgress)
	}
	technician := ev.TechnicianCode
	ticket.TechnicianCode = &technician
	ticket.Status = TicketStatusInProgress
	return ticket, nil
}

// ApplyClose forces status to Resolved and records the closure timestamp
// verbatim. Handling hours are populated out of band, never here. Closing an
// already-closed ticket is not specially detected under Permissive mode.
func ApplyClose(ticket Ticket, ev CloseEvent, mode TransitionMode) (Ticket, error) {
	if mode == Strict && !transitionAllowed(ticket.Status, TicketStatusResolved) {
		return ticket, fmt.Errorf("%w: %d -> %d", ErrInvalidTransition, ticket.Status, TicketStatusResolved)
	}
	closedAt := ev.ClosedAt
	ticket.ClosedAt = &closedAt
	ticket.Status = TicketStatusResolved
	return ticket, nil
}
