package domain

import (
	"errors"
	"testing"
	"time"
)

func sampleTicket(status TicketStatus) Ticket {
	return Ticket{
		ID:               42,
		ConsultationCode: "SOL-202605-AB12CD",
		Description:      "printer on the third floor keeps jamming",
		RequesterCode:    "USR001",
		SupportTypeID:    1,
		Status:           status,
		CreatedAt:        time.Date(2026, time.May, 3, 9, 30, 0, 0, time.UTC),
	}
}

func TestApplyAssignPermissive(t *testing.T) {
	// permissive mode applies the transition from every state, including
	// already-resolved tickets
	statuses := []TicketStatus{
		TicketStatusOpen,
		TicketStatusInProgress,
		TicketStatusPending,
		TicketStatusResolved,
	}

	for _, status := range statuses {
		updated, err := ApplyAssign(sampleTicket(status), AssignEvent{TechnicianCode: "TEC007"}, Permissive)
		if err != nil {
			t.Fatalf("ApplyAssign(from %d) returned error: %v", status, err)
		}
		if updated.Status != TicketStatusInProgress {
			t.Errorf("ApplyAssign(from %d).Status = %d, want %d", status, updated.Status, TicketStatusInProgress)
		}
		if updated.TechnicianCode == nil || *updated.TechnicianCode != "TEC007" {
			t.Errorf("ApplyAssign(from %d).TechnicianCode = %v, want TEC007", status, updated.TechnicianCode)
		}
	}
}

func TestApplyAssignOverwritesExistingAssignment(t *testing.T) {
	ticket := sampleTicket(TicketStatusInProgress)
	previous := "TEC001"
	ticket.TechnicianCode = &previous

	updated, err := ApplyAssign(ticket, AssignEvent{TechnicianCode: "TEC002"}, Permissive)
	if err != nil {
		t.Fatalf("ApplyAssign() returned error: %v", err)
	}
	if *updated.TechnicianCode != "TEC002" {
		t.Errorf("TechnicianCode = %q, want TEC002", *updated.TechnicianCode)
	}
}

func TestApplyAssignStrict(t *testing.T) {
	tests := []struct {
		name    string
		from    TicketStatus
		wantErr bool
	}{
		{name: "open allows assignment", from: TicketStatusOpen, wantErr: false},
		{name: "in progress allows re-assignment", from: TicketStatusInProgress, wantErr: false},
		{name: "pending allows assignment", from: TicketStatusPending, wantErr: false},
		{name: "resolved rejects assignment", from: TicketStatusResolved, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, err := ApplyAssign(sampleTicket(tt.from), AssignEvent{TechnicianCode: "TEC007"}, Strict)

			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTransition) {
					t.Fatalf("ApplyAssign() error = %v, want ErrInvalidTransition", err)
				}
				if updated.Status != tt.from {
					t.Errorf("rejected transition mutated status to %d", updated.Status)
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyAssign() returned error: %v", err)
			}
			if updated.Status != TicketStatusInProgress {
				t.Errorf("Status = %d, want %d", updated.Status, TicketStatusInProgress)
			}
		})
	}
}

func TestApplyClosePermissive(t *testing.T) {
	closedAt := "2026-05-15T14:30:00.000-05:00"

	for _, status := range []TicketStatus{TicketStatusOpen, TicketStatusInProgress, TicketStatusPending, TicketStatusResolved} {
		updated, err := ApplyClose(sampleTicket(status), CloseEvent{ClosedAt: closedAt}, Permissive)
		if err != nil {
			t.Fatalf("ApplyClose(from %d) returned error: %v", status, err)
		}
		if updated.Status != TicketStatusResolved {
			t.Errorf("ApplyClose(from %d).Status = %d, want %d", status, updated.Status, TicketStatusResolved)
		}
		if updated.ClosedAt == nil || *updated.ClosedAt != closedAt {
			t.Errorf("ClosedAt = %v, want stored byte-for-byte as %q", updated.ClosedAt, closedAt)
		}
		if updated.HandlingHours != nil {
			t.Errorf("ApplyClose populated HandlingHours = %v, want nil", updated.HandlingHours)
		}
	}
}

func TestApplyCloseStrict(t *testing.T) {
	tests := []struct {
		name    string
		from    TicketStatus
		wantErr bool
	}{
		{name: "open cannot close directly", from: TicketStatusOpen, wantErr: true},
		{name: "in progress closes", from: TicketStatusInProgress, wantErr: false},
		{name: "pending closes", from: TicketStatusPending, wantErr: false},
		{name: "resolved is terminal", from: TicketStatusResolved, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ApplyClose(sampleTicket(tt.from), CloseEvent{ClosedAt: "2026-05-15T14:30:00Z"}, Strict)
			if tt.wantErr != (err != nil) {
				t.Errorf("ApplyClose(from %d) error = %v, wantErr %v", tt.from, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("error = %v, want ErrInvalidTransition", err)
			}
		})
	}
}

func TestTransitionsNeverProducePending(t *testing.T) {
	for _, status := range []TicketStatus{TicketStatusOpen, TicketStatusInProgress, TicketStatusPending, TicketStatusResolved} {
		if assigned, err := ApplyAssign(sampleTicket(status), AssignEvent{TechnicianCode: "TEC001"}, Permissive); err == nil && assigned.Status == TicketStatusPending {
			t.Errorf("ApplyAssign produced Pending from %d", status)
		}
		if closed, err := ApplyClose(sampleTicket(status), CloseEvent{ClosedAt: "2026-01-01T00:00:00Z"}, Permissive); err == nil && closed.Status == TicketStatusPending {
			t.Errorf("ApplyClose produced Pending from %d", status)
		}
	}
}
