package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/soldesk/ticket-service/internal/config"
	"github.com/soldesk/ticket-service/internal/domain"
	"github.com/soldesk/ticket-service/internal/events"
	"github.com/soldesk/ticket-service/internal/repository"
	apperrors "github.com/soldesk/ticket-service/pkg/util/errorutil"
)

// TicketService drives the ticket lifecycle: create, assign, close, delete.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	mode       domain.TransitionMode
	now        func() time.Time
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Now        func() time.Time
}

// CreateTicketInput is the already-validated creation payload. Status is
// persisted exactly as supplied; the boundary validator is expected to send
// Open for new tickets.
type CreateTicketInput struct {
	Description   string
	RequesterCode string
	SupportTypeID int
	Status        domain.TicketStatus
	CreatedAt     time.Time
}

// NewTicketService constructs the service.
func NewTicketService(cfg config.LifecycleConfig, deps TicketDependencies) *TicketService {
	mode := domain.Permissive
	if cfg.StrictTransitions {
		mode = domain.Strict
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		mode:       mode,
		now:        now,
	}
}

// Create persists a new ticket and returns its generated consultation code.
func (s *TicketService) Create(ctx context.Context, input CreateTicketInput) (string, error) {
	ticket := &domain.Ticket{
		ConsultationCode: domain.NewConsultationCode(s.now()),
		Description:      input.Description,
		RequesterCode:    input.RequesterCode,
		SupportTypeID:    input.SupportTypeID,
		Status:           input.Status,
		CreatedAt:        input.CreatedAt,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return "", apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    input.RequesterCode,
		Payload: events.TicketCreatedPayload{
			ConsultationCode: ticket.ConsultationCode,
			RequesterCode:    ticket.RequesterCode,
			SupportTypeID:    ticket.SupportTypeID,
			Status:           ticket.Status,
		},
	})
	return ticket.ConsultationCode, nil
}

// AssignTechnician assigns (or re-assigns) a technician and forces the ticket
// into In Progress. Both the ticket and the technician must exist.
func (s *TicketService) AssignTechnician(ctx context.Context, ticketID int64, technicianCode string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id_ticket": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	if _, err := s.users.GetByAlfNum(ctx, technicianCode); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("technician", map[string]any{"alf_num": technicianCode})
		}
		return nil, apperrors.MapError(err)
	}

	oldTechnician := ticket.TechnicianCode
	oldStatus := ticket.Status
	updated, err := domain.ApplyAssign(*ticket, domain.AssignEvent{TechnicianCode: technicianCode}, s.mode)
	if err != nil {
		return nil, apperrors.NewConflict(err.Error(), map[string]any{"status": ticket.Status})
	}

	// the ticket may have been deleted between read and write; surface that
	// benign race as not-found
	if err := s.tickets.Update(ctx, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id_ticket": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTechnicianAssigned,
		TicketID: updated.ID,
		Actor:    technicianCode,
		Payload: events.TechnicianAssignedPayload{
			TechnicianCode: technicianCode,
			OldTechnician:  oldTechnician,
			OldStatus:      oldStatus,
		},
	})
	return &updated, nil
}

// Close forces the ticket into Resolved, recording the closure timestamp
// exactly as received. Handling hours are populated out of band.
func (s *TicketService) Close(ctx context.Context, ticketID int64, closedAt string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id_ticket": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	oldStatus := ticket.Status
	updated, err := domain.ApplyClose(*ticket, domain.CloseEvent{ClosedAt: closedAt}, s.mode)
	if err != nil {
		return nil, apperrors.NewConflict(err.Error(), map[string]any{"status": ticket.Status})
	}

	if err := s.tickets.Update(ctx, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id_ticket": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketClosed,
		TicketID: updated.ID,
		Payload: events.TicketClosedPayload{
			ClosedAt:  closedAt,
			OldStatus: oldStatus,
		},
	})
	return &updated, nil
}

// DeleteByCode unconditionally deletes the ticket matching the consultation
// code. Zero affected rows is reported as not-found.
func (s *TicketService) DeleteByCode(ctx context.Context, code string) (int64, error) {
	count, err := s.tickets.DeleteByCode(ctx, code)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	if count == 0 {
		return 0, apperrors.NewNotFound("ticket", map[string]any{"codigo_consulta": code})
	}
	s.publish(ctx, events.Event{
		Type: events.EventTicketDeleted,
		Payload: events.TicketDeletedPayload{
			ConsultationCode: code,
			DeletedCount:     count,
		},
	})
	return count, nil
}

// ListForUser returns the joined listing rows for one requester.
func (s *TicketService) ListForUser(ctx context.Context, alfNum string) ([]repository.TicketView, error) {
	views, err := s.tickets.ListView(ctx, &alfNum)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return views, nil
}

// ListAll returns the joined listing rows for every ticket.
func (s *TicketService) ListAll(ctx context.Context) ([]repository.TicketView, error) {
	views, err := s.tickets.ListView(ctx, nil)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return views, nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
