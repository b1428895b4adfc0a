package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soldesk/ticket-service/internal/domain"
)

// MetricsFilter selects the month-bucketed ticket set feeding the aggregator.
// Exactly one of RequesterCode/TechnicianCode may be set; both nil means the
// global scope.
type MetricsFilter struct {
	RequesterCode  *string
	TechnicianCode *string
	Window         domain.MonthWindow
}

// TicketView is the joined listing row returned to dashboards: public code,
// support-type name and the technician's full name instead of raw ids.
type TicketView struct {
	ID               int64
	ConsultationCode string
	SupportType      string
	Description      string
	Status           domain.TicketStatus
	CreatedAt        time.Time
	Technician       *string
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	GetByCode(ctx context.Context, code string) (*domain.Ticket, error)
	DeleteByCode(ctx context.Context, code string) (int64, error)
	ListView(ctx context.Context, requesterCode *string) ([]TicketView, error)
	ListForMetrics(ctx context.Context, filter MetricsFilter) ([]domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (consultation_code, description, requester_alf_num, support_type_id, technician_alf_num, status, created_at, closed_at, handling_hours)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		ticket.ConsultationCode,
		ticket.Description,
		ticket.RequesterCode,
		ticket.SupportTypeID,
		ticket.TechnicianCode,
		ticket.Status,
		ticket.CreatedAt,
		ticket.ClosedAt,
		ticket.HandlingHours,
	).Scan(&ticket.ID)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET description=$1, support_type_id=$2, technician_alf_num=$3,
            status=$4, closed_at=$5, handling_hours=$6
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Description,
		ticket.SupportTypeID,
		ticket.TechnicianCode,
		ticket.Status,
		ticket.ClosedAt,
		ticket.HandlingHours,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	const query = `
        SELECT id, consultation_code, description, requester_alf_num, support_type_id,
               technician_alf_num, status, created_at, closed_at, handling_hours
        FROM tickets WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *ticketRepository) GetByCode(ctx context.Context, code string) (*domain.Ticket, error) {
	const query = `
        SELECT id, consultation_code, description, requester_alf_num, support_type_id,
               technician_alf_num, status, created_at, closed_at, handling_hours
        FROM tickets WHERE consultation_code=$1`
	return r.fetchSingle(ctx, query, code)
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&ticket.ID,
		&ticket.ConsultationCode,
		&ticket.Description,
		&ticket.RequesterCode,
		&ticket.SupportTypeID,
		&ticket.TechnicianCode,
		&ticket.Status,
		&ticket.CreatedAt,
		&ticket.ClosedAt,
		&ticket.HandlingHours,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// DeleteByCode removes tickets matching the consultation code and reports how
// many rows were affected. Zero affected rows is not an error at this layer.
func (r *ticketRepository) DeleteByCode(ctx context.Context, code string) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE consultation_code=$1`, code)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *ticketRepository) ListView(ctx context.Context, requesterCode *string) ([]TicketView, error) {
	base := `
        SELECT t.id, t.consultation_code, s.name, t.description, t.status, t.created_at,
               CASE WHEN u.alf_num IS NULL THEN NULL ELSE concat(u.names, ' ', u.surnames) END
        FROM tickets t
        JOIN support_types s ON s.id = t.support_type_id
        LEFT JOIN users u ON t.technician_alf_num = u.alf_num`

	args := []any{}
	if requesterCode != nil {
		args = append(args, *requesterCode)
		base += ` WHERE t.requester_alf_num=$1`
	}
	base += ` ORDER BY t.created_at DESC`

	rows, err := r.pool.Query(ctx, base, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []TicketView
	for rows.Next() {
		var view TicketView
		if err := rows.Scan(
			&view.ID,
			&view.ConsultationCode,
			&view.SupportType,
			&view.Description,
			&view.Status,
			&view.CreatedAt,
			&view.Technician,
		); err != nil {
			return nil, err
		}
		result = append(result, view)
	}
	return result, rows.Err()
}

// ListForMetrics returns the tickets whose creation timestamp falls in the
// filter's month, restricted to the four known statuses and scoped by
// requester or technician when set.
func (r *ticketRepository) ListForMetrics(ctx context.Context, filter MetricsFilter) ([]domain.Ticket, error) {
	base := `
        SELECT id, consultation_code, description, requester_alf_num, support_type_id,
               technician_alf_num, status, created_at, closed_at, handling_hours
        FROM tickets`
	clauses := []string{"status IN (1,2,3,4)"}
	args := []any{}

	args = append(args, int(filter.Window.Month))
	clauses = append(clauses, fmt.Sprintf("EXTRACT(MONTH FROM created_at) = $%d", len(args)))
	args = append(args, filter.Window.Year)
	clauses = append(clauses, fmt.Sprintf("EXTRACT(YEAR FROM created_at) = $%d", len(args)))

	if filter.RequesterCode != nil {
		args = append(args, *filter.RequesterCode)
		clauses = append(clauses, fmt.Sprintf("requester_alf_num = $%d", len(args)))
	}
	if filter.TechnicianCode != nil {
		args = append(args, *filter.TechnicianCode)
		clauses = append(clauses, fmt.Sprintf("technician_alf_num = $%d", len(args)))
	}

	query := fmt.Sprintf("%s WHERE %s", base, strings.Join(clauses, " AND "))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.ConsultationCode,
			&ticket.Description,
			&ticket.RequesterCode,
			&ticket.SupportTypeID,
			&ticket.TechnicianCode,
			&ticket.Status,
			&ticket.CreatedAt,
			&ticket.ClosedAt,
			&ticket.HandlingHours,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
