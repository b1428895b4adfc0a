package service

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/soldesk/ticket-service/internal/domain"
	"github.com/soldesk/ticket-service/internal/repository"
)

// fakeTicketRepo is an in-memory TicketRepository for service tests.
type fakeTicketRepo struct {
	mu      sync.Mutex
	nextID  int64
	tickets map[int64]domain.Ticket

	listErr       error
	capturedLists []repository.MetricsFilter
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{nextID: 1, tickets: map[int64]domain.Ticket{}}
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket.ID = f.nextID
	f.nextID++
	f.tickets[ticket.ID] = *ticket
	return nil
}

func (f *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.tickets[ticket.ID] = *ticket
	return nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &ticket, nil
}

func (f *fakeTicketRepo) GetByCode(_ context.Context, code string) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ticket := range f.tickets {
		if ticket.ConsultationCode == code {
			return &ticket, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeTicketRepo) DeleteByCode(_ context.Context, code string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for id, ticket := range f.tickets {
		if ticket.ConsultationCode == code {
			delete(f.tickets, id)
			count++
		}
	}
	return count, nil
}

func (f *fakeTicketRepo) ListView(_ context.Context, requesterCode *string) ([]repository.TicketView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var views []repository.TicketView
	for _, ticket := range f.tickets {
		if requesterCode != nil && ticket.RequesterCode != *requesterCode {
			continue
		}
		views = append(views, repository.TicketView{
			ID:               ticket.ID,
			ConsultationCode: ticket.ConsultationCode,
			SupportType:      "Hardware",
			Description:      ticket.Description,
			Status:           ticket.Status,
			CreatedAt:        ticket.CreatedAt,
		})
	}
	return views, nil
}

func (f *fakeTicketRepo) ListForMetrics(_ context.Context, filter repository.MetricsFilter) ([]domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.capturedLists = append(f.capturedLists, filter)
	if f.listErr != nil {
		return nil, f.listErr
	}
	var result []domain.Ticket
	for _, ticket := range f.tickets {
		if !ticket.Status.Valid() {
			continue
		}
		if ticket.CreatedAt.Month() != filter.Window.Month || ticket.CreatedAt.Year() != filter.Window.Year {
			continue
		}
		if filter.RequesterCode != nil && ticket.RequesterCode != *filter.RequesterCode {
			continue
		}
		if filter.TechnicianCode != nil {
			if ticket.TechnicianCode == nil || *ticket.TechnicianCode != *filter.TechnicianCode {
				continue
			}
		}
		result = append(result, ticket)
	}
	return result, nil
}

// fakeUserRepo is an in-memory UserRepository for service tests.
type fakeUserRepo struct {
	mu       sync.Mutex
	users    map[string]domain.User
	countErr error
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]domain.User{}}
	for _, user := range users {
		repo.users[user.AlfNum] = user
	}
	return repo
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = int64(len(f.users) + 1)
	f.users[user.AlfNum] = *user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.AlfNum]; !ok {
		return pgx.ErrNoRows
	}
	f.users[user.AlfNum] = *user
	return nil
}

func (f *fakeUserRepo) GetByAlfNum(_ context.Context, alfNum string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[alfNum]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (f *fakeUserRepo) CountByRole(_ context.Context, role domain.Role) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countErr != nil {
		return 0, f.countErr
	}
	count := 0
	for _, user := range f.users {
		if user.RoleID == role && user.Active {
			count++
		}
	}
	return count, nil
}
