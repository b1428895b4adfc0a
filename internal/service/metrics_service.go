package service

import (
	"context"
	"sync"
	"time"

	"github.com/soldesk/ticket-service/internal/domain"
	"github.com/soldesk/ticket-service/internal/repository"
	apperrors "github.com/soldesk/ticket-service/pkg/util/errorutil"
)

// Scope is the filter dimension under which metrics are computed.
type Scope string

const (
	ScopeGlobal     Scope = "global"
	ScopeUser       Scope = "user"
	ScopeTechnician Scope = "technician"
)

// MetricsService resolves a scope into two month-bucketed ticket sets and
// feeds them to the aggregator. The comparison windows are derived from the
// clock once per invocation.
type MetricsService struct {
	tickets repository.TicketRepository
	users   repository.UserRepository
	now     func() time.Time
}

// NewMetricsService constructs the service.
func NewMetricsService(tickets repository.TicketRepository, users repository.UserRepository, now func() time.Time) *MetricsService {
	if now == nil {
		now = time.Now
	}
	return &MetricsService{tickets: tickets, users: users, now: now}
}

// Global computes the report over all tickets and extends it with user and
// technician totals for the admin dashboard.
func (s *MetricsService) Global(ctx context.Context) (*domain.MetricsReport, error) {
	report, err := s.compute(ctx, ScopeGlobal, nil, nil)
	if err != nil {
		return nil, err
	}

	totalUsers, err := s.users.CountByRole(ctx, domain.RoleEndUser)
	if err != nil {
		return nil, apperrors.NewAggregationFailure(string(ScopeGlobal), err)
	}
	totalTechnicians, err := s.users.CountByRole(ctx, domain.RoleTechnician)
	if err != nil {
		return nil, apperrors.NewAggregationFailure(string(ScopeGlobal), err)
	}
	report.Users = &domain.UserTotals{
		TotalUsers:       totalUsers,
		TotalTechnicians: totalTechnicians,
	}
	return report, nil
}

// ForUser computes the report over tickets requested by the given user.
func (s *MetricsService) ForUser(ctx context.Context, alfNum string) (*domain.MetricsReport, error) {
	return s.compute(ctx, ScopeUser, &alfNum, nil)
}

// ForTechnician computes the report over tickets assigned to the given
// technician.
func (s *MetricsService) ForTechnician(ctx context.Context, alfNum string) (*domain.MetricsReport, error) {
	return s.compute(ctx, ScopeTechnician, nil, &alfNum)
}

func (s *MetricsService) compute(ctx context.Context, scope Scope, requester, technician *string) (*domain.MetricsReport, error) {
	currentWindow, previousWindow := domain.ComparisonWindows(s.now())

	current, err := s.tickets.ListForMetrics(ctx, repository.MetricsFilter{
		RequesterCode:  requester,
		TechnicianCode: technician,
		Window:         currentWindow,
	})
	if err != nil {
		return nil, apperrors.NewAggregationFailure(string(scope), err)
	}

	previous, err := s.tickets.ListForMetrics(ctx, repository.MetricsFilter{
		RequesterCode:  requester,
		TechnicianCode: technician,
		Window:         previousWindow,
	})
	if err != nil {
		return nil, apperrors.NewAggregationFailure(string(scope), err)
	}

	report := domain.ComputeMetrics(current, previous)
	return &report, nil
}

// ScopeRequest names one scope to be computed in a batch.
type ScopeRequest struct {
	Scope  Scope
	AlfNum string
}

// ScopeResult pairs a requested scope with its report or its own failure.
type ScopeResult struct {
	Scope  Scope
	AlfNum string
	Report *domain.MetricsReport
	Err    error
}

// ComputeMany evaluates several scopes concurrently. Each scope fails
// independently; one failing scope never aborts the others.
func (s *MetricsService) ComputeMany(ctx context.Context, requests []ScopeRequest) []ScopeResult {
	results := make([]ScopeResult, len(requests))

	var wg sync.WaitGroup
	for i, req := range requests {
		wg.Add(1)
		go func(i int, req ScopeRequest) {
			defer wg.Done()
			result := ScopeResult{Scope: req.Scope, AlfNum: req.AlfNum}
			switch req.Scope {
			case ScopeUser:
				result.Report, result.Err = s.ForUser(ctx, req.AlfNum)
			case ScopeTechnician:
				result.Report, result.Err = s.ForTechnician(ctx, req.AlfNum)
			default:
				result.Report, result.Err = s.Global(ctx)
			}
			results[i] = result
		}(i, req)
	}
	wg.Wait()

	return results
}
