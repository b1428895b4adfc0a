package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/soldesk/ticket-service/internal/domain"
)

func seedMetricsTickets(t *testing.T, repo *fakeTicketRepo) {
	t.Helper()
	tec := "TEC001"
	hoursCurrent := []float64{2, 4}
	hoursPrevious := []float64{5}

	for i := range hoursCurrent {
		h := hoursCurrent[i]
		ticket := domain.Ticket{
			ConsultationCode: domain.NewConsultationCode(time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)),
			RequesterCode:    "USR001",
			TechnicianCode:   &tec,
			Status:           domain.TicketStatusResolved,
			CreatedAt:        time.Date(2026, time.May, 2+i, 10, 0, 0, 0, time.UTC),
			HandlingHours:    &h,
		}
		if err := repo.Create(context.Background(), &ticket); err != nil {
			t.Fatal(err)
		}
	}
	for i := range hoursPrevious {
		h := hoursPrevious[i]
		ticket := domain.Ticket{
			ConsultationCode: domain.NewConsultationCode(time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)),
			RequesterCode:    "USR001",
			TechnicianCode:   &tec,
			Status:           domain.TicketStatusResolved,
			CreatedAt:        time.Date(2026, time.April, 10+i, 10, 0, 0, 0, time.UTC),
			HandlingHours:    &h,
		}
		if err := repo.Create(context.Background(), &ticket); err != nil {
			t.Fatal(err)
		}
	}
	// an open ticket from another user in the current month
	other := domain.Ticket{
		ConsultationCode: "SOL-202605-OTHER1",
		RequesterCode:    "USR002",
		Status:           domain.TicketStatusOpen,
		CreatedAt:        time.Date(2026, time.May, 5, 10, 0, 0, 0, time.UTC),
	}
	if err := repo.Create(context.Background(), &other); err != nil {
		t.Fatal(err)
	}
}

func TestMetricsForUser(t *testing.T) {
	tickets := newFakeTicketRepo()
	seedMetricsTickets(t, tickets)
	svc := NewMetricsService(tickets, newFakeUserRepo(), fixedClock(time.Date(2026, time.May, 20, 12, 0, 0, 0, time.UTC)))

	report, err := svc.ForUser(context.Background(), "USR001")
	if err != nil {
		t.Fatalf("ForUser() returned error: %v", err)
	}

	avg := report.TiempoPromedio
	if avg.Current != 3.0 || avg.Difference != -2.0 || avg.Percentage != -40.0 || !avg.IsImprovement {
		t.Errorf("TiempoPromedio = %+v, want {3 -2 -40 true}", avg)
	}
	if report.Totals.CurrentMonth != 2 || report.Totals.PreviousMonth != 1 {
		t.Errorf("Totals = %+v, want {2 1}", report.Totals)
	}
	if report.Users != nil {
		t.Errorf("user scope carries user totals: %+v", report.Users)
	}
}

func TestMetricsScopesFilterIndependently(t *testing.T) {
	tickets := newFakeTicketRepo()
	seedMetricsTickets(t, tickets)
	users := newFakeUserRepo(
		technician("TEC001"),
		domain.User{AlfNum: "USR001", RoleID: domain.RoleEndUser, Active: true},
		domain.User{AlfNum: "USR002", RoleID: domain.RoleEndUser, Active: true},
	)
	svc := NewMetricsService(tickets, users, fixedClock(time.Date(2026, time.May, 20, 12, 0, 0, 0, time.UTC)))

	global, err := svc.Global(context.Background())
	if err != nil {
		t.Fatalf("Global() returned error: %v", err)
	}
	if global.Totals.CurrentMonth != 3 {
		t.Errorf("global current total = %d, want 3", global.Totals.CurrentMonth)
	}
	if global.Users == nil || global.Users.TotalUsers != 2 || global.Users.TotalTechnicians != 1 {
		t.Errorf("global user totals = %+v, want {2 1}", global.Users)
	}

	byTechnician, err := svc.ForTechnician(context.Background(), "TEC001")
	if err != nil {
		t.Fatalf("ForTechnician() returned error: %v", err)
	}
	if byTechnician.Totals.CurrentMonth != 2 {
		t.Errorf("technician current total = %d, want 2", byTechnician.Totals.CurrentMonth)
	}
	if byTechnician.TicketsByStatus.Resueltos != 2 {
		t.Errorf("technician resolved count = %d, want 2", byTechnician.TicketsByStatus.Resueltos)
	}
}

func TestMetricsWindowsRollOverYear(t *testing.T) {
	tickets := newFakeTicketRepo()
	svc := NewMetricsService(tickets, newFakeUserRepo(), fixedClock(time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC)))

	if _, err := svc.ForUser(context.Background(), "USR001"); err != nil {
		t.Fatalf("ForUser() returned error: %v", err)
	}

	if len(tickets.capturedLists) != 2 {
		t.Fatalf("captured %d filters, want 2", len(tickets.capturedLists))
	}
	current, previous := tickets.capturedLists[0], tickets.capturedLists[1]
	if current.Window.Month != time.January || current.Window.Year != 2026 {
		t.Errorf("current window = %+v, want January 2026", current.Window)
	}
	if previous.Window.Month != time.December || previous.Window.Year != 2025 {
		t.Errorf("previous window = %+v, want December 2025", previous.Window)
	}
	if current.RequesterCode == nil || *current.RequesterCode != "USR001" {
		t.Errorf("current filter requester = %v, want USR001", current.RequesterCode)
	}
}

func TestComputeManyIsolatesScopeFailures(t *testing.T) {
	healthy := newFakeTicketRepo()
	seedMetricsTickets(t, healthy)
	users := newFakeUserRepo()
	users.countErr = errors.New("users table offline")
	svc := NewMetricsService(healthy, users, fixedClock(time.Date(2026, time.May, 20, 12, 0, 0, 0, time.UTC)))

	results := svc.ComputeMany(context.Background(), []ScopeRequest{
		{Scope: ScopeGlobal},
		{Scope: ScopeUser, AlfNum: "USR001"},
		{Scope: ScopeTechnician, AlfNum: "TEC001"},
	})

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].Err == nil {
		t.Error("global scope should fail when user totals are unavailable")
	}
	if results[1].Err != nil {
		t.Errorf("user scope failed: %v", results[1].Err)
	}
	if results[2].Err != nil {
		t.Errorf("technician scope failed: %v", results[2].Err)
	}
	if results[1].Report == nil || results[2].Report == nil {
		t.Error("healthy scopes returned no report")
	}
}
