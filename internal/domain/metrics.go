package domain

import (
	"math"
	"time"
)

// StatusCounts holds per-status ticket counts for the current month. The JSON
// field names are part of the report format consumed by the dashboard.
type StatusCounts struct {
	Abiertos   int `json:"abiertos"`
	EnProceso  int `json:"enProceso"`
	Pendientes int `json:"pendientes"`
	Resueltos  int `json:"resueltos"`
}

// AverageTime compares average resolution hours against the previous month.
type AverageTime struct {
	Current       float64 `json:"current"`
	Difference    float64 `json:"difference"`
	Percentage    float64 `json:"percentage"`
	IsImprovement bool    `json:"isImprovement"`
}

// MonthTotals holds the raw ticket counts for each comparison window.
type MonthTotals struct {
	CurrentMonth  int `json:"currentMonth"`
	PreviousMonth int `json:"previousMonth"`
}

// UserTotals extends the report for the global/admin scope.
type UserTotals struct {
	TotalUsers       int `json:"totalUsers"`
	TotalTechnicians int `json:"totalTechnicians"`
}

// MetricsReport is a derived value object, computed on demand and never
// stored.
type MetricsReport struct {
	TicketsByStatus StatusCounts `json:"ticketsByStatus"`
	TiempoPromedio  AverageTime  `json:"tiempoPromedio"`
	Totals          MonthTotals  `json:"totals"`
	Users           *UserTotals  `json:"users,omitempty"`
}

// ComputeMetrics compares a month's tickets against the previous month's.
// Both slices must already be restricted to statuses 1-4 and filtered to the
// requested scope by the caller.
//
// Averages cover Resolved tickets only; a missing handling-hours value counts
// as 0, and an empty Resolved subset yields an average of 0 rather than NaN.
// When the previous average is exactly 0 the percentage is defined as 0, so
// "no prior data" reads as "0% change".
func ComputeMetrics(current, previous []Ticket) MetricsReport {
	counts := StatusCounts{}
	for _, t := range current {
		switch t.Status {
		case TicketStatusOpen:
			counts.Abiertos++
		case TicketStatusInProgress:
			counts.EnProceso++
		case TicketStatusPending:
			counts.Pendientes++
		case TicketStatusResolved:
			counts.Resueltos++
		}
	}

	currentAvg := averageResolutionHours(current)
	previousAvg := averageResolutionHours(previous)

	difference := currentAvg - previousAvg
	percentage := 0.0
	if previousAvg != 0 {
		percentage = (difference / previousAvg) * 100
	}

	return MetricsReport{
		TicketsByStatus: counts,
		TiempoPromedio: AverageTime{
			Current:       round1(currentAvg),
			Difference:    round1(difference),
			Percentage:    round1(percentage),
			IsImprovement: difference < 0,
		},
		Totals: MonthTotals{
			CurrentMonth:  len(current),
			PreviousMonth: len(previous),
		},
	}
}

func averageResolutionHours(tickets []Ticket) float64 {
	var sum float64
	var resolved int
	for _, t := range tickets {
		if t.Status != TicketStatusResolved {
			continue
		}
		resolved++
		if t.HandlingHours != nil {
			sum += *t.HandlingHours
		}
	}
	if resolved == 0 {
		return 0
	}
	return sum / float64(resolved)
}

// round1 rounds to one decimal place, half away from zero.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// MonthWindow identifies one calendar month.
type MonthWindow struct {
	Month time.Month
	Year  int
}

// ComparisonWindows derives the current and previous calendar months from the
// given instant, handling the December to January rollover.
func ComparisonWindows(now time.Time) (current, previous MonthWindow) {
	current = MonthWindow{Month: now.Month(), Year: now.Year()}
	if current.Month == time.January {
		previous = MonthWindow{Month: time.December, Year: current.Year - 1}
	} else {
		previous = MonthWindow{Month: current.Month - 1, Year: current.Year}
	}
	return current, previous
}
