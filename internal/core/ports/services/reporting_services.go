package services

import (
	"context"
	"time"

	"github.com/ratbook/ratbook_backend/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// FinancialReport assembles the general ledger, AP/AR sub-ledgers,
	// summary totals and the monthly chart for the given period. Nil bounds
	// are open; balance-sheet totals always cover everything up to end.
	FinancialReport(ctx context.Context, start, end *time.Time) (*domain.FinancialReport, error)

	// DashboardStats aggregates net income-statement totals over the window
	// and collects the oldest overdue transactions.
	DashboardStats(ctx context.Context, start, end time.Time) (*domain.DashboardStats, error)
}
