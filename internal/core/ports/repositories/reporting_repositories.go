package repositories

import (
	"context"
	"time"

	"github.com/ratbook/ratbook_backend/internal/core/domain"
)

// ReportingRepository defines operations for retrieving financial report data
type ReportingRepository interface {
	// GetEntryRows retrieves journal entries joined with their transaction
	// header and account, filtered by transaction date. Nil bounds are open.
	GetEntryRows(ctx context.Context, start, end *time.Time) ([]domain.EntryRow, error)

	// GetCategoryTotals retrieves per-category debit and credit sums over the
	// given date window.
	GetCategoryTotals(ctx context.Context, start, end time.Time) ([]domain.CategoryTotal, error)

	// GetOverdueTransactions retrieves transactions whose due date is before
	// the given day, oldest due date first, capped at limit.
	GetOverdueTransactions(ctx context.Context, before time.Time, limit int) ([]domain.OverdueAlert, error)
}
