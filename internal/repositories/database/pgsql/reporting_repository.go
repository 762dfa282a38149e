package pgsql

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ratbook/ratbook_backend/internal/apperrors"
	"github.com/ratbook/ratbook_backend/internal/core/domain"
	portsrepo "github.com/ratbook/ratbook_backend/internal/core/ports/repositories"
)

type ReportingRepository struct {
	pool *pgxpool.Pool
}

// newReportingRepository creates a new repository for report data.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &ReportingRepository{pool: pool}
}

// Ensure ReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

// GetEntryRows retrieves journal entries joined with their transaction header
// and account, filtered by transaction date. Nil bounds are open.
func (r *ReportingRepository) GetEntryRows(ctx context.Context, start, end *time.Time) ([]domain.EntryRow, error) {
	query := `
		SELECT t.date, t.due_date, t.description,
		       e.debit, e.credit, COALESCE(e.sub_ledger_name, ''),
		       a.account_id, a.code, a.name, a.category, a.normal_balance,
		       COALESCE(p.name, ''), e.quantity
		FROM journal_entries e
		JOIN transactions t ON e.transaction_id = t.transaction_id
		JOIN accounts a ON e.account_id = a.account_id
		LEFT JOIN products p ON e.product_id = p.product_id
		WHERE 1=1
	`
	args := []interface{}{}
	if start != nil {
		args = append(args, *start)
		query += ` AND t.date >= $` + strconv.Itoa(len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += ` AND t.date <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY t.date, t.created_at;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entry rows", err)
	}
	defer rows.Close()

	entryRows := []domain.EntryRow{}
	for rows.Next() {
		var row domain.EntryRow
		err := rows.Scan(
			&row.Date,
			&row.DueDate,
			&row.Description,
			&row.Debit,
			&row.Credit,
			&row.SubLedgerName,
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&row.Category,
			&row.NormalBalance,
			&row.ProductName,
			&row.Quantity,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		entryRows = append(entryRows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}

	return entryRows, nil
}

// GetCategoryTotals retrieves per-category debit and credit sums over the
// given date window.
func (r *ReportingRepository) GetCategoryTotals(ctx context.Context, start, end time.Time) ([]domain.CategoryTotal, error) {
	query := `
		SELECT a.category, COALESCE(SUM(e.debit), 0), COALESCE(SUM(e.credit), 0)
		FROM journal_entries e
		JOIN transactions t ON e.transaction_id = t.transaction_id
		JOIN accounts a ON e.account_id = a.account_id
		WHERE t.date >= $1 AND t.date <= $2
		GROUP BY a.category;
	`
	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query category totals", err)
	}
	defer rows.Close()

	totals := []domain.CategoryTotal{}
	for rows.Next() {
		var t domain.CategoryTotal
		if err := rows.Scan(&t.Category, &t.Debit, &t.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan category total row", err)
		}
		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating category total rows", err)
	}

	return totals, nil
}

// GetOverdueTransactions retrieves transactions whose due date is before the
// given day, oldest due date first, capped at limit.
func (r *ReportingRepository) GetOverdueTransactions(ctx context.Context, before time.Time, limit int) ([]domain.OverdueAlert, error) {
	query := `
		SELECT date, description, due_date
		FROM transactions
		WHERE due_date IS NOT NULL AND due_date < $1
		ORDER BY due_date
		LIMIT $2;
	`
	rows, err := r.pool.Query(ctx, query, before, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query overdue transactions", err)
	}
	defer rows.Close()

	alerts := []domain.OverdueAlert{}
	for rows.Next() {
		var a domain.OverdueAlert
		if err := rows.Scan(&a.Date, &a.Description, &a.DueDate); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan overdue transaction row", err)
		}
		alerts = append(alerts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating overdue transaction rows", err)
	}

	return alerts, nil
}
