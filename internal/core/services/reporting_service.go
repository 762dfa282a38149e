package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ratbook/ratbook_backend/internal/core/domain"
	portsrepo "github.com/ratbook/ratbook_backend/internal/core/ports/repositories"
	portssvc "github.com/ratbook/ratbook_backend/internal/core/ports/services"
	"github.com/ratbook/ratbook_backend/internal/utils/accounting"
)

const overdueAlertLimit = 5

type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates the service assembling financial reports.
func NewReportingService(repo portsrepo.ReportingRepository) portssvc.ReportingService {
	return &reportingService{reportingRepo: repo}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// FinancialReport builds the general ledger, AP/AR sub-ledgers, summary and
// monthly chart in a single pass over the period's entries. The date filter
// applies only when both bounds are given; balance-sheet totals always cover
// everything up to the end bound.
func (s *reportingService) FinancialReport(ctx context.Context, start, end *time.Time) (*domain.FinancialReport, error) {
	var periodStart, periodEnd *time.Time
	if start != nil && end != nil {
		periodStart, periodEnd = start, end
	}

	rows, err := s.reportingRepo.GetEntryRows(ctx, periodStart, periodEnd)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch entry rows for report")
		return nil, err
	}

	report := &domain.FinancialReport{
		APLedger: map[string]domain.SubLedger{},
		ARLedger: map[string]domain.SubLedger{},
	}

	ledgerByAccount := map[string]*domain.LedgerAccount{}
	ledgerOrder := []string{}
	type monthlyTotals struct {
		income  decimal.Decimal
		expense decimal.Decimal
	}
	monthlyAgg := map[string]*monthlyTotals{}

	for _, row := range rows {
		val := accounting.SignedBalance(row.Debit, row.Credit, row.NormalBalance)

		acc, ok := ledgerByAccount[row.AccountID]
		if !ok {
			acc = &domain.LedgerAccount{
				AccountID:     row.AccountID,
				Code:          row.AccountCode,
				Name:          row.AccountName,
				Category:      row.Category,
				NormalBalance: row.NormalBalance,
				Balance:       decimal.Zero,
			}
			ledgerByAccount[row.AccountID] = acc
			ledgerOrder = append(ledgerOrder, row.AccountID)
		}
		acc.Balance = acc.Balance.Add(val)

		desc := row.Description
		if row.ProductName != "" {
			desc = fmt.Sprintf("%s (%s x%s)", desc, row.ProductName, row.Quantity.String())
		}
		acc.Entries = append(acc.Entries, domain.LedgerLine{
			Date:        row.Date,
			Description: desc,
			Debit:       row.Debit,
			Credit:      row.Credit,
		})

		switch row.Category {
		case domain.CategoryRevenue:
			report.Summary.Income = report.Summary.Income.Add(row.Credit)
		case domain.CategoryExpense:
			report.Summary.Expense = report.Summary.Expense.Add(row.Debit)
		case domain.CategoryCOGS:
			report.Summary.COGS = report.Summary.COGS.Add(row.Debit)
		}

		mKey := row.Date.Format("2006-01")
		bucket, ok := monthlyAgg[mKey]
		if !ok {
			bucket = &monthlyTotals{}
			monthlyAgg[mKey] = bucket
		}
		if row.Category == domain.CategoryRevenue {
			bucket.income = bucket.income.Add(row.Credit)
		}
		if row.Category == domain.CategoryExpense || row.Category == domain.CategoryCOGS {
			bucket.expense = bucket.expense.Add(row.Debit)
		}

		if row.SubLedgerName != "" {
			line := domain.SubLedgerLine{
				Date:        row.Date,
				Description: row.Description,
				Debit:       row.Debit,
				Credit:      row.Credit,
				DueDate:     row.DueDate,
			}
			// Payables are classified first; receivables only catch what is left.
			if row.Category == domain.CategoryLiability || strings.HasPrefix(row.AccountCode, "2") || strings.Contains(row.AccountName, "Utang") {
				sub := report.APLedger[row.SubLedgerName]
				sub.Balance = sub.Balance.Add(row.Credit.Sub(row.Debit))
				sub.Entries = append(sub.Entries, line)
				report.APLedger[row.SubLedgerName] = sub
			} else if strings.HasPrefix(row.AccountCode, "112") || strings.Contains(row.AccountName, "Piutang") {
				sub := report.ARLedger[row.SubLedgerName]
				sub.Balance = sub.Balance.Add(row.Debit.Sub(row.Credit))
				sub.Entries = append(sub.Entries, line)
				report.ARLedger[row.SubLedgerName] = sub
			}
		}
	}

	report.Ledger = make([]domain.LedgerAccount, len(ledgerOrder))
	for i, id := range ledgerOrder {
		report.Ledger[i] = *ledgerByAccount[id]
	}

	labels := make([]string, 0, len(monthlyAgg))
	for k := range monthlyAgg {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	report.Chart.Labels = labels
	for _, k := range labels {
		report.Chart.Income = append(report.Chart.Income, monthlyAgg[k].income)
		report.Chart.Expense = append(report.Chart.Expense, monthlyAgg[k].expense)
	}

	report.NetProfit = report.Summary.Income.Sub(report.Summary.Expense.Add(report.Summary.COGS))

	// Balance-sheet totals run over all entries up to the end date, ignoring
	// the start bound entirely.
	bsRows, err := s.reportingRepo.GetEntryRows(ctx, nil, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch entry rows for balance sheet")
		return nil, err
	}
	for _, row := range bsRows {
		switch row.Category {
		case domain.CategoryAsset:
			report.Summary.Asset = report.Summary.Asset.Add(row.Debit.Sub(row.Credit))
		case domain.CategoryLiability:
			report.Summary.Liability = report.Summary.Liability.Add(row.Credit.Sub(row.Debit))
		case domain.CategoryEquity:
			report.Summary.Equity = report.Summary.Equity.Add(row.Credit.Sub(row.Debit))
		}
	}

	return report, nil
}

// DashboardStats aggregates net per-category totals over the window and
// collects up to five overdue transactions, oldest due date first.
func (s *reportingService) DashboardStats(ctx context.Context, start, end time.Time) (*domain.DashboardStats, error) {
	totals, err := s.reportingRepo.GetCategoryTotals(ctx, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch category totals for dashboard")
		return nil, err
	}

	stats := &domain.DashboardStats{}
	for _, t := range totals {
		switch t.Category {
		case domain.CategoryRevenue:
			stats.Income = stats.Income.Add(t.Credit.Sub(t.Debit))
		case domain.CategoryExpense:
			stats.Expense = stats.Expense.Add(t.Debit.Sub(t.Credit))
		case domain.CategoryCOGS:
			stats.COGS = stats.COGS.Add(t.Debit.Sub(t.Credit))
		}
	}
	stats.NetProfit = stats.Income.Sub(stats.Expense).Sub(stats.COGS)

	today := time.Now().Truncate(24 * time.Hour)
	alerts, err := s.reportingRepo.GetOverdueTransactions(ctx, today, overdueAlertLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch overdue transactions for dashboard")
		return nil, err
	}
	stats.Alerts = alerts

	return stats, nil
}
