package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ratbook/ratbook_backend/internal/core/domain"
)

// ReportParams defines query parameters for the full financial report.
type ReportParams struct {
	StartDate string `form:"start"`
	EndDate   string `form:"end"`
}

// DashboardParams defines query parameters for the dashboard stats.
// Missing dates default to the current month.
type DashboardParams struct {
	StartDate string `form:"start"`
	EndDate   string `form:"end"`
}

// LedgerLineResponse represents one entry row inside a ledger account.
type LedgerLineResponse struct {
	Date        string          `json:"date"`
	Description string          `json:"desc"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// LedgerAccountResponse represents one general ledger account with its entries.
type LedgerAccountResponse struct {
	AccountID     string               `json:"accountID"`
	Code          string               `json:"code"`
	Name          string               `json:"name"`
	Category      string               `json:"category"`
	NormalBalance string               `json:"normalBalance"`
	Balance       decimal.Decimal      `json:"balance"`
	Entries       []LedgerLineResponse `json:"entries"`
}

// SubLedgerLineResponse represents one entry row inside an AP/AR sub-ledger.
type SubLedgerLineResponse struct {
	Date        string          `json:"date"`
	Description string          `json:"desc"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Due         string          `json:"due"`
}

// SubLedgerResponse represents one counterparty's payable or receivable position.
type SubLedgerResponse struct {
	Balance decimal.Decimal         `json:"balance"`
	Entries []SubLedgerLineResponse `json:"entries"`
}

// MonthlyChartResponse represents the monthly income/expense chart series.
type MonthlyChartResponse struct {
	Labels  []string          `json:"labels"`
	Income  []decimal.Decimal `json:"income"`
	Expense []decimal.Decimal `json:"expense"`
}

// FinancialReportResponse represents the full financial report response.
type FinancialReportResponse struct {
	Summary struct {
		Income    decimal.Decimal `json:"income"`
		Expense   decimal.Decimal `json:"expense"`
		COGS      decimal.Decimal `json:"cogs"`
		Asset     decimal.Decimal `json:"asset"`
		Liability decimal.Decimal `json:"liability"`
		Equity    decimal.Decimal `json:"equity"`
	} `json:"summary"`
	NetProfit decimal.Decimal              `json:"netProfit"`
	Ledger    []LedgerAccountResponse      `json:"ledger"`
	APLedger  map[string]SubLedgerResponse `json:"apLedger"`
	ARLedger  map[string]SubLedgerResponse `json:"arLedger"`
	Chart     MonthlyChartResponse         `json:"chart"`
}

// OverdueAlertResponse represents one overdue transaction alert.
type OverdueAlertResponse struct {
	Date        string `json:"date"`
	Description string `json:"desc"`
	DaysOverdue int    `json:"daysOverdue"`
}

// DashboardStatsResponse represents the dashboard stats response.
type DashboardStatsResponse struct {
	Summary struct {
		Income    decimal.Decimal `json:"income"`
		Expense   decimal.Decimal `json:"expense"`
		COGS      decimal.Decimal `json:"cogs"`
		NetProfit decimal.Decimal `json:"netProfit"`
	} `json:"summary"`
	Alerts []OverdueAlertResponse `json:"alerts"`
}

const dateLayout = "2006-01-02"

func toSubLedgerResponses(ledgers map[string]domain.SubLedger) map[string]SubLedgerResponse {
	out := make(map[string]SubLedgerResponse, len(ledgers))
	for name, sl := range ledgers {
		entries := make([]SubLedgerLineResponse, len(sl.Entries))
		for i, line := range sl.Entries {
			due := "-"
			if line.DueDate != nil {
				due = line.DueDate.Format(dateLayout)
			}
			entries[i] = SubLedgerLineResponse{
				Date:        line.Date.Format(dateLayout),
				Description: line.Description,
				Debit:       line.Debit,
				Credit:      line.Credit,
				Due:         due,
			}
		}
		out[name] = SubLedgerResponse{Balance: sl.Balance, Entries: entries}
	}
	return out
}

// ToFinancialReportResponse converts a domain report to its DTO response.
func ToFinancialReportResponse(report *domain.FinancialReport) FinancialReportResponse {
	response := FinancialReportResponse{
		NetProfit: report.NetProfit,
		Ledger:    make([]LedgerAccountResponse, len(report.Ledger)),
		APLedger:  toSubLedgerResponses(report.APLedger),
		ARLedger:  toSubLedgerResponses(report.ARLedger),
		Chart: MonthlyChartResponse{
			Labels:  report.Chart.Labels,
			Income:  report.Chart.Income,
			Expense: report.Chart.Expense,
		},
	}

	response.Summary.Income = report.Summary.Income
	response.Summary.Expense = report.Summary.Expense
	response.Summary.COGS = report.Summary.COGS
	response.Summary.Asset = report.Summary.Asset
	response.Summary.Liability = report.Summary.Liability
	response.Summary.Equity = report.Summary.Equity

	for i, acc := range report.Ledger {
		entries := make([]LedgerLineResponse, len(acc.Entries))
		for j, line := range acc.Entries {
			entries[j] = LedgerLineResponse{
				Date:        line.Date.Format(dateLayout),
				Description: line.Description,
				Debit:       line.Debit,
				Credit:      line.Credit,
			}
		}
		response.Ledger[i] = LedgerAccountResponse{
			AccountID:     acc.AccountID,
			Code:          acc.Code,
			Name:          acc.Name,
			Category:      string(acc.Category),
			NormalBalance: string(acc.NormalBalance),
			Balance:       acc.Balance,
			Entries:       entries,
		}
	}

	return response
}

// ToDashboardStatsResponse converts domain dashboard stats to its DTO response.
// Alert dates use dd-mm, days overdue are counted against today.
func ToDashboardStatsResponse(stats *domain.DashboardStats, today time.Time) DashboardStatsResponse {
	response := DashboardStatsResponse{
		Alerts: make([]OverdueAlertResponse, len(stats.Alerts)),
	}
	response.Summary.Income = stats.Income
	response.Summary.Expense = stats.Expense
	response.Summary.COGS = stats.COGS
	response.Summary.NetProfit = stats.NetProfit

	for i, alert := range stats.Alerts {
		days := int(today.Sub(alert.DueDate).Hours() / 24)
		response.Alerts[i] = OverdueAlertResponse{
			Date:        alert.Date.Format("02-01"),
			Description: alert.Description,
			DaysOverdue: days,
		}
	}
	return response
}
