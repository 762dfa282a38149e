package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryRow is a journal entry joined with its transaction header and account,
// flattened for report aggregation.
type EntryRow struct {
	Date          time.Time
	DueDate       *time.Time
	Description   string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
	SubLedgerName string
	AccountID     string
	AccountCode   string
	AccountName   string
	Category      AccountCategory
	NormalBalance NormalBalance
	ProductName   string
	Quantity      decimal.Decimal
}

// LedgerLine is a drill-down row of a general ledger account.
type LedgerLine struct {
	Date        time.Time
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// LedgerAccount groups the entries of one account with its period balance.
// The balance is signed by the account's normal balance side.
type LedgerAccount struct {
	AccountID     string
	Code          string
	Name          string
	Category      AccountCategory
	NormalBalance NormalBalance
	Balance       decimal.Decimal
	Entries       []LedgerLine
}

// SubLedgerLine is a drill-down row of an AP/AR sub-ledger.
type SubLedgerLine struct {
	Date        time.Time
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	DueDate     *time.Time
}

// SubLedger tracks a single counterparty's balance within payables or receivables.
type SubLedger struct {
	Balance decimal.Decimal
	Entries []SubLedgerLine
}

// MonthlySeries buckets income and expense totals by calendar month.
// Labels are YYYY-MM keys sorted ascending; the value slices are parallel.
type MonthlySeries struct {
	Labels  []string
	Income  []decimal.Decimal
	Expense []decimal.Decimal
}

// FinancialSummary aggregates income-statement and balance-sheet totals.
// Income, Expense and COGS cover the requested period; the balance-sheet
// totals cover everything up to the period end.
type FinancialSummary struct {
	Income    decimal.Decimal
	Expense   decimal.Decimal
	COGS      decimal.Decimal
	Asset     decimal.Decimal
	Liability decimal.Decimal
	Equity    decimal.Decimal
}

// FinancialReport is the full report: general ledger, AP/AR sub-ledgers
// keyed by counterparty name, summary totals, and the monthly chart.
type FinancialReport struct {
	Summary   FinancialSummary
	NetProfit decimal.Decimal
	Ledger    []LedgerAccount
	APLedger  map[string]SubLedger
	ARLedger  map[string]SubLedger
	Chart     MonthlySeries
}

// CategoryTotal is a per-category debit/credit aggregate used by the dashboard.
type CategoryTotal struct {
	Category AccountCategory
	Debit    decimal.Decimal
	Credit   decimal.Decimal
}

// OverdueAlert flags a transaction whose due date has passed.
type OverdueAlert struct {
	Date        time.Time
	Description string
	DueDate     time.Time
}

// DashboardStats holds the net income-statement totals for the dashboard
// window plus the oldest overdue transactions.
type DashboardStats struct {
	Income    decimal.Decimal
	Expense   decimal.Decimal
	COGS      decimal.Decimal
	NetProfit decimal.Decimal
	Alerts    []OverdueAlert
}
