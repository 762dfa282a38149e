package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ratbook/ratbook_backend/internal/core/domain"
)

// Transaction is the transactions table row, the header of a journal.
type Transaction struct {
	TransactionID string                 `db:"transaction_id"`
	Date          time.Time              `db:"date"`
	DueDate       *time.Time             `db:"due_date"`
	Description   string                 `db:"description"`
	Kind          domain.TransactionKind `db:"kind"`
	ProofFile     string                 `db:"proof_file"`
	AuditFields
}

// JournalEntry is the journal_entries table row, one line of a transaction.
// The Account* and ProductName fields are populated only by joined reads.
type JournalEntry struct {
	EntryID       string          `db:"entry_id"`
	TransactionID string          `db:"transaction_id"`
	AccountID     string          `db:"account_id"`
	Debit         decimal.Decimal `db:"debit"`
	Credit        decimal.Decimal `db:"credit"`
	SubLedgerName string          `db:"sub_ledger_name"`
	ProductID     string          `db:"product_id"`
	Quantity      decimal.Decimal `db:"quantity"`
	AuditFields

	AccountCode     string                 `db:"account_code"`
	AccountName     string                 `db:"account_name"`
	AccountCategory domain.AccountCategory `db:"account_category"`
	ProductName     string                 `db:"product_name"`
}

// ToDomain maps the header row to its domain representation without entries.
func (t Transaction) ToDomain() domain.Transaction {
	return domain.Transaction{
		TransactionID: t.TransactionID,
		Date:          t.Date,
		DueDate:       t.DueDate,
		Description:   t.Description,
		Kind:          t.Kind,
		ProofFile:     t.ProofFile,
		AuditFields: domain.AuditFields{
			CreatedAt:     t.CreatedAt,
			CreatedBy:     t.CreatedBy,
			LastUpdatedAt: t.LastUpdatedAt,
			LastUpdatedBy: t.LastUpdatedBy,
		},
	}
}

// ToDomain maps the entry row to its domain representation.
func (e JournalEntry) ToDomain() domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:         e.EntryID,
		TransactionID:   e.TransactionID,
		AccountID:       e.AccountID,
		Debit:           e.Debit,
		Credit:          e.Credit,
		SubLedgerName:   e.SubLedgerName,
		ProductID:       e.ProductID,
		Quantity:        e.Quantity,
		AccountCode:     e.AccountCode,
		AccountName:     e.AccountName,
		AccountCategory: e.AccountCategory,
		ProductName:     e.ProductName,
	}
}
