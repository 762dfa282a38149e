package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind tags a transaction with its business meaning.
// Pembelian (purchase) and Penjualan (sale) drive inventory effects.
type TransactionKind string

const (
	KindPurchase TransactionKind = "Pembelian"
	KindSale     TransactionKind = "Penjualan"
	KindGeneral  TransactionKind = "Umum"
)

// IsValid reports whether k is a known transaction kind.
func (k TransactionKind) IsValid() bool {
	return k == KindPurchase || k == KindSale || k == KindGeneral
}

// Transaction is a financial event composed of journal entry lines.
// It owns its entries: deleting a transaction deletes its lines.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	Date          time.Time       `json:"date"`
	DueDate       *time.Time      `json:"dueDate"` // Nullable, used for AP/AR ageing
	Description   string          `json:"description"`
	Kind          TransactionKind `json:"type"`
	ProofFile     string          `json:"proof"` // Stored attachment file name, empty if none
	Entries       []JournalEntry  `json:"entries"`
	AuditFields
}

// JournalEntry is a single debit/credit line of a transaction.
// Exactly one of Debit/Credit is expected to be nonzero per normal
// accounting practice, but this is not enforced.
type JournalEntry struct {
	EntryID       string          `json:"entryID"`   // Primary Key (UUID)
	TransactionID string          `json:"-"`         // FK -> Transaction (Not Null)
	AccountID     string          `json:"accountID"` // FK -> Account (Not Null)
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	SubLedgerName string          `json:"subName"`   // Counterparty for AP/AR sub-ledgers, empty if none
	ProductID     string          `json:"productID"` // Nullable FK -> Product
	Quantity      decimal.Decimal `json:"qty"`

	// Denormalized read-side fields populated by repository joins.
	AccountCode     string          `json:"accountCode,omitempty"`
	AccountName     string          `json:"accountName,omitempty"`
	AccountCategory AccountCategory `json:"accountCategory,omitempty"`
	ProductName     string          `json:"productName,omitempty"`
}
