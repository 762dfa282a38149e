package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ratbook/ratbook_backend/internal/core/domain"
)

// CreateTransactionForm binds the multipart fields of a posting request.
// The proof file is read from the form separately by the handler.
type CreateTransactionForm struct {
	Date          string `form:"date" binding:"required"`
	DueDate       string `form:"due_date"`
	Description   string `form:"description" binding:"required"`
	Kind          string `form:"type" binding:"required,transactionKind"`
	LinesJSON     string `form:"lines_json" binding:"required"`
	InventoryJSON string `form:"inventory_json"`
}

// EntryLine is one journal line as sent by the client inside lines_json.
type EntryLine struct {
	AccountID     string          `json:"accountId" binding:"required"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	SubLedgerName string          `json:"subName"`
	ProductID     string          `json:"productId"`
	Quantity      decimal.Decimal `json:"qty"`
}

// InventoryHint is the client-computed line total for a product, sent inside
// inventory_json. The purchase costing uses this total, not debit or credit.
type InventoryHint struct {
	ProductID string          `json:"product_id" binding:"required"`
	Total     decimal.Decimal `json:"total"`
}

// JournalEntryResponse defines the data returned for one transaction line.
type JournalEntryResponse struct {
	EntryID         string                 `json:"entryID"`
	AccountID       string                 `json:"accountID"`
	AccountCode     string                 `json:"accountCode"`
	AccountName     string                 `json:"accountName"`
	AccountCategory domain.AccountCategory `json:"accountCategory"`
	Debit           decimal.Decimal        `json:"debit"`
	Credit          decimal.Decimal        `json:"credit"`
	SubLedgerName   string                 `json:"subLedgerName,omitempty"`
	ProductID       string                 `json:"productID,omitempty"`
	ProductName     string                 `json:"productName,omitempty"`
	Quantity        decimal.Decimal        `json:"quantity"`
}

// TransactionResponse defines the data returned for a transaction and its lines.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	Date          time.Time              `json:"date"`
	DueDate       *time.Time             `json:"dueDate,omitempty"`
	Description   string                 `json:"description"`
	Kind          domain.TransactionKind `json:"type"`
	ProofFile     string                 `json:"proofFile,omitempty"`
	Entries       []JournalEntryResponse `json:"entries"`
	CreatedAt     time.Time              `json:"createdAt"`
	CreatedBy     string                 `json:"createdBy"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	StartDate string `form:"start"`
	EndDate   string `form:"end"`
	Limit     int    `form:"limit,default=50"`
	NextToken string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions with a cursor.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    string                `json:"nextToken,omitempty"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:         e.EntryID,
		AccountID:       e.AccountID,
		AccountCode:     e.AccountCode,
		AccountName:     e.AccountName,
		AccountCategory: e.AccountCategory,
		Debit:           e.Debit,
		Credit:          e.Credit,
		SubLedgerName:   e.SubLedgerName,
		ProductID:       e.ProductID,
		ProductName:     e.ProductName,
		Quantity:        e.Quantity,
	}
}

// ToTransactionResponse converts a domain.Transaction with its entries to a DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	entries := make([]JournalEntryResponse, len(txn.Entries))
	for i := range txn.Entries {
		entries[i] = ToJournalEntryResponse(&txn.Entries[i])
	}
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Date:          txn.Date,
		DueDate:       txn.DueDate,
		Description:   txn.Description,
		Kind:          txn.Kind,
		ProofFile:     txn.ProofFile,
		Entries:       entries,
		CreatedAt:     txn.CreatedAt,
		CreatedBy:     txn.CreatedBy,
	}
}

// ToListTransactionsResponse converts a page of transactions plus cursor to a DTO.
func ToListTransactionsResponse(txns []domain.Transaction, nextToken string) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return ListTransactionsResponse{Transactions: res, NextToken: nextToken}
}
