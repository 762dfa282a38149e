package services

import (
	"context"
	"time"

	"github.com/ratbook/ratbook_backend/internal/core/domain"
	"github.com/ratbook/ratbook_backend/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction with its entries.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a date-filtered, newest-first page of
	// transactions using token-based pagination.
	ListTransactions(ctx context.Context, start, end *time.Time, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriterSvc defines write operations for transaction data
type TransactionWriterSvc interface {
	// CreateTransaction posts a transaction: it persists the header and
	// entries and applies the inventory effects of purchase and sale lines,
	// all atomically.
	CreateTransaction(ctx context.Context, req CreateTransactionData, userID string) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction and its entries. Product
	// balances are not re-adjusted.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// CreateTransactionData carries the parsed posting request into the service.
type CreateTransactionData struct {
	Date        time.Time
	DueDate     *time.Time
	Description string
	Kind        domain.TransactionKind
	ProofFile   string
	Lines       []dto.EntryLine
	Inventory   []dto.InventoryHint
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
