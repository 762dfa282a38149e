package repositories

import (
	"context"
	"time"

	"github.com/ratbook/ratbook_backend/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction header with its entries.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a date-filtered, newest-first page of
	// transactions with their entries using token-based pagination.
	// It returns the transactions, a token for the next page, and an error.
	ListTransactions(ctx context.Context, start, end *time.Time, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction persists a transaction header, its journal entries and
	// the resulting product balance updates atomically in one database
	// transaction. Any failure rolls back everything.
	SaveTransaction(ctx context.Context, txn domain.Transaction, products []domain.Product) error

	// DeleteTransaction removes a transaction's entries then its header in
	// one database transaction. Product balances are left untouched.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
