package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/ratbook/ratbook_backend/internal/core/domain"
)

// ProductReader defines read operations for product data
type ProductReader interface {
	// FindProductByID retrieves a specific product by its unique identifier.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts retrieves all products ordered by name.
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// ProductWriter defines write operations for product data
type ProductWriter interface {
	// SaveProduct persists a new product.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct updates an existing product's details, including
	// direct quantity and cost edits.
	UpdateProduct(ctx context.Context, product domain.Product) error

	// DeleteProduct removes a product.
	DeleteProduct(ctx context.Context, productID string) error
}

// ProductTransactionSupport defines operations used inside a posting transaction
type ProductTransactionSupport interface {
	// FindProductsByIDsForUpdate selects products and locks them for update
	// within the given transaction.
	FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.Product, error)

	// UpdateProductBalancesInTx applies new quantity and average cost values
	// to multiple products within the given transaction.
	UpdateProductBalancesInTx(ctx context.Context, tx pgx.Tx, products []domain.Product) error
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
	ProductTransactionSupport
}
