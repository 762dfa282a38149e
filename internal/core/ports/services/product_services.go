package services

import (
	"context"

	"github.com/ratbook/ratbook_backend/internal/core/domain"
	"github.com/ratbook/ratbook_backend/internal/dto"
)

// ProductReaderSvc defines read operations for product data
type ProductReaderSvc interface {
	// GetProductByID retrieves a specific product by its unique identifier.
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts retrieves all products ordered by name.
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// ProductWriterSvc defines write operations for product data
type ProductWriterSvc interface {
	// CreateProduct persists a new product.
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error)

	// UpdateProduct updates an existing product's details.
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error)

	// DeleteProduct removes a product.
	DeleteProduct(ctx context.Context, productID string) error
}

// ProductSvcFacade combines all product-related service interfaces
type ProductSvcFacade interface {
	ProductReaderSvc
	ProductWriterSvc
}
