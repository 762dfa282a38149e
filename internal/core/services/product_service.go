package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ratbook/ratbook_backend/internal/apperrors"
	"github.com/ratbook/ratbook_backend/internal/core/domain"
	portsrepo "github.com/ratbook/ratbook_backend/internal/core/ports/repositories"
	portssvc "github.com/ratbook/ratbook_backend/internal/core/ports/services"
	"github.com/ratbook/ratbook_backend/internal/dto"
)

type productService struct {
	BaseService
	productRepo portsrepo.ProductRepositoryFacade
}

// NewProductService creates the service handling the product catalog.
func NewProductService(repo portsrepo.ProductRepositoryFacade) portssvc.ProductSvcFacade {
	return &productService{productRepo: repo}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error) {
	now := time.Now()
	product := domain.Product{
		ProductID: uuid.NewString(),
		Code:      req.Code,
		Name:      req.Name,
		Quantity:  req.Quantity,
		AvgCost:   req.AvgCost,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save product in repository", slog.String("product_id", product.ProductID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Product created", slog.String("product_id", product.ProductID), slog.String("code", product.Code))
	return &product, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find product by ID in repository", slog.String("product_id", productID))
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list products from repository")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		return []domain.Product{}, nil
	}
	return products, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		product.Code = *req.Code
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}
	if req.AvgCost != nil {
		product.AvgCost = *req.AvgCost
	}
	product.LastUpdatedAt = time.Now()
	product.LastUpdatedBy = userID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to update product in repository", slog.String("product_id", productID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Product updated", slog.String("product_id", productID))
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID string) error {
	if err := s.productRepo.DeleteProduct(ctx, productID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to delete product in repository", slog.String("product_id", productID))
		}
		return err
	}

	s.LogInfo(ctx, "Product deleted", slog.String("product_id", productID))
	return nil
}
