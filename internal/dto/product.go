package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ratbook/ratbook_backend/internal/core/domain"
)

// CreateProductRequest defines the data needed to create a new product.
type CreateProductRequest struct {
	Code     string          `json:"code" binding:"required"`
	Name     string          `json:"name" binding:"required"`
	Quantity decimal.Decimal `json:"quantity"`
	AvgCost  decimal.Decimal `json:"avgCost"`
}

// UpdateProductRequest defines the data allowed for updating a product.
// Direct quantity and cost edits are permitted.
type UpdateProductRequest struct {
	Code     *string          `json:"code"`
	Name     *string          `json:"name"`
	Quantity *decimal.Decimal `json:"quantity"`
	AvgCost  *decimal.Decimal `json:"avgCost"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID     string          `json:"productID"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	AvgCost       decimal.Decimal `json:"avgCost"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToProductResponse converts a domain.Product to ProductResponse.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:     p.ProductID,
		Code:          p.Code,
		Name:          p.Name,
		Quantity:      p.Quantity,
		AvgCost:       p.AvgCost,
		TotalValue:    p.TotalValue(),
		CreatedAt:     p.CreatedAt,
		LastUpdatedAt: p.LastUpdatedAt,
	}
}

// ToListProductResponse converts a slice of domain.Product to response DTOs.
func ToListProductResponse(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i := range products {
		res[i] = ToProductResponse(&products[i])
	}
	return res
}

// ListProductsResponse wraps the list of products.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
}
