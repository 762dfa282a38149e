package models

import (
	"github.com/shopspring/decimal"

	"github.com/ratbook/ratbook_backend/internal/core/domain"
)

// Product is the products table row.
type Product struct {
	ProductID string          `db:"product_id"`
	Code      string          `db:"code"`
	Name      string          `db:"name"`
	Quantity  decimal.Decimal `db:"quantity"`
	AvgCost   decimal.Decimal `db:"avg_cost"`
	AuditFields
}

// ToDomain maps the row to its domain representation.
func (p Product) ToDomain() domain.Product {
	return domain.Product{
		ProductID: p.ProductID,
		Code:      p.Code,
		Name:      p.Name,
		Quantity:  p.Quantity,
		AvgCost:   p.AvgCost,
		AuditFields: domain.AuditFields{
			CreatedAt:     p.CreatedAt,
			CreatedBy:     p.CreatedBy,
			LastUpdatedAt: p.LastUpdatedAt,
			LastUpdatedBy: p.LastUpdatedBy,
		},
	}
}
