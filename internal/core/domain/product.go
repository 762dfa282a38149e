package domain

import "github.com/shopspring/decimal"

// Product represents an inventory item valued at weighted-average cost.
// Quantity and AvgCost are normally mutated only by transaction posting,
// though direct edits via update are permitted.
type Product struct {
	ProductID string          `json:"productID"` // Primary Key (UUID)
	Code      string          `json:"code"`      // Unique user-facing code
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"qty"`
	AvgCost   decimal.Decimal `json:"avgCost"`
	AuditFields
}

// TotalValue returns the inventory value of the product on hand.
func (p Product) TotalValue() decimal.Decimal {
	return p.Quantity.Mul(p.AvgCost)
}
