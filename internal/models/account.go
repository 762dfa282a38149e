package models

import "github.com/ratbook/ratbook_backend/internal/core/domain"

// Account is the accounts table row.
type Account struct {
	AccountID     string                 `db:"account_id"`
	Code          string                 `db:"code"`
	Name          string                 `db:"name"`
	Category      domain.AccountCategory `db:"category"`
	NormalBalance domain.NormalBalance   `db:"normal_balance"`
	AuditFields
}

// ToDomain maps the row to its domain representation.
func (a Account) ToDomain() domain.Account {
	return domain.Account{
		AccountID:     a.AccountID,
		Code:          a.Code,
		Name:          a.Name,
		Category:      a.Category,
		NormalBalance: a.NormalBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     a.CreatedAt,
			CreatedBy:     a.CreatedBy,
			LastUpdatedAt: a.LastUpdatedAt,
			LastUpdatedBy: a.LastUpdatedBy,
		},
	}
}
