package dto

import (
	"time"

	"github.com/ratbook/ratbook_backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code          string                 `json:"code" binding:"required"`
	Name          string                 `json:"name" binding:"required"`
	Category      domain.AccountCategory `json:"category" binding:"required,accountCategory"`
	NormalBalance domain.NormalBalance   `json:"normalBalance" binding:"required,oneof=debit credit"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Pointers distinguish fields not provided from zero-value updates.
type UpdateAccountRequest struct {
	Code          *string                 `json:"code"`
	Name          *string                 `json:"name"`
	Category      *domain.AccountCategory `json:"category" binding:"omitempty,accountCategory"`
	NormalBalance *domain.NormalBalance   `json:"normalBalance" binding:"omitempty,oneof=debit credit"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string                 `json:"accountID"`
	Code          string                 `json:"code"`
	Name          string                 `json:"name"`
	Category      domain.AccountCategory `json:"category"`
	NormalBalance domain.NormalBalance   `json:"normalBalance"`
	CreatedAt     time.Time              `json:"createdAt"`
	LastUpdatedAt time.Time              `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Code:          acc.Code,
		Name:          acc.Name,
		Category:      acc.Category,
		NormalBalance: acc.NormalBalance,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
