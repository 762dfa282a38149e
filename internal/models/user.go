package models

import "github.com/ratbook/ratbook_backend/internal/core/domain"

// User is the users table row.
type User struct {
	UserID       string `db:"user_id"`
	Email        string `db:"email"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	AuditFields
}

// ToDomain maps the row to its domain representation.
func (u User) ToDomain() domain.User {
	return domain.User{
		UserID:       u.UserID,
		Email:        u.Email,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		AuditFields: domain.AuditFields{
			CreatedAt:     u.CreatedAt,
			CreatedBy:     u.CreatedBy,
			LastUpdatedAt: u.LastUpdatedAt,
			LastUpdatedBy: u.LastUpdatedBy,
		},
	}
}
