package domain

// User represents an authenticated user of the system.
type User struct {
	UserID       string
	Email        string
	Username     string
	PasswordHash string
	AuditFields
}
