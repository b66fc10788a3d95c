package domain

// User represents a registered user of the application.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never serialized
	AuditFields
}
