package models

// User represents a registered course participant
type User struct {
	ID           string `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Institution  string `json:"institution" db:"institution"`
	Phone        string `json:"phone" db:"phone"`
	Role         string `json:"role" db:"role"` // Display role, e.g. "Teacher"
	IsAdmin      bool   `json:"is_admin" db:"is_admin"`
	CreatedAt    string `json:"created_at" db:"created_at"`
	UpdatedAt    string `json:"updated_at" db:"updated_at"`
}
