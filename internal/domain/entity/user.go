// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing one account that owns
// emergency contacts and alerts.
type User struct {
	ID           uuid.UUID  `json:"id"`         // The Global Unique Identifier (GUID) for the user.
	Name         string     `json:"name"`       // The user's display name.
	Email        string     `json:"email"`      // The user's unique email, used as the login identifier.
	Phone        string     `json:"phone"`      // The user's unique phone number.
	PasswordHash string     `json:"-"`          // Bcrypt hash of the password. Never serialized.
	IsActive     bool       `json:"is_active"`  // Accounts are deactivated, never hard-deleted.
	LastLogin    *time.Time `json:"last_login"` // Set on every successful login.
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
