// Package patient owns patient accounts: registration, login, profile
// and the password reset flow.
package patient

import (
	"time"

	"github.com/google/uuid"
)

const Role = "patient"

type Patient struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	DateOfBirth  string    `json:"dateOfBirth"`
	Gender       string    `json:"gender"`
	Address      string    `json:"address"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AuthResult is returned by register and login: the identity fields a
// client needs plus a fresh bearer token.
type AuthResult struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
	Token    string    `json:"token"`
}
