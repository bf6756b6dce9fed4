// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user in the Expense Tracker system.
type User struct {
	ID              uuid.UUID
	Username        string
	Email           string
	FullName        string
	PasswordHash    string
	EmailVerified   bool
	EmailVerifiedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewUser creates a new User with default values. Email verification is
// pending until the verification link is followed.
func NewUser(username, email, fullName, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// MarkEmailVerified records a successful email verification.
func (u *User) MarkEmailVerified(at time.Time) {
	u.EmailVerified = true
	verifiedAt := at.UTC()
	u.EmailVerifiedAt = &verifiedAt
	u.UpdatedAt = verifiedAt
}
