// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// UncategorizedName is the sentinel label used when an expense references a
// category that no longer exists (or never had one). Report aggregation
// groups such expenses under this name instead of failing.
const UncategorizedName = "Uncategorized"

// MaxCategoryNameLength is the maximum allowed length for category names.
const MaxCategoryNameLength = 50

// Category represents an expense category in the Expense Tracker system.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	IsDefault bool // Default categories are seeded at registration and cannot be deleted
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewCategory creates a new Category entity.
func NewCategory(userID uuid.UUID, name string, isDefault bool) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		IsDefault: isDefault,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DefaultCategoryNames are the categories seeded for every new user.
var DefaultCategoryNames = []string{
	"Food",
	"Transport",
	"Housing",
	"Utilities",
	"Entertainment",
	"Health",
	"Shopping",
	"Other",
}
