// Package users persists account records and enforces username/email
// uniqueness at the storage layer.
package users

import (
	"context"

	"github.com/avoronova/filecove/internal/server/models"
)

// Repository is the persistence contract for user accounts.
type Repository interface {
	// Create inserts a new user and fills in the generated ID and creation
	// time. A username or email collision yields common.ErrConflict, also
	// when the collision is produced by a concurrent insert.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user with the given email or common.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the user with the given id or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
