// Package files persists the catalog of uploaded file records. Every read
// used before a mutating or content-revealing operation goes through
// GetOwned, so a file id of another user is indistinguishable from a
// missing one.
package files

import (
	"context"

	"github.com/avoronova/filecove/internal/server/models"
)

// Repository is the persistence contract for file records.
type Repository interface {
	// Create inserts a record and fills in the generated ID and upload time.
	Create(ctx context.Context, file *models.File) (*models.File, error)

	// ListByUser returns all records owned by userID, newest first.
	ListByUser(ctx context.Context, userID string) ([]*models.File, error)

	// GetOwned returns the record only when it exists AND belongs to userID;
	// otherwise common.ErrNotFound.
	GetOwned(ctx context.Context, fileID, userID string) (*models.File, error)

	// UpdateDisplayName changes the user-visible name of a record.
	UpdateDisplayName(ctx context.Context, fileID, name string) error

	// Delete removes the record by id.
	Delete(ctx context.Context, fileID string) error
}
