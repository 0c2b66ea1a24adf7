package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avoronova/filecove/internal/common"
	"github.com/avoronova/filecove/internal/dbx"
	"github.com/avoronova/filecove/internal/server/models"
)

// PostgresRepository implements the file catalog over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, file *models.File) (*models.File, error) {
	query := `
		INSERT INTO files (user_id, stored_name, display_name, size, content_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, uploaded_at
	`
	err := r.db.QueryRowContext(ctx, query,
		file.UserID, file.StoredName, file.DisplayName, file.Size, file.ContentType).
		Scan(&file.ID, &file.UploadedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return file, nil
}

// ListByUser returns userID's records ordered by upload time descending,
// with id as a tiebreaker so the order is stable.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.File, error) {
	query := ` SELECT id, user_id, stored_name, display_name, size, content_type, uploaded_at FROM files
		WHERE user_id=$1
		ORDER BY uploaded_at DESC, id DESC
		`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	var result []*models.File
	for rows.Next() {
		var item models.File
		if err := rows.Scan(&item.ID, &item.UserID, &item.StoredName, &item.DisplayName,
			&item.Size, &item.ContentType, &item.UploadedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetOwned filters by both id and owner in one query. An existing record
// owned by someone else surfaces as ErrNotFound.
func (r *PostgresRepository) GetOwned(ctx context.Context, fileID, userID string) (*models.File, error) {
	query := ` SELECT id, user_id, stored_name, display_name, size, content_type, uploaded_at FROM files
		WHERE id=$1 AND user_id=$2
		`

	result := &models.File{}
	err := r.db.QueryRowContext(ctx, query, fileID, userID).Scan(
		&result.ID, &result.UserID, &result.StoredName, &result.DisplayName,
		&result.Size, &result.ContentType, &result.UploadedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// UpdateDisplayName changes the display name. Exactly one row must be
// affected; zero rows means the record vanished and maps to ErrNotFound.
func (r *PostgresRepository) UpdateDisplayName(ctx context.Context, fileID, name string) error {
	query := `UPDATE files SET display_name=$2 WHERE id=$1`
	result, err := r.db.ExecContext(ctx, query, fileID, name)
	if err != nil {
		return fmt.Errorf("failed to update display name: %w", err)
	}
	ra, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	if ra != 1 {
		return fmt.Errorf("unexpected rows affected: %d", ra)
	}
	return nil
}

// Delete removes the record. Deleting an already absent record is treated
// as success so concurrent deletes converge.
func (r *PostgresRepository) Delete(ctx context.Context, fileID string) error {
	query := `DELETE FROM files WHERE id=$1`
	result, err := r.db.ExecContext(ctx, query, fileID)
	if err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}
	ra, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra > 1 {
		return fmt.Errorf("unexpected rows affected: %d", ra)
	}
	return nil
}
