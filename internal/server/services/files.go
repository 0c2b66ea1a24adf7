package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/avoronova/filecove/internal/common"
	"github.com/avoronova/filecove/internal/logging"
	"github.com/avoronova/filecove/internal/server/config"
	"github.com/avoronova/filecove/internal/server/models"
	"github.com/avoronova/filecove/internal/server/repositories/repomanager"
	"github.com/avoronova/filecove/internal/server/storage"
)

// Upload is one file of an upload batch.
type Upload struct {
	Name        string
	ContentType string
	Data        io.Reader
}

// UploadResult is the per-file outcome of an upload batch. Exactly one of
// File and Err is set.
type UploadResult struct {
	Name string
	File *models.File
	Err  error
}

// FileService implements the user-scoped file catalog: uploads, listing,
// download, rename and delete. Catalog records live in the database, the
// bytes in a BlobStore, and every operation is bounded by the owner's
// namespace.
type FileService struct {
	db               *sql.DB
	repomanager      repomanager.RepositoryManager
	blobs            storage.BlobStore
	logger           logging.Logger
	maxUploadSize    int64
	maxFilesPerBatch int
}

// NewFileService constructs a FileService over the given repositories and
// blob store.
func NewFileService(db *sql.DB, m repomanager.RepositoryManager, blobs storage.BlobStore, cfg *config.Config, logger logging.Logger) *FileService {
	return &FileService{
		db:               db,
		repomanager:      m,
		blobs:            blobs,
		logger:           logger,
		maxUploadSize:    cfg.MaxUploadSize,
		maxFilesPerBatch: cfg.MaxFilesPerBatch,
	}
}

// Upload stores a batch of files for userID. The batch as a whole is
// validated first; after that each file succeeds or fails on its own, and
// the per-file outcomes come back in order. A file that fails after its
// bytes were written has the orphaned artifact removed again, so a failed
// upload never leaves content behind.
func (s *FileService) Upload(ctx context.Context, userID string, uploads []Upload) ([]UploadResult, error) {
	if len(uploads) == 0 {
		return nil, fmt.Errorf("%w: no files in request", common.ErrValidation)
	}
	if len(uploads) > s.maxFilesPerBatch {
		return nil, fmt.Errorf("%w: at most %d files per request", common.ErrValidation, s.maxFilesPerBatch)
	}

	results := make([]UploadResult, 0, len(uploads))
	for _, u := range uploads {
		f, err := s.uploadOne(ctx, userID, u)
		results = append(results, UploadResult{Name: u.Name, File: f, Err: err})
	}
	return results, nil
}

func (s *FileService) uploadOne(ctx context.Context, userID string, u Upload) (*models.File, error) {
	storedName := storage.NewStoredName(u.Name)

	// Read one byte past the limit so an oversized body is detected without
	// buffering more than maxUploadSize+1 bytes.
	size, err := s.blobs.Save(ctx, userID, storedName, io.LimitReader(u.Data, s.maxUploadSize+1))
	if err != nil {
		s.logger.Error(ctx, "artifact write failed", "user_id", userID, "name", u.Name, "error", err)
		return nil, common.ErrWriteFailed
	}
	if size > s.maxUploadSize {
		s.removeArtifact(ctx, userID, storedName)
		return nil, fmt.Errorf("%w: file exceeds %d bytes", common.ErrValidation, s.maxUploadSize)
	}

	file := &models.File{
		UserID:      userID,
		StoredName:  storedName,
		DisplayName: u.Name,
		Size:        size,
		ContentType: u.ContentType,
	}

	repo := s.repomanager.Files(s.db)
	created, err := repo.Create(ctx, file)
	if err != nil {
		// The artifact exists but the catalog insert failed; remove the
		// artifact so the two stores stay consistent.
		s.removeArtifact(ctx, userID, storedName)
		return nil, fmt.Errorf("error creating file record: %v", err)
	}
	return created, nil
}

// List returns the user's catalog, newest first.
func (s *FileService) List(ctx context.Context, userID string) ([]*models.File, error) {
	repo := s.repomanager.Files(s.db)
	files, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing files: %v", err)
	}
	return files, nil
}

// Download returns the catalog record and a reader over its bytes. A file
// owned by someone else is reported exactly like a missing one. A catalog
// record whose artifact has gone missing is logged and also reported as
// common.ErrNotFound.
func (s *FileService) Download(ctx context.Context, userID, fileID string) (*models.File, io.ReadCloser, error) {
	repo := s.repomanager.Files(s.db)
	file, err := repo.GetOwned(ctx, fileID, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, common.ErrNotFound
		}
		return nil, nil, fmt.Errorf("error getting file: %v", err)
	}

	rc, err := s.blobs.Open(ctx, userID, file.StoredName)
	if err != nil {
		if errors.Is(err, common.ErrArtifactMissing) {
			s.logger.Error(ctx, "catalog record without artifact",
				"user_id", userID, "file_id", fileID, "stored_name", file.StoredName)
			return nil, nil, common.ErrNotFound
		}
		return nil, nil, fmt.Errorf("error opening artifact: %v", err)
	}
	return file, rc, nil
}

// Rename changes the user-visible name of an owned file. The stored artifact
// and its key are untouched.
func (s *FileService) Rename(ctx context.Context, userID, fileID, newName string) (*models.File, error) {
	if newName == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrValidation)
	}

	repo := s.repomanager.Files(s.db)
	file, err := repo.GetOwned(ctx, fileID, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error getting file: %v", err)
	}

	if err := repo.UpdateDisplayName(ctx, fileID, newName); err != nil {
		// The row can vanish between GetOwned and the update.
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error renaming file: %v", err)
	}

	file.DisplayName = newName
	return file, nil
}

// Delete removes an owned file. The catalog record always goes; a failure
// to remove the artifact is logged but does not fail the operation, leaving
// at worst an orphaned artifact rather than a phantom catalog entry.
func (s *FileService) Delete(ctx context.Context, userID, fileID string) error {
	repo := s.repomanager.Files(s.db)
	file, err := repo.GetOwned(ctx, fileID, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("error getting file: %v", err)
	}

	s.removeArtifact(ctx, userID, file.StoredName)

	if err := repo.Delete(ctx, fileID); err != nil {
		return fmt.Errorf("error deleting file record: %v", err)
	}
	return nil
}

func (s *FileService) removeArtifact(ctx context.Context, userID, storedName string) {
	if err := s.blobs.Remove(ctx, userID, storedName); err != nil {
		s.logger.Warn(ctx, "artifact remove failed",
			"user_id", userID, "stored_name", storedName, "error", err)
	}
}
