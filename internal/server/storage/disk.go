package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/avoronova/filecove/internal/common"
	"github.com/avoronova/filecove/internal/filex"
)

// DiskStore keeps artifacts on the local filesystem under
// <root>/<userID>/<storedName>. User directories are created lazily on the
// first write.
type DiskStore struct {
	root string
}

// NewDiskStore ensures the root directory exists and returns a store
// rooted there.
func NewDiskStore(root string) (*DiskStore, error) {
	abs, err := filex.EnsureDir(root)
	if err != nil {
		return nil, err
	}
	return &DiskStore{root: abs}, nil
}

func (s *DiskStore) userDir(userID string) (string, error) {
	return filex.EnsureDir(filepath.Join(s.root, userID))
}

// Save writes to a temp file in the user's directory and renames it into
// place, so a failed or interrupted write never leaves a partial artifact
// under its final name.
func (s *DiskStore) Save(ctx context.Context, userID, storedName string, r io.Reader) (int64, error) {
	dir, err := s.userDir(userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrWriteFailed, err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrWriteFailed, err)
	}

	n, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return 0, fmt.Errorf("%w: %v", common.ErrWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return 0, fmt.Errorf("%w: %v", common.ErrWriteFailed, err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(dir, storedName)); err != nil {
		_ = os.Remove(tmp.Name())
		return 0, fmt.Errorf("%w: %v", common.ErrWriteFailed, err)
	}

	return n, nil
}

func (s *DiskStore) Open(ctx context.Context, userID, storedName string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.root, userID, storedName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.ErrArtifactMissing
		}
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	return f, nil
}

func (s *DiskStore) Remove(ctx context.Context, userID, storedName string) error {
	err := os.Remove(filepath.Join(s.root, userID, storedName))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove artifact: %w", err)
	}
	return nil
}
