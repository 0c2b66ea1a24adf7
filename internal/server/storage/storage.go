// Package storage implements the blob store holding the raw bytes of
// uploaded files. Each backend keeps every user's artifacts in a dedicated
// namespace keyed by user id; nothing outside the file service is expected
// to touch these namespaces directly.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/avoronova/filecove/internal/filex"
	"github.com/google/uuid"
)

// BlobStore is the byte-storage contract shared by all backends.
type BlobStore interface {
	// Save streams r into the artifact storedName of user userID and returns
	// the number of bytes written. A failed write maps to
	// common.ErrWriteFailed and must not leave a readable artifact behind
	// under storedName.
	Save(ctx context.Context, userID, storedName string, r io.Reader) (int64, error)

	// Open returns a reader over the artifact, or common.ErrArtifactMissing.
	Open(ctx context.Context, userID, storedName string) (io.ReadCloser, error)

	// Remove deletes the artifact. An already absent artifact is success:
	// the goal is convergence to "no artifact", not precondition checking.
	Remove(ctx context.Context, userID, storedName string) error
}

// NewStoredName derives a collision-resistant storage-layer name for an
// upload. The user-supplied name contributes only a sanitized suffix; the
// timestamp and random component guarantee uniqueness within a user's
// namespace even for concurrent uploads of identically named files.
func NewStoredName(displayName string) string {
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixNano(), uuid.NewString(), filex.SanitizeName(displayName))
}
