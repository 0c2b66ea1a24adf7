package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avoronova/filecove/internal/common"
	"github.com/stretchr/testify/require"
)

func newDiskStore(t *testing.T) *DiskStore {
	t.Helper()
	s, err := NewDiskStore(filepath.Join(t.TempDir(), "blobs"))
	require.NoError(t, err)
	return s
}

func TestDiskStore_SaveAndOpenRoundTrip(t *testing.T) {
	s := newDiskStore(t)
	ctx := context.Background()

	content := []byte("hello, artifact")
	n, err := s.Save(ctx, "u1", "sn1", bytes.NewReader(content))
	require.NoError(t, err)
	require.Equal(t, int64(len(content)), n)

	rc, err := s.Open(ctx, "u1", "sn1")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, content, got)
}

func TestDiskStore_UserNamespacesAreIsolated(t *testing.T) {
	s := newDiskStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, "u1", "sn1", strings.NewReader("alice's bytes"))
	require.NoError(t, err)

	_, err = s.Open(ctx, "u2", "sn1")
	require.ErrorIs(t, err, common.ErrArtifactMissing)
}

func TestDiskStore_OpenMissing(t *testing.T) {
	s := newDiskStore(t)

	_, err := s.Open(context.Background(), "u1", "never-stored")
	require.ErrorIs(t, err, common.ErrArtifactMissing)
}

func TestDiskStore_RemoveIsIdempotent(t *testing.T) {
	s := newDiskStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, "u1", "sn1", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, "u1", "sn1"))
	require.NoError(t, s.Remove(ctx, "u1", "sn1"), "second remove must succeed")

	_, err = s.Open(ctx, "u1", "sn1")
	require.ErrorIs(t, err, common.ErrArtifactMissing)
}

func TestDiskStore_FailedWriteLeavesNoArtifact(t *testing.T) {
	s := newDiskStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, "u1", "sn1", &failingReader{})
	require.ErrorIs(t, err, common.ErrWriteFailed)

	_, err = s.Open(ctx, "u1", "sn1")
	require.ErrorIs(t, err, common.ErrArtifactMissing)

	// no temp leftovers either
	entries, err := os.ReadDir(filepath.Join(s.root, "u1"))
	require.NoError(t, err)
	require.Empty(t, entries)
}

type failingReader struct{}

func (r *failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("source broke")
}

func TestNewStoredName_UniqueAndSanitized(t *testing.T) {
	a := NewStoredName("notes.txt")
	b := NewStoredName("notes.txt")
	require.NotEqual(t, a, b, "two uploads of the same name must not collide")
	require.True(t, strings.HasSuffix(a, "-notes.txt"), "stored name keeps sanitized suffix: %s", a)

	c := NewStoredName("../../etc/passwd")
	require.NotContains(t, c, "/")
	require.NotContains(t, c, "..")
}
