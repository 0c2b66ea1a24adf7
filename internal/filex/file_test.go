package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesDirectory(t *testing.T) {
	tmp := t.TempDir()

	want := filepath.Join(tmp, "blobs", "u1")
	got, err := EnsureDir(want)
	require.NoError(t, err)
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")
}

func TestEnsureDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()

	first, err := EnsureDir(filepath.Join(tmp, "blobs"))
	require.NoError(t, err)

	second, err := EnsureDir(filepath.Join(tmp, "blobs"))
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestEnsureDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()

	path := filepath.Join(tmp, "blobs")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o660))

	_, err := EnsureDir(path)
	require.Error(t, err, "should fail when a file exists with the same name")
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"notes.txt", "notes.txt"},
		{"../../etc/passwd", "passwd"},
		{"dir/sub/report.pdf", "report.pdf"},
		{"wéird näme!.png", "w_ird_n_me_.png"},
		{"..", "file"},
		{"", "file"},
		{"...", "file"},
		{"C:\\Users\\x\\doc.docx", "doc.docx"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, SanitizeName(tc.in), "input %q", tc.in)
	}
}
