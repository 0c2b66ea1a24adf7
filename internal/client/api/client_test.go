package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronova/filecove/internal/common"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second)
}

func TestRegisterStoresToken(t *testing.T) {
	var sawAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/user/register":
			require.Equal(t, http.MethodPost, r.Method)

			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "alice", req["username"])

			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{
				"token": "tok-reg",
				"user":  map[string]string{"id": "u1", "username": "alice", "email": "a@example.com"},
			})
		case "/api/user/me":
			sawAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(map[string]string{"id": "u1", "username": "alice"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	user, err := c.Register(context.Background(), "alice", "a@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	// Registration leaves the session authenticated.
	_, err = c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-reg", sawAuth)
}

func TestRegisterConflict(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "username or email already taken"})
	})

	_, err := c.Register(context.Background(), "alice", "a@example.com", "secret1")
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestLoginStoresToken(t *testing.T) {
	var sawAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/user/login":
			json.NewEncoder(w).Encode(map[string]any{
				"token": "tok-123",
				"user":  map[string]string{"id": "u1", "username": "alice"},
			})
		case "/api/user/me":
			sawAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(map[string]string{"id": "u1", "username": "alice"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	user, err := c.Login(context.Background(), "a@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	_, err = c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", sawAuth)
}

func TestLoginUnauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	})

	_, err := c.Login(context.Background(), "a@example.com", "wrong")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestUpload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("payload"), 0o600))

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/files", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		files := r.MultipartForm.File["file"]
		require.Len(t, files, 1)
		assert.Equal(t, "doc.txt", files[0].Filename)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"files": []map[string]any{
				{"name": "doc.txt", "file": map[string]any{"id": "f1", "name": "doc.txt", "size": 7}},
			},
		})
	})

	results, err := c.Upload(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "f1", results[0].File.ID)
}

func TestUploadMissingLocalFile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request should not be sent")
	})

	_, err := c.Upload(context.Background(), []string{"/does/not/exist"})
	require.Error(t, err)
}

func TestList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"files": []map[string]any{
				{"id": "f2", "name": "b.txt", "size": 2},
				{"id": "f1", "name": "a.txt", "size": 1},
			},
		})
	})

	files, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "f2", files[0].ID)
}

func TestDownload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/files/f1/download", r.URL.Path)
		w.Header().Set("Content-Disposition", `attachment; filename="doc.txt"`)
		w.Write([]byte("payload"))
	})

	dir := t.TempDir()
	dest, err := c.Download(context.Background(), "f1", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
	assert.Equal(t, filepath.Join(dir, "doc.txt"), dest)
}

func TestDownloadNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Download(context.Background(), "ghost", t.TempDir())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRename(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/api/files/f1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"id": "f1", "name": "new.txt"})
	})

	f, err := c.Rename(context.Background(), "f1", "new.txt")
	require.NoError(t, err)
	assert.Equal(t, "new.txt", f.Name)
}

func TestDelete(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.Delete(context.Background(), "f1"))
}

func TestStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "OK"})
	})
	require.NoError(t, c.Status(context.Background()))
}
