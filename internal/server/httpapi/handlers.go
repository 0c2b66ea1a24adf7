package httpapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avoronova/filecove/internal/common"
	"github.com/avoronova/filecove/internal/server/models"
	"github.com/avoronova/filecove/internal/server/services"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type renameRequest struct {
	Name string `json:"name"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type fileResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type uploadItemResponse struct {
	Name  string        `json:"name"`
	File  *fileResponse `json:"file,omitempty"`
	Error string        `json:"error,omitempty"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}

func toFileResponse(f *models.File) *fileResponse {
	return &fileResponse{
		ID:          f.ID,
		Name:        f.DisplayName,
		Size:        f.Size,
		ContentType: f.ContentType,
		UploadedAt:  f.UploadedAt,
	}
}

// writeError maps service errors to HTTP statuses. Internal details never
// leak to the client; validation messages do, since they describe the
// client's own input.
func (s *HTTPServer) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "username or email already taken"})
	case errors.Is(err, common.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
	default:
		s.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (s *HTTPServer) status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (s *HTTPServer) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s.logger.Info(c.Request.Context(), "Registration request", "username", req.Username)

	token, user, err := s.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Registered", "username", user.Username)
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": toUserResponse(user)})
}

func (s *HTTPServer) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, user, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": toUserResponse(user)})
}

func (s *HTTPServer) me(c *gin.Context) {
	id := currentIdentity(c)

	user, err := s.users.GetCurrentUser(c.Request.Context(), id.UserID)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// upload reads the multipart request part by part. Parts must be consumed
// in order, so each file is drained into a buffer bounded by the per-file
// size cap before the whole batch goes to the service in one call.
func (s *HTTPServer) upload(c *gin.Context) {
	id := currentIdentity(c)

	reader, err := c.Request.MultipartReader()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form expected"})
		return
	}

	var uploads []services.Upload
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed multipart body"})
			return
		}
		// Parts without a filename carry no usable name for the catalog.
		if part.FormName() != "file" || part.FileName() == "" {
			part.Close()
			continue
		}

		// Reject an oversized batch before buffering more parts; nothing
		// has been handed to the service yet.
		if len(uploads) == s.maxFilesPerBatch {
			part.Close()
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("at most %d files per request", s.maxFilesPerBatch)})
			return
		}

		var buf bytes.Buffer
		_, err = io.Copy(&buf, io.LimitReader(part, s.maxUploadSize+1))
		part.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed multipart body"})
			return
		}

		uploads = append(uploads, services.Upload{
			Name:        part.FileName(),
			ContentType: part.Header.Get("Content-Type"),
			Data:        &buf,
		})
	}

	results, err := s.files.Upload(c.Request.Context(), id.UserID, uploads)
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]uploadItemResponse, 0, len(results))
	for _, r := range results {
		item := uploadItemResponse{Name: r.Name}
		if r.Err != nil {
			if errors.Is(r.Err, common.ErrValidation) {
				item.Error = r.Err.Error()
			} else {
				item.Error = "upload failed"
			}
		} else {
			item.File = toFileResponse(r.File)
		}
		out = append(out, item)
	}
	c.JSON(http.StatusCreated, gin.H{"files": out})
}

func (s *HTTPServer) list(c *gin.Context) {
	id := currentIdentity(c)

	files, err := s.files.List(c.Request.Context(), id.UserID)
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]*fileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, toFileResponse(f))
	}
	c.JSON(http.StatusOK, gin.H{"files": out})
}

func (s *HTTPServer) download(c *gin.Context) {
	id := currentIdentity(c)

	file, rc, err := s.files.Download(c.Request.Context(), id.UserID, c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	defer rc.Close()

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": file.DisplayName})
	c.DataFromReader(http.StatusOK, file.Size, contentType, rc, map[string]string{
		"Content-Disposition": disposition,
	})
}

func (s *HTTPServer) rename(c *gin.Context) {
	id := currentIdentity(c)

	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	file, err := s.files.Rename(c.Request.Context(), id.UserID, c.Param("id"), strings.TrimSpace(req.Name))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toFileResponse(file))
}

func (s *HTTPServer) remove(c *gin.Context) {
	id := currentIdentity(c)

	if err := s.files.Delete(c.Request.Context(), id.UserID, c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
