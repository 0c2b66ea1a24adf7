// Package httpapi exposes the storage service over HTTP/JSON. Routing and
// request handling are built on gin; every file route requires a valid
// session token.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avoronova/filecove/internal/logging"
	"github.com/avoronova/filecove/internal/server/config"
	"github.com/avoronova/filecove/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address          string
	users            *services.UserService
	files            *services.FileService
	logger           logging.Logger
	jwtSecret        []byte
	maxUploadSize    int64
	maxFilesPerBatch int
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, us *services.UserService, fs *services.FileService) (*HTTPServer, error) {
	return &HTTPServer{
		address:          cfg.Addr,
		logger:           l.With("module", "http_server"),
		users:            us,
		files:            fs,
		jwtSecret:        []byte(cfg.SecretKey),
		maxUploadSize:    cfg.MaxUploadSize,
		maxFilesPerBatch: cfg.MaxFilesPerBatch,
	}, nil
}

// Router builds the gin engine with all routes registered.
func (s *HTTPServer) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")
	{
		api.GET("/status", s.status)
		api.POST("/user/register", s.register)
		api.POST("/user/login", s.login)

		authed := api.Group("/")
		authed.Use(s.authMiddleware())
		{
			authed.GET("/user/me", s.me)
			authed.POST("/files", s.upload)
			authed.GET("/files", s.list)
			authed.GET("/files/:id/download", s.download)
			authed.PATCH("/files/:id", s.rename)
			authed.DELETE("/files/:id", s.remove)
		}
	}

	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
