// Package cli implements the interactive command-line client: a small REPL
// over the server's HTTP API for registering, logging in, and managing the
// user's files.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/avoronova/filecove/internal/client/api"
	"github.com/avoronova/filecove/internal/client/config"
)

// apiClient is the surface of the HTTP client the CLI commands use. The real
// api.Client satisfies it; tests provide a stub.
type apiClient interface {
	Status(ctx context.Context) error
	Register(ctx context.Context, username, email, password string) (*api.User, error)
	Login(ctx context.Context, email, password string) (*api.User, error)
	Me(ctx context.Context) (*api.User, error)
	Upload(ctx context.Context, paths []string) ([]api.UploadResult, error)
	List(ctx context.Context) ([]api.FileInfo, error)
	Download(ctx context.Context, id, destDir string) (string, error)
	Rename(ctx context.Context, id, name string) (*api.FileInfo, error)
	Delete(ctx context.Context, id string) error
}

type App struct {
	config *config.Config
	client apiClient
	user   *api.User
	reader *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	client := api.NewClient(c.ServerAddr, c.RequestTimeout)
	return &App{config: c, client: client, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}
