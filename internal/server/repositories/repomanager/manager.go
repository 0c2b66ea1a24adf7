package repomanager

import (
	"context"
	"database/sql"

	"github.com/avoronova/filecove/internal/dbx"
	"github.com/avoronova/filecove/internal/server/repositories/files"
	"github.com/avoronova/filecove/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX, so
// services can run several repositories inside one transaction, and exposes
// a schema migration hook.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Files(db dbx.DBTX) files.Repository
}
