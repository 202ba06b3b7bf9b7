package repomanager

import (
	"context"
	"database/sql"

	"github.com/careerhub/jobportal/internal/dbx"
	"github.com/careerhub/jobportal/internal/server/repositories/accounts"
)

// RepositoryManager vends repository implementations bound to a database
// handle (either a connection pool or a transaction).
type RepositoryManager interface {
	Accounts(db dbx.DBTX) accounts.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
