package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/bookhub/internal/dbx"
	"github.com/dmitrijs2005/bookhub/internal/server/repositories/books"
)

// RepositoryManager vends repositories bound to a DBTX so the same code can
// run against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Books(db dbx.DBTX) books.Repository
}
