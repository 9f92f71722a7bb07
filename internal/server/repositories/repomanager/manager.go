package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/taskboard/internal/dbx"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same
// repository code runs against *sql.DB or an open transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tasks(db dbx.DBTX) tasks.Repository
}
