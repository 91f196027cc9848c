package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/securechat/internal/dbx"
	"github.com/dmitrijs2005/securechat/internal/server/repositories/aliases"
	"github.com/dmitrijs2005/securechat/internal/server/repositories/messages"
	"github.com/dmitrijs2005/securechat/internal/server/repositories/parties"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Parties(db dbx.DBTX) parties.Repository
	Aliases(db dbx.DBTX) aliases.Repository
	Messages(db dbx.DBTX) messages.Repository
}
