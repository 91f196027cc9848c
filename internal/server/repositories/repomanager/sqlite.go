package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/securechat/internal/dbx"
	"github.com/dmitrijs2005/securechat/internal/server/repositories/aliases"
	"github.com/dmitrijs2005/securechat/internal/server/repositories/messages"
	"github.com/dmitrijs2005/securechat/internal/server/repositories/parties"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager runs the shared queries against SQLite by rewriting
// their placeholders on the way to the driver.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Parties(db dbx.DBTX) parties.Repository {
	return parties.NewSQLRepository(dbx.Numbered(db))
}

func (m *SQLiteRepositoryManager) Aliases(db dbx.DBTX) aliases.Repository {
	return aliases.NewSQLRepository(dbx.Numbered(db))
}

func (m *SQLiteRepositoryManager) Messages(db dbx.DBTX) messages.Repository {
	return messages.NewSQLRepository(dbx.Numbered(db))
}

// RunMigrations applies the sqlite migration set.
func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrate(ctx, db, "sqlite3", "sqlite")
}

func NewSQLiteRepositoryManager(db *sql.DB) (RepositoryManager, error) {
	return &SQLiteRepositoryManager{}, nil
}
