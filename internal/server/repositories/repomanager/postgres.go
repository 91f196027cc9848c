// Package repomanager vends repository implementations for a SQL dialect and
// runs the matching embedded goose migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/securechat/internal/dbx"
	"github.com/dmitrijs2005/securechat/internal/server/migrations"
	"github.com/dmitrijs2005/securechat/internal/server/repositories/aliases"
	"github.com/dmitrijs2005/securechat/internal/server/repositories/messages"
	"github.com/dmitrijs2005/securechat/internal/server/repositories/parties"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Parties returns a parties.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Parties(db dbx.DBTX) parties.Repository {
	return parties.NewSQLRepository(db)
}

// Aliases returns an aliases.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Aliases(db dbx.DBTX) aliases.Repository {
	return aliases.NewSQLRepository(db)
}

// Messages returns a messages.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Messages(db dbx.DBTX) messages.Repository {
	return messages.NewSQLRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the postgres migration set.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrate(ctx, db, "pgx", "postgres")
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager(db *sql.DB) (RepositoryManager, error) {
	return &PostgresRepositoryManager{}, nil
}

func migrate(ctx context.Context, db *sql.DB, dialect, dir string) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, dir)
}
