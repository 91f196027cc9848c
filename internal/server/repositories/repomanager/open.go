package repomanager

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// Open connects to the database for driver, verifies the connection and
// returns the matching RepositoryManager. Migrations are not applied.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, RepositoryManager, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", driver, err)
	}

	var m RepositoryManager
	if driver == DriverSQLite {
		// An in-memory database lives and dies with its connection.
		db.SetMaxOpenConns(1)
		m, err = NewSQLiteRepositoryManager(db)
	} else {
		m, err = NewPostgresRepositoryManager(db)
	}
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, m, nil
}
