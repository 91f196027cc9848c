// Package migrations embeds the goose schema migrations, one directory per
// SQL dialect.
package migrations

import "embed"

// Migrations holds the postgres/ and sqlite/ migration sets.
//
//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS
