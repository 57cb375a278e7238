package store

import "embed"

// Migrations holds the goose migration files for the Postgres store.
// internal/platform/postgres applies them at startup.
//
//go:embed migrations/*.sql
var Migrations embed.FS
