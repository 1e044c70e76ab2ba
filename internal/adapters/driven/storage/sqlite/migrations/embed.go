// Package migrations embeds the SQL schema migrations for the run
// ledger database.
package migrations

import "embed"

// FS holds the migration files embedded at compile time. The store
// applies any newer than the current schema version at startup.
//
//go:embed *.sql
var FS embed.FS
