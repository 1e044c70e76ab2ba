// Package sqlite provides a SQLite-backed implementation of the run
// ledger.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory and applied at open. The current version is
// tracked in the schema_migrations table.
//
// # Data Location
//
// By default, the database is stored at ~/.refscore/data/history.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
