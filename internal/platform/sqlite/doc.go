// Package sqlite provides SQLite implementations of the store interfaces on
// top of the pure-Go modernc.org/sqlite driver, so the trainer runs from a
// single local file without a database server. The schema mirrors the
// PostgreSQL one and is migrated automatically when the database is opened.
package sqlite
