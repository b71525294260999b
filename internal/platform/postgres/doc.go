// Package postgres provides PostgreSQL implementations of the store
// interfaces, backed by the pgx database/sql driver. It owns the SQL: queries,
// upserts, the aggregate statistics query and the embedded goose migrations.
// Driver errors are mapped onto the sentinel errors of internal/store.
package postgres
