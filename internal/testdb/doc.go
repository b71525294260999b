// Package testdb provides helpers for integration tests against a real
// PostgreSQL database.
//
// The helpers are compiled only with the integration build tag:
//
//	DATABASE_URL=postgres://... go test -tags=integration ./...
//
// GetTestDB connects, applies the embedded migrations once and closes the
// connection when the test ends. WithTx runs a test body inside a transaction
// that is always rolled back, so tests do not see each other's data.
package testdb
