// Package service contains the application use cases. It coordinates domain
// objects and the store interfaces of internal/store without knowing which
// database backs them.
//
// The practice workflow lives in the practice subpackage; this package holds
// user management and the errors shared by delivery mechanisms (the HTTP API
// and the interactive terminal session).
//
// Error handling:
//   - Expected conditions are reported with sentinel errors checked by errors.Is
//   - Storage failures are wrapped so callers can still reach the store error
//   - The API layer maps service errors to HTTP status codes
package service
