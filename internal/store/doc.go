// Package store defines the persistence contracts of the flashcard trainer.
// The interfaces hide SQL and relation loading from the practice service:
// implementations live in internal/platform/postgres and
// internal/platform/sqlite. Lookups of a single entity return (nil, nil) when
// nothing matches; "not found" is an absent value, never an error.
package store
