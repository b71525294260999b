// Package domain contains the core business entities, value objects, and
// domain logic of the flashcard trainer: flashcards, per-user answers, and the
// practice status and statistics derived from them. It is independent of any
// specific infrastructure or delivery mechanism.
package domain
