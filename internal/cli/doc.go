// Package cli implements the interactive terminal session of the flashcard
// trainer. A Console reads choices and answers line by line from an input
// stream and renders menus, tables and messages to an output stream, calling
// the practice service for every action.
package cli
