// Package main implements the flashcards command: an HTTP API server, an
// interactive terminal trainer and the administrative commands around them.
package main

import (
	"context"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
