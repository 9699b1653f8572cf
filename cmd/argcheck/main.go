// Command argcheck parses arguments against flag definitions read from a
// manifest and reports what was found.
//
// Usage:
//
//	argcheck [flags] MANIFEST [-- ARGS...]
//
// The exit status is 1 when the arguments are rejected.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
)

func main() {
	err := run(context.Background(), os.Stdout, os.Stderr, os.Exit, os.Args[1:]...)
	if err != nil {
		if !errors.Is(err, errRejected) {
			slog.Error("argcheck failed", slog.Any("error", err))
		}
		os.Exit(1)
	}
}
