package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"galley/internal/services"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps validation and configuration failures to exit 2 so wrapping
// scripts can tell them apart from transient failures worth retrying.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if services.IsFatal(err) {
		return 2
	}
	return 1
}
