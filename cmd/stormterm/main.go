// Package main is the entry point for the stormterm configuration tool.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// versionString returns the version string.
func versionString() string {
	return fmt.Sprintf("%s (%s, %s, %s)", version, commit[:min(7, len(commit))], date, runtime.Version())
}
