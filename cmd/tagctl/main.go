// Package main is the entry point for the tagctl CLI.
//
// Usage:
//
//	tagctl [flags] <command> [args]
//
// Commands:
//
//	suggest  - Ask a running server for tag suggestions
//	select   - Run the gap-cutoff selector on hand-written scores
//	topics   - List the built-in topic vocabulary
package main

import (
	"fmt"
	"os"

	"ai-tagging-be/cmd/tagctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
