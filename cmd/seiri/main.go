package main

import (
	"fmt"
	"os"

	"seiri/internal/cli"
)

const appName = "seiri"

// Overwritten at build time by goreleaser.
var (
	version   = "unknown"
	revision  = ""
	buildDate = ""
)

func main() {
	v := cli.NewVersion(appName, version, revision, buildDate)
	if err := cli.Run(v); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}
