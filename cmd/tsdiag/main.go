// Command tsdiag checks AR stationarity and MA invertibility from the command
// line and serves the same checks over HTTP.
package main

import (
	"os"

	"github.com/sartorproj/tsdiag/internal/cli"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate
}

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
