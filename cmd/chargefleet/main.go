package main

import (
	"os"

	"github.com/chargefleet/chargefleet/internal/cli"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

// run executes the root command and maps failure to a process exit code.
// Split from main so tests can exercise it.
func run() int {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		return 1
	}
	return 0
}
