// Command tap-sheets is a Singer tap that discovers and reads Google Sheets.
package main

import (
	"os"

	"github.com/custodia-labs/tap-sheets/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
