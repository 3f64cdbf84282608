// irchook joins IRC channels and POSTs webhooks based on regex matching.
package main

import "github.com/irchook/irchook/pkg/cli"

// Build-time variables set via ldflags.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	cli.Execute(Version, Commit, BuildDate)
}
