package main

import (
	"log"

	"opportunity-finder/internal/cli"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	cli.SetVersionInfo(version, commit, date)
	cli.Execute()
}
