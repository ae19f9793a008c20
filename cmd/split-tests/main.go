package main

import (
	"os"

	"splittests/internal/cli"
	"splittests/internal/cli/commands"
)

var (
	// Version information set at build time.
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	streams := cli.Streams{Out: os.Stdout, Err: os.Stderr}
	info := cli.BuildInfo{Version: version, Commit: commit, Date: date}

	commands.Execute(os.Args[1:], streams, info, os.Exit)
}
