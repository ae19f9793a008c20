package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"splittests/internal/cli"
)

// VersionCommand prints build information
type VersionCommand struct {
	out  io.Writer
	info cli.BuildInfo
}

// NewVersionCommand creates a new VersionCommand
func NewVersionCommand(out io.Writer, info cli.BuildInfo) *VersionCommand {
	return &VersionCommand{out: out, info: info}
}

// Execute runs the command
func (vc *VersionCommand) Execute(cmd *cobra.Command, args []string) {
	fmt.Fprintf(vc.out, "split-tests %s\n", vc.info.Version)
	fmt.Fprintf(vc.out, "  commit: %s\n", vc.info.Commit)
	fmt.Fprintf(vc.out, "  built:  %s\n", vc.info.Date)
}
