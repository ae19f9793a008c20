package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"splittests/internal/config"
	"splittests/internal/split"
	"splittests/internal/ui"
)

// InspectCommand browses every test split in a TUI
type InspectCommand struct {
	config *config.Config
	log    logrus.FieldLogger
	viewer ui.Viewer
}

// NewInspectCommand creates a new InspectCommand
func NewInspectCommand(cfg *config.Config, log logrus.FieldLogger, viewer ui.Viewer) *InspectCommand {
	return &InspectCommand{
		config: cfg,
		log:    log,
		viewer: viewer,
	}
}

// Execute runs the command
func (ic *InspectCommand) Execute(cmd *cobra.Command, args []string) error {
	splitter, err := split.New(ic.config, ic.log)
	if err != nil {
		return err
	}

	result, err := splitter.Run(cmd.Context())
	if err != nil {
		return err
	}
	return ic.viewer.View(result.Plan(ic.config))
}
