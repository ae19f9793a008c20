package commands

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"splittests/internal/cli"
	"splittests/internal/config"
	"splittests/internal/discovery"
	"splittests/internal/split"
	"splittests/internal/storage"
	"splittests/internal/ui"
)

// SplitCommand prints the test classes of one test split
type SplitCommand struct {
	config    *config.Config
	log       logrus.FieldLogger
	streams   cli.Streams
	formatter *ui.Formatter
}

// NewSplitCommand creates a new SplitCommand
func NewSplitCommand(
	cfg *config.Config,
	log logrus.FieldLogger,
	streams cli.Streams,
	formatter *ui.Formatter,
) *SplitCommand {
	return &SplitCommand{
		config:    cfg,
		log:       log,
		streams:   streams,
		formatter: formatter,
	}
}

// Execute runs the command
func (sc *SplitCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg := sc.config

	splitter, err := split.New(cfg, sc.log)
	if err != nil {
		return err
	}
	if cfg.Progress {
		splitter.SetProgress(func(total int) discovery.Progress {
			return ui.NewProgressBar(total, sc.streams.Err)
		})
	}

	result, err := splitter.Run(cmd.Context())
	if err != nil {
		return err
	}

	if cfg.Summary || cfg.PlanOutput != "" {
		plan := result.Plan(cfg)
		if cfg.Summary {
			sc.formatter.PrintPlan(plan)
		}
		if cfg.PlanOutput != "" {
			st := storage.New(cfg.PlanOutput)
			if err := st.Save(plan); err != nil {
				return fmt.Errorf("failed to save split plan: %w", err)
			}
			sc.log.Infof("Wrote the plan of all test splits to %s", st.Path())
		}
	}

	tests := result.Buckets.SortedTests(cfg.SplitIndex, cfg.Format)
	_, err = fmt.Fprint(sc.streams.Out, strings.Join(tests, " "))
	return err
}
