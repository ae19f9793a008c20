package commands

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"splittests/internal/cli"
	"splittests/internal/config"
	"splittests/internal/domain"
	"splittests/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Split   *SplitCommand
	Inspect *InspectCommand
	Version *VersionCommand

	config *config.Config
	log    *logrus.Logger
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config, log *logrus.Logger, streams cli.Streams, info cli.BuildInfo) *Commands {
	formatter := ui.NewFormatter(streams.Err)
	inspector := ui.NewInspector()

	return &Commands{
		Split:   NewSplitCommand(cfg, log, streams, formatter),
		Inspect: NewInspectCommand(cfg, log, inspector),
		Version: NewVersionCommand(streams.Out, info),
		config:  cfg,
		log:     log,
	}
}

// Register attaches the split flags and all commands to rootCmd, which runs the split itself
func (c *Commands) Register(rootCmd *cobra.Command) {
	cli.RegisterSplitFlags(rootCmd.PersistentFlags())

	rootCmd.Args = cobra.NoArgs
	rootCmd.RunE = c.Split.Execute
	rootCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		return c.load(cmd, nil)
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "Browse all test splits interactively",
		Long:  "Compute every test split and browse them in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE:  c.Inspect.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// any index will do, all splits are shown
			return c.load(cmd, map[string]any{config.KeySplitIndex: 0})
		},
	}
	rootCmd.AddCommand(inspectCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run:   c.Version.Execute,
	}
	rootCmd.AddCommand(versionCmd)
}

// load resolves the configuration of cmd into the shared Config and applies the log level
func (c *Commands) load(cmd *cobra.Command, defaults map[string]any) error {
	v, err := config.NewViper(cmd.Flags())
	if err != nil {
		return err
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	*c.config = *cfg

	if cfg.Debug {
		c.log.SetLevel(logrus.DebugLevel)
	}
	if cmd.Flags().Changed(config.KeyAverageTime) {
		c.log.Warn(cli.AverageTimeDeprecation)
	}
	return nil
}

// NewLogger creates the logger of the CLI. Logs never go to stdout, which carries the test split.
func NewLogger(streams cli.Streams) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(streams.Err)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	log.SetLevel(logrus.InfoLevel)
	return log
}

// NewRootCommand creates the split-tests root command with all subcommands
func NewRootCommand(streams cli.Streams, info cli.BuildInfo) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "split-tests",
		Short: "Split a Java test suite into balanced test splits",
		Long: `split-tests divides the test classes of a Java project into a number of
test splits with similar total run times, based on earlier JUnit reports.
It prints the test classes of one split, so every CI worker runs its share.`,
		Version:       info.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.SetOut(streams.Out)
	rootCmd.SetErr(streams.Err)

	log := NewLogger(streams)
	NewCommands(config.New(), log, streams, info).Register(rootCmd)
	// stdout carries the test split only, flag notices go to stderr
	rootCmd.PersistentFlags().SetOutput(streams.Err)
	rootCmd.Flags().SetOutput(streams.Err)
	return rootCmd
}

// Execute runs the CLI with args and reports the exit code to exit
func Execute(args []string, streams cli.Streams, info cli.BuildInfo, exit func(int)) {
	rootCmd := NewRootCommand(streams, info)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	if err != nil {
		var argErr *domain.ArgumentError
		if errors.As(err, &argErr) {
			fmt.Fprintln(streams.Err, rootCmd.UsageString())
		}
		fmt.Fprintf(streams.Err, "Error: %v\n", err)
	}
	exit(domain.ExitCode(err))
}
