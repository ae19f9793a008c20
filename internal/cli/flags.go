package cli

import (
	"io"

	"github.com/spf13/pflag"

	"splittests/internal/config"
	"splittests/internal/domain"
)

// BuildInfo is set at build time through ldflags
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Streams are the output streams of the CLI. Out receives only the test split itself.
type Streams struct {
	Out io.Writer
	Err io.Writer
}

// AverageTimeDeprecation is logged when the hidden --average-time flag is used
const AverageTimeDeprecation = "Flag --average-time has been deprecated, use --new-test-time average instead"

// RegisterSplitFlags defines the flags of a split run on fs.
// Values are read back through viper, so the flags are not bound to variables.
func RegisterSplitFlags(fs *pflag.FlagSet) {
	fs.IntP(config.KeySplitIndex, "i", 0, "This test split index (required)")
	fs.IntP(config.KeySplitTotal, "t", 0, "Total number of test splits (required)")
	fs.StringP(config.KeyGlob, "g", "", "Glob pattern to find test source files, e.g. '**/src/test/java/**/*Test.java' (required)")
	fs.StringP(config.KeyExcludeGlob, "e", "", "Glob pattern to exclude test source files")
	fs.StringP(config.KeyJUnitGlob, "j", "", "Glob pattern to find JUnit reports, e.g. '**/test-results/**/*.xml'")
	fs.StringP(config.KeyFormat, "f", config.DefaultFormat,
		"Output format ("+domain.JoinOptions(domain.FormatOptions)+")")
	fs.StringP(config.KeyNewTestTime, "n", config.DefaultNewTestTime,
		"Recorded time for tests without a JUnit report ("+domain.JoinOptions(domain.NewTestTimeOptions)+")")
	fs.StringP(config.KeyWorkingDirectory, "w", "", "Working directory, defaults to the current directory")
	fs.BoolP(config.KeyCalculateOptimalTotalSplit, "c", false, "Calculate the optimal test split (only on the first split index)")
	fs.IntP(config.KeyMaxOptimalTotalSplitCalculations, "m", config.DefaultMaxOptimalTotalSplitCalculations,
		"Maximum number of split totals tried by --calculate-optimal-total-split")
	fs.BoolP(config.KeyDebug, "d", false, "Enable debug logging")

	fs.String(config.KeyConfig, "", "YAML config file with defaults for any flag")
	fs.String(config.KeyStrategy, config.DefaultStrategy, "Scheduling strategy (lpt, round-robin)")
	fs.Int(config.KeyParallelism, 0, "Number of test sources parsed concurrently, defaults to the number of CPUs")
	fs.Bool(config.KeyProgress, false, "Show a progress bar while parsing test sources")
	fs.Bool(config.KeySummary, false, "Print a summary of all test splits to stderr")
	fs.String(config.KeyPlanOutput, "", "Write the plan of all test splits to a .json or .yaml file")
	fs.StringSlice(config.KeyIgnoreDir, config.DefaultPathsToIgnore, "Directory names never scanned")

	fs.BoolP(config.KeyAverageTime, "a", false, "Use the average test time for tests without a JUnit report")
	_ = fs.MarkHidden(config.KeyAverageTime)
}
