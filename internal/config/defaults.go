package config

const (
	// DefaultFormat is the default output format
	DefaultFormat = "list"
	// DefaultNewTestTime is the default estimate for tests without a report
	DefaultNewTestTime = "average"
	// DefaultMaxOptimalTotalSplitCalculations is the default limit of the optimal split probe
	DefaultMaxOptimalTotalSplitCalculations = 50
	// DefaultStrategy is the default scheduling strategy
	DefaultStrategy = "lpt"
	// EnvPrefix prefixes environment variables overriding flags, e.g. SPLIT_TESTS_SPLIT_TOTAL
	EnvPrefix = "SPLIT_TESTS"
	// DotEnvFile is loaded from the working directory when present
	DotEnvFile = ".env"
)

// DefaultPathsToIgnore are the directories never descended into when scanning
var DefaultPathsToIgnore = []string{
	".git",
	".gradle",
	".idea",
	"node_modules",
}
