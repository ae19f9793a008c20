package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"splittests/internal/domain"
	"splittests/internal/scheduler"
)

// Flag names, also used as config file keys
const (
	KeySplitIndex                       = "split-index"
	KeySplitTotal                       = "split-total"
	KeyGlob                             = "glob"
	KeyExcludeGlob                      = "exclude-glob"
	KeyJUnitGlob                        = "junit-glob"
	KeyFormat                           = "format"
	KeyAverageTime                      = "average-time"
	KeyNewTestTime                      = "new-test-time"
	KeyWorkingDirectory                 = "working-directory"
	KeyCalculateOptimalTotalSplit       = "calculate-optimal-total-split"
	KeyMaxOptimalTotalSplitCalculations = "max-optimal-total-split-calculations"
	KeyDebug                            = "debug"
	KeyStrategy                         = "strategy"
	KeyParallelism                      = "parallelism"
	KeyProgress                         = "progress"
	KeyPlanOutput                       = "plan-output"
	KeySummary                          = "summary"
	KeyIgnoreDir                        = "ignore-dir"
	KeyConfig                           = "config"
)

// Config holds all configuration for a split run
type Config struct {
	SplitIndex int
	SplitTotal int

	// Discovery settings
	Glob             string
	ExcludeGlob      string
	JUnitGlob        string
	WorkingDirectory string
	PathsToIgnore    []string
	Parallelism      int

	// Weighting and scheduling
	NewTestTime                      domain.NewTestTimeOption
	Strategy                         scheduler.Strategy
	CalculateOptimalTotalSplit       bool
	MaxOptimalTotalSplitCalculations int

	// Output settings
	Format     domain.FormatOption
	Debug      bool
	Progress   bool
	Summary    bool
	PlanOutput string
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		SplitTotal:                       1,
		Format:                           domain.FormatOption(DefaultFormat),
		NewTestTime:                      domain.NewTestTimeOption(DefaultNewTestTime),
		Strategy:                         scheduler.Strategy(DefaultStrategy),
		MaxOptimalTotalSplitCalculations: DefaultMaxOptimalTotalSplitCalculations,
	}
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// NewViper returns a viper instance bound to the given flags and to SPLIT_TESTS_* environment variables
func NewViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}
	return v, nil
}

// Load resolves the configuration from flags, environment, the working directory's
// .env file and an optional config file, in that order of precedence
func Load(v *viper.Viper) (*Config, error) {
	cfg := New()

	if file := v.GetString(KeyConfig); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, domain.NewArgumentError("cannot read config file %s: %v", file, err)
		}
	}

	workingDirectory, err := resolveWorkingDirectory(v.GetString(KeyWorkingDirectory))
	if err != nil {
		return nil, err
	}
	cfg.WorkingDirectory = workingDirectory
	if err := checkWorkingDirectory(workingDirectory); err != nil {
		return nil, err
	}

	// existing environment variables win over the .env file
	if err := godotenv.Load(filepath.Join(workingDirectory, DotEnvFile)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", DotEnvFile, err)
	}

	for _, key := range []string{KeySplitIndex, KeySplitTotal, KeyGlob} {
		if !v.IsSet(key) {
			return nil, domain.NewArgumentError("--%s is required", key)
		}
	}

	cfg.SplitIndex = v.GetInt(KeySplitIndex)
	cfg.SplitTotal = v.GetInt(KeySplitTotal)
	cfg.Glob = v.GetString(KeyGlob)
	cfg.ExcludeGlob = v.GetString(KeyExcludeGlob)
	cfg.JUnitGlob = v.GetString(KeyJUnitGlob)
	cfg.CalculateOptimalTotalSplit = v.GetBool(KeyCalculateOptimalTotalSplit)
	cfg.MaxOptimalTotalSplitCalculations = v.GetInt(KeyMaxOptimalTotalSplitCalculations)
	cfg.Debug = v.GetBool(KeyDebug)
	cfg.Parallelism = v.GetInt(KeyParallelism)
	cfg.Progress = v.GetBool(KeyProgress)
	cfg.Summary = v.GetBool(KeySummary)
	cfg.PlanOutput = v.GetString(KeyPlanOutput)
	if dirs := v.GetStringSlice(KeyIgnoreDir); len(dirs) > 0 {
		cfg.PathsToIgnore = dirs
	}

	if cfg.Format, err = domain.ParseFormatOption(v.GetString(KeyFormat)); err != nil {
		return nil, &domain.ArgumentError{Msg: err.Error()}
	}
	if cfg.NewTestTime, err = domain.ParseNewTestTimeOption(v.GetString(KeyNewTestTime)); err != nil {
		return nil, &domain.ArgumentError{Msg: err.Error()}
	}
	// the deprecated --average-time flag only applies when --new-test-time was left alone
	if v.GetBool(KeyAverageTime) && !v.IsSet(KeyNewTestTime) {
		cfg.NewTestTime = domain.NewTestTimeAverage
	}
	if cfg.Strategy, err = scheduler.ParseStrategy(v.GetString(KeyStrategy)); err != nil {
		return nil, &domain.ArgumentError{Msg: err.Error()}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.SplitTotal < 1 {
		return domain.NewArgumentError("--split-total must be greater than 0")
	}
	if c.SplitIndex < 0 || c.SplitIndex > c.SplitTotal-1 {
		return domain.NewArgumentError("--split-index must be less than --split-total")
	}
	if c.Glob == "" {
		return domain.NewArgumentError("--glob must not be empty")
	}
	if c.MaxOptimalTotalSplitCalculations < 1 {
		return domain.NewArgumentError("--max-optimal-total-split-calculations must be greater than 0")
	}
	return checkWorkingDirectory(c.WorkingDirectory)
}

// checkWorkingDirectory returns an ArgumentError unless dir is an existing directory
func checkWorkingDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return domain.NewArgumentError("working directory does not exist: %s", dir)
	}
	if !info.IsDir() {
		return domain.NewArgumentError("working directory is not a directory: %s", dir)
	}
	return nil
}

// resolveWorkingDirectory returns the absolute, cleaned working directory, defaulting to the current one
func resolveWorkingDirectory(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get current directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", domain.NewArgumentError("invalid working directory %s: %v", dir, err)
	}
	return filepath.Clean(abs), nil
}
