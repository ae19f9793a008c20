// Package split runs the test split pipeline: discovery, report ingestion,
// weighting, the optional optimal split probe and scheduling.
package split

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"splittests/internal/config"
	"splittests/internal/discovery"
	"splittests/internal/domain"
	"splittests/internal/parser"
	"splittests/internal/scheduler"
)

// ProgressFactory creates a progress reporter for the given number of source files
type ProgressFactory func(total int) discovery.Progress

// Result is the outcome of a split run
type Result struct {
	Buckets *domain.Buckets
	Tests   *domain.TestCaseSet
	// Optimal is the calculated optimal split total, 0 when it was not calculated
	Optimal int
}

// Plan describes the result as an exportable document
func (r *Result) Plan(cfg *config.Config) *domain.PlanOutput {
	return domain.NewPlanOutput(r.Buckets, domain.PlanMeta{
		SplitIndex:        cfg.SplitIndex,
		Strategy:          cfg.Strategy.String(),
		NewTestTime:       cfg.NewTestTime.String(),
		OptimalSplitTotal: r.Optimal,
	})
}

// Splitter computes the buckets of a test suite
type Splitter struct {
	config    *config.Config
	scanner   *discovery.Scanner
	loader    *discovery.Loader
	reports   *parser.Registry
	weighter  *scheduler.Weighter
	scheduler scheduler.Scheduler
	probe     *scheduler.Probe
	progress  ProgressFactory
	log       logrus.FieldLogger
}

// New creates a Splitter for the given configuration
func New(cfg *config.Config, log logrus.FieldLogger) (*Splitter, error) {
	sched, err := scheduler.New(cfg.Strategy, log)
	if err != nil {
		return nil, err
	}

	// the probe schedules the suite many times, keep its per-test logging quiet
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	return &Splitter{
		config:    cfg,
		scanner:   discovery.NewScanner(cfg.PathsToIgnore, log),
		loader:    discovery.NewLoader(discovery.NewParser(), cfg.Parallelism, log),
		reports:   parser.NewRegistry(log),
		weighter:  scheduler.NewWeighter(cfg.NewTestTime, log),
		scheduler: sched,
		probe:     scheduler.NewProbe(scheduler.NewLPTScheduler(quiet), cfg.MaxOptimalTotalSplitCalculations, log),
		log:       log,
	}, nil
}

// SetProgress installs a progress reporter for test class discovery
func (s *Splitter) SetProgress(progress ProgressFactory) {
	s.progress = progress
}

// Run executes the pipeline and returns every bucket of the split
func (s *Splitter) Run(ctx context.Context) (*Result, error) {
	cfg := s.config
	s.log.Infof("Split index %d (total: %d)", cfg.SplitIndex, cfg.SplitTotal)
	s.log.Infof("Working directory: %s", cfg.WorkingDirectory)
	s.log.Infof("Glob: %s", cfg.Glob)
	s.log.Infof("Exclude glob: %s", cfg.ExcludeGlob)
	s.log.Infof("JUnit glob: %s", cfg.JUnitGlob)
	s.log.Infof("Output format: %s", cfg.Format)

	classNames, err := s.discover(ctx)
	if err != nil {
		return nil, err
	}

	reports, err := s.readReports(ctx)
	if err != nil {
		return nil, err
	}

	tests := s.weighter.Weigh(classNames, reports)
	result := &Result{Tests: tests}

	if cfg.CalculateOptimalTotalSplit {
		result.Optimal = s.optimalTotal(tests)
	}

	s.log.Infof("Splitting %d tests into %d splits", tests.Len(), cfg.SplitTotal)
	buckets, err := s.scheduler.Schedule(tests, cfg.SplitTotal)
	if err != nil {
		return nil, err
	}
	result.Buckets = buckets

	logPlan(s.log, buckets)

	current := buckets.Get(cfg.SplitIndex)
	s.log.Infof("This test split has %d tests (%s)", current.Len(), domain.FormatTime(current.TotalWeight()))
	return result, nil
}

func (s *Splitter) discover(ctx context.Context) ([]string, error) {
	cfg := s.config
	filter, err := discovery.NewFilter(cfg.Glob, cfg.ExcludeGlob)
	if err != nil {
		return nil, err
	}

	s.log.Infof("Reading test classes from %s matching %s", cfg.WorkingDirectory, cfg.Glob)
	paths, err := s.scanner.Scan(ctx, cfg.WorkingDirectory, filter)
	if err != nil {
		return nil, &domain.DiscoveryError{Err: err}
	}
	s.log.Debugf("Found %d test source files", len(paths))

	if s.progress != nil {
		s.loader.SetProgress(s.progress(len(paths)))
	}
	return s.loader.ClassNames(ctx, paths)
}

func (s *Splitter) readReports(ctx context.Context) ([]domain.TestCase, error) {
	cfg := s.config
	if cfg.JUnitGlob == "" {
		return nil, nil
	}

	filter, err := discovery.NewFilter(cfg.JUnitGlob, "")
	if err != nil {
		return nil, err
	}

	s.log.Infof("Reading test reports matching %s", cfg.JUnitGlob)
	paths, err := s.scanner.Scan(ctx, cfg.WorkingDirectory, filter)
	if err != nil {
		return nil, fmt.Errorf("scan test reports: %w", err)
	}
	s.log.Infof("Found %d JUnit report files", len(paths))
	return s.reports.ParseAll(paths)
}

// optimalTotal runs the probe where it is meaningful and logs the outcome.
// Probe failures are warnings, the split itself goes on.
func (s *Splitter) optimalTotal(tests *domain.TestCaseSet) int {
	cfg := s.config
	if cfg.SplitIndex != 0 {
		s.log.Debugf("Skipping the optimal split calculation on split index %d", cfg.SplitIndex)
		return 0
	}
	if cfg.JUnitGlob == "" {
		s.log.Warn("The option --calculate-optimal-total-split requires --junit-glob")
		return 0
	}

	optimal, err := s.probe.Optimal(tests)
	if err != nil {
		if errors.Is(err, domain.ErrProbeExhausted) {
			s.log.Warn(err.Error())
			return 0
		}
		s.log.WithError(err).Warn("Failed to calculate the optimal test split")
		return 0
	}

	if err := scheduler.CheckOptimal(optimal, cfg.SplitTotal); err != nil {
		s.log.Warn(err.Error())
	}
	return optimal
}

// logPlan writes a debug dump of every bucket, slowest first
func logPlan(log logrus.FieldLogger, buckets *domain.Buckets) {
	fastest, slowest := buckets.Fastest(), buckets.Slowest()
	log.Debugf("Fastest test split #%s takes %s", fastest.FormatIndex(), domain.FormatTime(fastest.TotalWeight()))
	log.Debugf("Slowest test split #%s takes %s", slowest.FormatIndex(), domain.FormatTime(slowest.TotalWeight()))
	log.Debugf("Difference between the fastest and slowest test split is %s",
		domain.FormatTime(slowest.TotalWeight()-fastest.TotalWeight()))
	buckets.ForEach(func(b *domain.Bucket) {
		log.Debugf("%s", b)
	})
}
