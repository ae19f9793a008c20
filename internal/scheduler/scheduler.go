package scheduler

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"splittests/internal/domain"
)

// Strategy names a scheduling algorithm
type Strategy string

const (
	// StrategyLPT places the longest test into the currently smallest bucket
	StrategyLPT Strategy = "lpt"
	// StrategyRoundRobin deals tests to buckets in turn, ignoring their weight
	StrategyRoundRobin Strategy = "round-robin"
)

// Scheduler distributes tests across buckets
type Scheduler interface {
	Schedule(tests *domain.TestCaseSet, total int) (*domain.Buckets, error)
}

// New returns the scheduler for the given strategy
func New(strategy Strategy, log logrus.FieldLogger) (Scheduler, error) {
	switch strategy {
	case StrategyLPT, "":
		return NewLPTScheduler(log), nil
	case StrategyRoundRobin:
		return NewRoundRobinScheduler(log), nil
	default:
		return nil, domain.NewArgumentError("unknown strategy %q (expected %s or %s)", strategy, StrategyLPT, StrategyRoundRobin)
	}
}

// LPTScheduler assigns tests greedily, longest processing time first
type LPTScheduler struct {
	log logrus.FieldLogger
}

// NewLPTScheduler creates a new LPTScheduler
func NewLPTScheduler(log logrus.FieldLogger) *LPTScheduler {
	return &LPTScheduler{log: log}
}

// Schedule walks the tests heaviest first and adds each one to the smallest bucket.
// Buckets are compared by total weight, then test count, then index, which makes the result deterministic.
func (s *LPTScheduler) Schedule(tests *domain.TestCaseSet, total int) (*domain.Buckets, error) {
	if total < 1 {
		return nil, domain.NewArgumentError("split total must be greater than 0, got %d", total)
	}

	buckets := domain.NewBuckets(total)
	for _, tc := range tests.Sorted() {
		smallest := buckets.Fastest()
		smallest.Add(tc)
		s.log.Debugf("Adding test %s to split #%s", tc.Name, smallest.FormatIndex())
	}

	return buckets, nil
}

// RoundRobinScheduler distributes tests evenly across buckets
type RoundRobinScheduler struct {
	log logrus.FieldLogger
}

// NewRoundRobinScheduler creates a new RoundRobinScheduler
func NewRoundRobinScheduler(log logrus.FieldLogger) *RoundRobinScheduler {
	return &RoundRobinScheduler{log: log}
}

// Schedule distributes tests evenly across buckets using round-robin
func (s *RoundRobinScheduler) Schedule(tests *domain.TestCaseSet, total int) (*domain.Buckets, error) {
	if total < 1 {
		return nil, domain.NewArgumentError("split total must be greater than 0, got %d", total)
	}

	buckets := domain.NewBuckets(total)
	for i, tc := range tests.Sorted() {
		bucket := buckets.Get(i % total)
		bucket.Add(tc)
		s.log.Debugf("Adding test %s to split #%s", tc.Name, bucket.FormatIndex())
	}

	return buckets, nil
}

func (s Strategy) String() string {
	return string(s)
}

// ParseStrategy converts a flag value to a Strategy
func ParseStrategy(value string) (Strategy, error) {
	switch Strategy(value) {
	case StrategyLPT, StrategyRoundRobin:
		return Strategy(value), nil
	}
	return "", fmt.Errorf("unknown strategy %q (expected %s or %s)", value, StrategyLPT, StrategyRoundRobin)
}
