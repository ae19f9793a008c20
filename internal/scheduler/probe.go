package scheduler

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"splittests/internal/domain"
)

// Probe searches for the smallest split total beyond which the slowest bucket stops getting faster.
//
// The search stops on the first split total whose slowest bucket weighs exactly as much as
// the previous one. This relies on the scheduler being a pure function of its input.
type Probe struct {
	scheduler     Scheduler
	maxIterations int
	log           logrus.FieldLogger
}

// NewProbe creates a Probe that gives up after maxIterations split totals
func NewProbe(scheduler Scheduler, maxIterations int, log logrus.FieldLogger) *Probe {
	return &Probe{
		scheduler:     scheduler,
		maxIterations: maxIterations,
		log:           log,
	}
}

// Optimal returns the optimal split total for tests.
// It returns 0 and ErrProbeExhausted when the limit is reached first.
func (p *Probe) Optimal(tests *domain.TestCaseSet) (int, error) {
	p.log.Info("Calculating optimal test split")

	lastSlowest := math.Inf(1)
	for total := 1; ; total++ {
		buckets, err := p.scheduler.Schedule(tests, total)
		if err != nil {
			return 0, err
		}

		slowest := buckets.Slowest().TotalWeight()
		if slowest == lastSlowest {
			optimal := total - 1
			p.log.Infof("The optimal --split-total value for this test suite is %d", optimal)
			return optimal, nil
		}
		p.log.Debugf("The slowest split with %d splits takes %s", total, domain.FormatTime(slowest))

		if total >= p.maxIterations {
			return 0, fmt.Errorf("the option --max-optimal-total-split-calculations of %d is too low to calculate the optimal test split: %w",
				p.maxIterations, domain.ErrProbeExhausted)
		}
		lastSlowest = slowest
	}
}

// CheckOptimal reports a ProbeMismatchError when total differs from the calculated optimum
func CheckOptimal(optimal, total int) error {
	if optimal == 0 || optimal == total {
		return nil
	}
	return &domain.ProbeMismatchError{Optimal: optimal, Total: total}
}
