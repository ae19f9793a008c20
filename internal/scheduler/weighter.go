package scheduler

import (
	"github.com/sirupsen/logrus"

	"splittests/internal/domain"
)

// Weighter assigns a weight to every discovered test class
type Weighter struct {
	policy domain.NewTestTimeOption
	log    logrus.FieldLogger
}

// NewWeighter creates a Weighter that estimates new tests with the given policy
func NewWeighter(policy domain.NewTestTimeOption, log logrus.FieldLogger) *Weighter {
	return &Weighter{policy: policy, log: log}
}

// Weigh returns one test case per class name. Classes with a report keep the first
// recorded time, reports for unknown classes are skipped and every remaining class
// gets the time synthesized from the recorded ones.
func (w *Weighter) Weigh(classNames []string, reports []domain.TestCase) *domain.TestCaseSet {
	known := make(map[string]struct{}, len(classNames))
	for _, name := range classNames {
		known[name] = struct{}{}
	}

	testCases := domain.NewTestCaseSet()
	if len(reports) > 0 {
		var fastest, slowest *domain.TestCase
		for i, report := range reports {
			if _, ok := known[report.Name]; !ok {
				w.log.Infof("Skipping test %s from test report", report.Name)
				continue
			}
			if !testCases.Add(report) {
				continue
			}
			w.log.Debugf("Adding test %s [%s]", report.Name, domain.FormatTime(report.Weight))
			if fastest == nil || report.Weight < fastest.Weight {
				fastest = &reports[i]
			}
			if slowest == nil || report.Weight > slowest.Weight {
				slowest = &reports[i]
			}
		}
		w.log.Debugf("Found %d recorded test classes with time information", testCases.Len())
		if fastest != nil {
			w.log.Debugf("Fastest test class: %s (%s)", fastest.Name, domain.FormatTime(fastest.Weight))
			w.log.Debugf("Slowest test class: %s (%s)", slowest.Name, domain.FormatTime(slowest.Weight))
		}
	}

	newTestTime := w.NewTestTime(testCases)
	for _, name := range classNames {
		if testCases.Add(domain.TestCase{Name: name, Weight: newTestTime}) {
			w.log.Debugf("Adding test %s [estimated %s]", name, domain.FormatTime(newTestTime))
		}
	}

	return testCases
}

// NewTestTime derives the weight of tests without a report from the recorded ones
func (w *Weighter) NewTestTime(recorded *domain.TestCaseSet) float64 {
	if recorded.Len() == 0 {
		return 0
	}

	all := recorded.All()
	switch w.policy {
	case domain.NewTestTimeAverage:
		average := recorded.TotalWeight() / float64(len(all))
		w.log.Infof("Average test time is %s", domain.FormatTime(average))
		return average
	case domain.NewTestTimeMin:
		minTime := all[0].Weight
		for _, tc := range all[1:] {
			minTime = min(minTime, tc.Weight)
		}
		w.log.Infof("Minimum test time is %s", domain.FormatTime(minTime))
		return minTime
	case domain.NewTestTimeMax:
		maxTime := all[0].Weight
		for _, tc := range all[1:] {
			maxTime = max(maxTime, tc.Weight)
		}
		w.log.Infof("Maximum test time is %s", domain.FormatTime(maxTime))
		return maxTime
	default:
		return 0
	}
}
