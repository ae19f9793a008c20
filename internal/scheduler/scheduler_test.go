package scheduler

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splittests/internal/domain"
)

var canonicalReports = []domain.TestCase{
	{Name: "Fast", Weight: 2.374},
	{Name: "Slow", Weight: 12.386},
	{Name: "Slowest", Weight: 153.457},
}

var canonicalClasses = []string{"Fast", "NoTimingA", "NoTimingB", "Slow", "Slowest"}

func weigh(t *testing.T, policy domain.NewTestTimeOption, reports []domain.TestCase) *domain.TestCaseSet {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	return NewWeighter(policy, log).Weigh(canonicalClasses, reports)
}

func bucketNames(buckets *domain.Buckets) [][]string {
	names := make([][]string, buckets.Size())
	for i := range names {
		names[i] = buckets.SortedTests(i, domain.FormatList)
	}
	return names
}

func TestLPTScheduler_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		policy   domain.NewTestTimeOption
		reports  []domain.TestCase
		total    int
		expected [][]string
	}{
		{
			name:    "two splits with average time",
			policy:  domain.NewTestTimeAverage,
			reports: canonicalReports,
			total:   2,
			expected: [][]string{
				{"Slowest"},
				{"NoTimingA", "NoTimingB", "Slow", "Fast"},
			},
		},
		{
			name:    "three splits with zero time",
			policy:  domain.NewTestTimeZero,
			reports: canonicalReports,
			total:   3,
			expected: [][]string{
				{"Slowest"},
				{"Slow"},
				{"Fast", "NoTimingA", "NoTimingB"},
			},
		},
		{
			name:    "four splits with minimum time",
			policy:  domain.NewTestTimeMin,
			reports: canonicalReports,
			total:   4,
			expected: [][]string{
				{"Slowest"},
				{"Slow"},
				{"Fast", "NoTimingB"},
				{"NoTimingA"},
			},
		},
		{
			name:    "three splits without reports",
			policy:  domain.NewTestTimeAverage,
			reports: nil,
			total:   3,
			expected: [][]string{
				{"Fast", "Slow"},
				{"NoTimingA", "Slowest"},
				{"NoTimingB"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, _ := logtest.NewNullLogger()
			tests := weigh(t, tt.policy, tt.reports)

			buckets, err := NewLPTScheduler(log).Schedule(tests, tt.total)
			require.NoError(t, err)

			if diff := cmp.Diff(tt.expected, bucketNames(buckets)); diff != "" {
				t.Errorf("buckets mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLPTScheduler_GradleSingleSplit(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	tests := weigh(t, domain.NewTestTimeZero, canonicalReports)

	buckets, err := NewLPTScheduler(log).Schedule(tests, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"--tests Slowest", "--tests Slow", "--tests Fast", "--tests NoTimingA", "--tests NoTimingB",
	}, buckets.SortedTests(0, domain.FormatGradle))
}

func TestLPTScheduler_Invariants(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	tests := domain.NewTestCaseSet()
	var heaviest float64
	for i := 0; i < 40; i++ {
		weight := float64((i*37)%23) + 0.25*float64(i%4)
		heaviest = max(heaviest, weight)
		tests.Add(domain.TestCase{Name: fmt.Sprintf("com.example.Test%02d", i), Weight: weight})
	}

	for _, total := range []int{1, 2, 3, 7, 40, 55} {
		t.Run(fmt.Sprintf("%d splits", total), func(t *testing.T) {
			buckets, err := NewLPTScheduler(log).Schedule(tests, total)
			require.NoError(t, err)
			require.Equal(t, total, buckets.Size())

			seen := make(map[string]int)
			count := 0
			empty := 0
			for i := 0; i < buckets.Size(); i++ {
				b := buckets.Get(i)
				assert.Equal(t, i, b.Index())
				assert.InDelta(t, b.Tests().TotalWeight(), b.TotalWeight(), 1e-9)
				for _, name := range b.Tests().Names() {
					seen[name]++
				}
				count += b.Len()
				if b.Len() == 0 {
					empty++
				}
			}
			assert.Equal(t, tests.Len(), count)
			assert.Len(t, seen, tests.Len())
			for name, n := range seen {
				assert.Equal(t, 1, n, "test %s assigned more than once", name)
			}
			if total > tests.Len() {
				assert.Equal(t, total-tests.Len(), empty)
			}
			// greedy bound: no split exceeds the mean split weight by more than one test
			mean := tests.TotalWeight() / float64(total)
			assert.LessOrEqual(t, buckets.Slowest().TotalWeight(), heaviest+mean)

			again, err := NewLPTScheduler(log).Schedule(tests, total)
			require.NoError(t, err)
			assert.Equal(t, bucketNames(buckets), bucketNames(again))
		})
	}
}

func TestLPTScheduler_EmptySet(t *testing.T) {
	log, _ := logtest.NewNullLogger()

	buckets, err := NewLPTScheduler(log).Schedule(domain.NewTestCaseSet(), 4)
	require.NoError(t, err)
	require.Equal(t, 4, buckets.Size())
	for i := 0; i < 4; i++ {
		assert.Zero(t, buckets.Get(i).Len())
	}
}

func TestScheduler_InvalidTotal(t *testing.T) {
	log, _ := logtest.NewNullLogger()

	for _, s := range []Scheduler{NewLPTScheduler(log), NewRoundRobinScheduler(log)} {
		_, err := s.Schedule(domain.NewTestCaseSet(), 0)
		var argErr *domain.ArgumentError
		assert.ErrorAs(t, err, &argErr)
	}
}

func TestRoundRobinScheduler_Schedule(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	tests := weigh(t, domain.NewTestTimeZero, canonicalReports)

	buckets, err := NewRoundRobinScheduler(log).Schedule(tests, 2)
	require.NoError(t, err)

	expected := [][]string{
		{"Slowest", "Fast", "NoTimingB"},
		{"Slow", "NoTimingA"},
	}
	if diff := cmp.Diff(expected, bucketNames(buckets)); diff != "" {
		t.Errorf("buckets mismatch (-want +got):\n%s", diff)
	}
}

func TestNew(t *testing.T) {
	log, _ := logtest.NewNullLogger()

	s, err := New(StrategyLPT, log)
	require.NoError(t, err)
	assert.IsType(t, &LPTScheduler{}, s)

	s, err = New(StrategyRoundRobin, log)
	require.NoError(t, err)
	assert.IsType(t, &RoundRobinScheduler{}, s)

	_, err = New(Strategy("random"), log)
	assert.Error(t, err)

	_, err = ParseStrategy("random")
	assert.Error(t, err)
}
