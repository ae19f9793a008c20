package domain

import "time"

// PlanMeta contains metadata about a computed split plan
type PlanMeta struct {
	SplitTotal        int     `json:"split_total" yaml:"split_total"`
	SplitIndex        int     `json:"split_index" yaml:"split_index"`
	Strategy          string  `json:"strategy" yaml:"strategy"`
	NewTestTime       string  `json:"new_test_time" yaml:"new_test_time"`
	TotalTests        int     `json:"total_tests" yaml:"total_tests"`
	TotalSeconds      float64 `json:"total_seconds" yaml:"total_seconds"`
	OptimalSplitTotal int     `json:"optimal_split_total,omitempty" yaml:"optimal_split_total,omitempty"`
	FastestBucket     int     `json:"fastest_bucket" yaml:"fastest_bucket"`
	SlowestBucket     int     `json:"slowest_bucket" yaml:"slowest_bucket"`
	DifferenceSeconds float64 `json:"difference_seconds" yaml:"difference_seconds"`
	Timestamp         string  `json:"timestamp" yaml:"timestamp"`
}

// PlanTest is a single test class of a plan bucket
type PlanTest struct {
	Name    string  `json:"name" yaml:"name"`
	Seconds float64 `json:"seconds" yaml:"seconds"`
}

// PlanBucket describes one bucket of a split plan
type PlanBucket struct {
	Index        int        `json:"index" yaml:"index"`
	TotalSeconds float64    `json:"total_seconds" yaml:"total_seconds"`
	Duration     string     `json:"duration" yaml:"duration"`
	Tests        []PlanTest `json:"tests" yaml:"tests"`
}

// PlanOutput is the complete export of a split plan
type PlanOutput struct {
	Meta    PlanMeta     `json:"meta" yaml:"meta"`
	Buckets []PlanBucket `json:"buckets" yaml:"buckets"`
}

// NewPlanOutput describes buckets as an exportable document
func NewPlanOutput(buckets *Buckets, meta PlanMeta) *PlanOutput {
	fastest, slowest := buckets.Fastest(), buckets.Slowest()
	meta.SplitTotal = buckets.Size()
	meta.FastestBucket = fastest.Index()
	meta.SlowestBucket = slowest.Index()
	meta.DifferenceSeconds = slowest.TotalWeight() - fastest.TotalWeight()
	meta.TotalTests = 0
	meta.TotalSeconds = 0
	if meta.Timestamp == "" {
		meta.Timestamp = time.Now().Format(time.RFC3339)
	}

	output := &PlanOutput{Buckets: make([]PlanBucket, 0, buckets.Size())}
	for i := 0; i < buckets.Size(); i++ {
		b := buckets.Get(i)
		meta.TotalTests += b.Len()
		meta.TotalSeconds += b.TotalWeight()
		tests := make([]PlanTest, 0, b.Len())
		for _, tc := range b.Tests().Sorted() {
			tests = append(tests, PlanTest{Name: tc.Name, Seconds: tc.Weight})
		}
		output.Buckets = append(output.Buckets, PlanBucket{
			Index:        b.Index(),
			TotalSeconds: b.TotalWeight(),
			Duration:     FormatTime(b.TotalWeight()),
			Tests:        tests,
		})
	}
	output.Meta = meta
	return output
}
