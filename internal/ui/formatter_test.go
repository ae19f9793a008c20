package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"splittests/internal/domain"
)

func TestFormatter_PrintPlan(t *testing.T) {
	color.NoColor = true

	buckets := domain.NewBuckets(3)
	buckets.Get(0).Add(domain.TestCase{Name: "Slowest", Weight: 153.457})
	buckets.Get(1).Add(domain.TestCase{Name: "Slow", Weight: 12.386})
	buckets.Get(1).Add(domain.TestCase{Name: "Fast", Weight: 2.374})
	plan := domain.NewPlanOutput(buckets, domain.PlanMeta{SplitIndex: 1, Strategy: "lpt", OptimalSplitTotal: 2})

	var out bytes.Buffer
	NewFormatter(&out).PrintPlan(plan)
	text := out.String()

	assert.Contains(t, text, "Test Split Plan")
	assert.Contains(t, text, "Optimal Splits")
	assert.Contains(t, text, "02m33s")
	assert.Contains(t, text, "#01 00m15s, 2 tests (this split)")
	assert.Contains(t, text, "(empty)")

	// slowest split first
	slowest := strings.Index(text, "── #00 ")
	middle := strings.Index(text, "── #01 ")
	fastest := strings.Index(text, "── #02 ")
	assert.Less(t, slowest, middle)
	assert.Less(t, middle, fastest)
	assert.Less(t, strings.Index(text, "Slow 00m12s"), strings.Index(text, "Fast 00m02s"))
}

func TestFormatBucketTests(t *testing.T) {
	assert.Equal(t, "[gray](empty)[white]", formatBucketTests(domain.PlanBucket{}))

	text := formatBucketTests(domain.PlanBucket{Tests: []domain.PlanTest{
		{Name: "com.example.SlowTest", Seconds: 12.386},
		{Name: "com.example.FastTest", Seconds: 2.374},
	}})
	lines := strings.Split(strings.TrimSpace(text), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "com.example.SlowTest")
	assert.Contains(t, lines[1], "00m02s")
}

func TestDescending_TieBreaks(t *testing.T) {
	plan := &domain.PlanOutput{Buckets: []domain.PlanBucket{
		{Index: 0, TotalSeconds: 5, Tests: []domain.PlanTest{{Name: "A", Seconds: 5}}},
		{Index: 1, TotalSeconds: 5, Tests: []domain.PlanTest{{Name: "B", Seconds: 2}, {Name: "C", Seconds: 3}}},
		{Index: 2, TotalSeconds: 5, Tests: []domain.PlanTest{{Name: "D", Seconds: 5}}},
		{Index: 3, TotalSeconds: 9, Tests: []domain.PlanTest{{Name: "E", Seconds: 9}}},
		{Index: 4},
	}}

	var indexes []int
	for _, b := range descending(plan) {
		indexes = append(indexes, b.Index)
	}
	assert.Equal(t, []int{3, 1, 2, 0, 4}, indexes)

	// the plan itself keeps index order
	assert.Equal(t, 0, plan.Buckets[0].Index)
}
