package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucket_Add(t *testing.T) {
	b := NewBucket(3)
	b.Add(TestCase{Name: "FooTest", Weight: 2})
	b.Add(TestCase{Name: "BarTest", Weight: 5})
	b.Add(TestCase{Name: "FooTest", Weight: 7})

	assert.Equal(t, 2, b.Len())
	assert.Equal(t, 7.0, b.TotalWeight())
	assert.Equal(t, "03", b.FormatIndex())
	assert.Equal(t, []string{"BarTest", "FooTest"}, b.SortedTests(FormatList))
	assert.Equal(t, []string{"--tests BarTest", "--tests FooTest"}, b.SortedTests(FormatGradle))
	assert.Equal(t, "Bucket{index=03, totalRecordedTime=00m07s, testCount=2, tests=BarTest, FooTest}", b.String())
}

func TestCompareBuckets(t *testing.T) {
	light := NewBucket(2)
	light.Add(TestCase{Name: "A", Weight: 1})

	heavy := NewBucket(0)
	heavy.Add(TestCase{Name: "B", Weight: 2})

	crowded := NewBucket(1)
	crowded.Add(TestCase{Name: "C", Weight: 0.5})
	crowded.Add(TestCase{Name: "D", Weight: 0.5})

	tests := []struct {
		name string
		a, b *Bucket
		sign int
	}{
		{name: "lower weight first", a: light, b: heavy, sign: -1},
		{name: "higher weight last", a: heavy, b: light, sign: 1},
		{name: "fewer tests first on equal weight", a: light, b: crowded, sign: -1},
		{name: "lower index first on equal weight and count", a: NewBucket(0), b: NewBucket(1), sign: -1},
		{name: "same bucket", a: heavy, b: heavy, sign: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompareBuckets(tt.a, tt.b)
			switch tt.sign {
			case -1:
				assert.Negative(t, got)
			case 1:
				assert.Positive(t, got)
			default:
				assert.Zero(t, got)
			}
		})
	}
}

func TestComparePlanBuckets(t *testing.T) {
	buckets := NewBuckets(3)
	buckets.Get(0).Add(TestCase{Name: "A", Weight: 1})
	buckets.Get(1).Add(TestCase{Name: "B", Weight: 0.5})
	buckets.Get(1).Add(TestCase{Name: "C", Weight: 0.5})
	buckets.Get(2).Add(TestCase{Name: "D", Weight: 1})
	plan := NewPlanOutput(buckets, PlanMeta{})

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := CompareBuckets(buckets.Get(i), buckets.Get(j))
			got := ComparePlanBuckets(plan.Buckets[i], plan.Buckets[j])
			assert.Equal(t, want, got, "buckets %d and %d", i, j)
		}
	}
}

func TestBuckets_FastestSlowest(t *testing.T) {
	buckets := NewBuckets(3)
	require.Equal(t, 3, buckets.Size())

	assert.Equal(t, 0, buckets.Fastest().Index())
	assert.Equal(t, 2, buckets.Slowest().Index())

	buckets.Get(0).Add(TestCase{Name: "A", Weight: 10})
	buckets.Get(2).Add(TestCase{Name: "B", Weight: 3})

	assert.Equal(t, 1, buckets.Fastest().Index())
	assert.Equal(t, 0, buckets.Slowest().Index())

	var order []int
	buckets.ForEach(func(b *Bucket) {
		order = append(order, b.Index())
	})
	assert.Equal(t, []int{0, 2, 1}, order)
}

func TestBuckets_SortedTests(t *testing.T) {
	buckets := NewBuckets(2)
	buckets.Get(1).Add(TestCase{Name: "com.example.FooTest", Weight: 1})

	assert.Empty(t, buckets.SortedTests(0, FormatList))
	assert.Equal(t, []string{"--tests com.example.FooTest"}, buckets.SortedTests(1, FormatGradle))
}
