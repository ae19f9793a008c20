package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Bucket is one of the N partitions of a test suite
type Bucket struct {
	index int
	tests *TestCaseSet
	total float64
}

// NewBucket creates an empty bucket at the given position
func NewBucket(index int) *Bucket {
	return &Bucket{index: index, tests: NewTestCaseSet()}
}

// Add puts tc into the bucket and accounts for its weight.
// A test case whose name is already in the bucket is ignored.
func (b *Bucket) Add(tc TestCase) {
	if b.tests.Add(tc) {
		b.total += tc.Weight
	}
}

// Index returns the position of the bucket
func (b *Bucket) Index() int {
	return b.index
}

// FormatIndex returns the zero padded index used in log output
func (b *Bucket) FormatIndex() string {
	return fmt.Sprintf("%02d", b.index)
}

// Tests returns the tests of the bucket
func (b *Bucket) Tests() *TestCaseSet {
	return b.tests
}

// Len returns the number of tests in the bucket
func (b *Bucket) Len() int {
	return b.tests.Len()
}

// TotalWeight returns the sum of the weights of all tests in the bucket
func (b *Bucket) TotalWeight() float64 {
	return b.total
}

// SortedTests returns the test names ordered heaviest first, decorated for the given format
func (b *Bucket) SortedTests(format FormatOption) []string {
	names := b.tests.Names()
	for i, name := range names {
		names[i] = format.Decorate(name)
	}
	return names
}

func (b *Bucket) String() string {
	return fmt.Sprintf("Bucket{index=%s, totalRecordedTime=%s, testCount=%d, tests=%s}",
		b.FormatIndex(), FormatTime(b.total), b.Len(), strings.Join(b.tests.Names(), ", "))
}

// CompareBuckets orders buckets by total weight, then by test count, then by index.
// It returns a negative number when a sorts before b, zero when equal and a positive number otherwise.
func CompareBuckets(a, b *Bucket) int {
	return compareLoad(a.total, a.Len(), a.index, b.total, b.Len(), b.index)
}

// ComparePlanBuckets orders plan buckets the same way CompareBuckets orders buckets
func ComparePlanBuckets(a, b PlanBucket) int {
	return compareLoad(a.TotalSeconds, len(a.Tests), a.Index, b.TotalSeconds, len(b.Tests), b.Index)
}

func compareLoad(totalA float64, lenA, indexA int, totalB float64, lenB, indexB int) int {
	switch {
	case totalA < totalB:
		return -1
	case totalA > totalB:
		return 1
	}
	if lenA != lenB {
		return lenA - lenB
	}
	return indexA - indexB
}

// Buckets is the ordered sequence of all buckets of a partition, indexed 0..N-1
type Buckets struct {
	buckets []*Bucket
}

// NewBuckets creates total empty buckets
func NewBuckets(total int) *Buckets {
	buckets := make([]*Bucket, total)
	for i := range buckets {
		buckets[i] = NewBucket(i)
	}
	return &Buckets{buckets: buckets}
}

// Get returns the bucket at index i
func (bs *Buckets) Get(i int) *Bucket {
	return bs.buckets[i]
}

// Size returns the number of buckets
func (bs *Buckets) Size() int {
	return len(bs.buckets)
}

// Fastest returns the smallest bucket
func (bs *Buckets) Fastest() *Bucket {
	fastest := bs.buckets[0]
	for _, b := range bs.buckets[1:] {
		if CompareBuckets(b, fastest) < 0 {
			fastest = b
		}
	}
	return fastest
}

// Slowest returns the largest bucket
func (bs *Buckets) Slowest() *Bucket {
	slowest := bs.buckets[0]
	for _, b := range bs.buckets[1:] {
		if CompareBuckets(b, slowest) > 0 {
			slowest = b
		}
	}
	return slowest
}

// ForEach visits the buckets slowest first
func (bs *Buckets) ForEach(visit func(b *Bucket)) {
	for _, b := range bs.Descending() {
		visit(b)
	}
}

// Descending returns the buckets ordered slowest first
func (bs *Buckets) Descending() []*Bucket {
	sorted := make([]*Bucket, len(bs.buckets))
	copy(sorted, bs.buckets)
	slices.SortFunc(sorted, func(a, b *Bucket) int {
		return CompareBuckets(b, a)
	})
	return sorted
}

// SortedTests returns the decorated test names of bucket i, heaviest first
func (bs *Buckets) SortedTests(i int, format FormatOption) []string {
	return bs.buckets[i].SortedTests(format)
}
