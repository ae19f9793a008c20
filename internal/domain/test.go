package domain

import "sort"

// TestCase is a test class with its recorded or estimated execution time in seconds.
// Two test cases are the same entity when their names are equal.
type TestCase struct {
	Name   string  `json:"name" yaml:"name"`
	Weight float64 `json:"time" yaml:"time"`
}

// Less reports whether tc sorts before other in the natural test case order:
// lower weight first, equal weights ordered by name descending.
func (tc TestCase) Less(other TestCase) bool {
	if tc.Weight != other.Weight {
		return tc.Weight < other.Weight
	}
	return tc.Name > other.Name
}

// TestCaseSet is a set of test cases unique by name.
// The first insertion of a name wins, later insertions with the same name are ignored.
type TestCaseSet struct {
	order  []string
	byName map[string]TestCase
}

// NewTestCaseSet creates a set holding the given test cases
func NewTestCaseSet(testCases ...TestCase) *TestCaseSet {
	s := &TestCaseSet{byName: make(map[string]TestCase, len(testCases))}
	for _, tc := range testCases {
		s.Add(tc)
	}
	return s
}

// Add inserts tc unless a test case with the same name exists.
// It returns true when the set changed.
func (s *TestCaseSet) Add(tc TestCase) bool {
	if s.byName == nil {
		s.byName = make(map[string]TestCase)
	}
	if _, ok := s.byName[tc.Name]; ok {
		return false
	}
	s.byName[tc.Name] = tc
	s.order = append(s.order, tc.Name)
	return true
}

// Get returns the test case with the given name
func (s *TestCaseSet) Get(name string) (TestCase, bool) {
	tc, ok := s.byName[name]
	return tc, ok
}

// Contains reports whether a test case with the given name exists
func (s *TestCaseSet) Contains(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Len returns the number of test cases
func (s *TestCaseSet) Len() int {
	return len(s.order)
}

// All returns the test cases in insertion order
func (s *TestCaseSet) All() []TestCase {
	all := make([]TestCase, 0, len(s.order))
	for _, name := range s.order {
		all = append(all, s.byName[name])
	}
	return all
}

// Sorted returns the test cases in descending natural order:
// heaviest first, equal weights by name ascending.
func (s *TestCaseSet) Sorted() []TestCase {
	sorted := s.All()
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[j].Less(sorted[i])
	})
	return sorted
}

// Names returns the test case names in descending natural order
func (s *TestCaseSet) Names() []string {
	sorted := s.Sorted()
	names := make([]string, len(sorted))
	for i, tc := range sorted {
		names[i] = tc.Name
	}
	return names
}

// TotalWeight returns the sum of all weights
func (s *TestCaseSet) TotalWeight() float64 {
	var total float64
	for _, name := range s.order {
		total += s.byName[name].Weight
	}
	return total
}
