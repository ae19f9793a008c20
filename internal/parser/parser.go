package parser

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"splittests/internal/domain"
)

// ErrMissingName is returned for reports without a test class name
var ErrMissingName = errors.New("report has no test class name")

// Parser reads the recorded run of one test class from a report file
type Parser interface {
	Parse(path string) (domain.TestCase, error)
}

// Registry dispatches report files to a Parser by file extension
type Registry struct {
	parsers  map[string]Parser
	fallback Parser
	log      logrus.FieldLogger
}

// NewRegistry creates a Registry for JUnit XML, JSON and YAML reports.
// Files with any other extension are read as JUnit XML.
func NewRegistry(log logrus.FieldLogger) *Registry {
	junit := NewJUnitParser()
	structured := NewStructuredParser()
	return &Registry{
		parsers: map[string]Parser{
			".xml":  junit,
			".json": structured,
			".yaml": structured,
			".yml":  structured,
		},
		fallback: junit,
		log:      log,
	}
}

// Parse reads a single report with the parser registered for its extension
func (r *Registry) Parse(path string) (domain.TestCase, error) {
	p, ok := r.parsers[strings.ToLower(filepath.Ext(path))]
	if !ok {
		p = r.fallback
	}
	return p.Parse(path)
}

// ParseAll reads every report in the given order. The first malformed report aborts with a ReportParseError.
func (r *Registry) ParseAll(paths []string) ([]domain.TestCase, error) {
	reports := make([]domain.TestCase, 0, len(paths))
	for _, path := range paths {
		tc, err := r.Parse(path)
		if err != nil {
			return nil, &domain.ReportParseError{Path: path, Err: err}
		}
		r.log.Debugf("Read test report %s for %s", path, tc.Name)
		reports = append(reports, tc)
	}
	return reports, nil
}
