package parser

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"splittests/internal/domain"
)

// structuredReport is a JSON or YAML report; unknown fields are ignored
type structuredReport struct {
	Name string  `json:"name" yaml:"name"`
	Time float64 `json:"time" yaml:"time"`
}

// StructuredParser parses JSON and YAML reports with top-level name and time fields
type StructuredParser struct{}

// NewStructuredParser creates a new StructuredParser
func NewStructuredParser() *StructuredParser {
	return &StructuredParser{}
}

// Parse reads the test class name and time from a JSON or YAML report
func (p *StructuredParser) Parse(path string) (domain.TestCase, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.TestCase{}, fmt.Errorf("read report: %w", err)
	}

	var report structuredReport
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(content, &report)
	default:
		err = yaml.Unmarshal(content, &report)
	}
	if err != nil {
		return domain.TestCase{}, fmt.Errorf("parse report: %w", err)
	}

	if report.Name == "" {
		return domain.TestCase{}, ErrMissingName
	}
	if math.IsNaN(report.Time) || math.IsInf(report.Time, 0) {
		return domain.TestCase{}, fmt.Errorf("invalid time %v", report.Time)
	}
	if report.Time < 0 {
		return domain.TestCase{}, fmt.Errorf("negative time %v", report.Time)
	}
	return domain.TestCase{Name: report.Name, Weight: report.Time}, nil
}
