package parser

import (
	"encoding/xml"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"splittests/internal/domain"
)

// junitSuite is the root element of a JUnit XML report; everything but name and time is ignored
type junitSuite struct {
	Name string `xml:"name,attr"`
	Time string `xml:"time,attr"`
}

// JUnitParser parses JUnit XML reports as written by Gradle, Maven Surefire and Ant
type JUnitParser struct{}

// NewJUnitParser creates a new JUnitParser
func NewJUnitParser() *JUnitParser {
	return &JUnitParser{}
}

// Parse reads the test suite name and time from a JUnit XML report
func (p *JUnitParser) Parse(path string) (domain.TestCase, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.TestCase{}, fmt.Errorf("read report: %w", err)
	}

	var suite junitSuite
	if err := xml.Unmarshal(content, &suite); err != nil {
		return domain.TestCase{}, fmt.Errorf("parse report: %w", err)
	}
	if suite.Name == "" {
		return domain.TestCase{}, ErrMissingName
	}

	seconds, err := parseSeconds(suite.Time)
	if err != nil {
		return domain.TestCase{}, err
	}
	return domain.TestCase{Name: suite.Name, Weight: seconds}, nil
}

// parseSeconds parses a report time attribute, tolerating thousands separators.
// A missing time counts as zero seconds.
func parseSeconds(value string) (float64, error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if value == "" {
		return 0, nil
	}
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", value, err)
	}
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("negative time %q", value)
	}
	return seconds, nil
}
