package domain

import (
	"fmt"
	"math"
	"strings"
)

// FormatOption controls how test names are printed
type FormatOption string

const (
	// FormatList prints plain class names
	FormatList FormatOption = "list"
	// FormatGradle prefixes every class name with "--tests "
	FormatGradle FormatOption = "gradle"
)

// FormatOptions lists the supported output formats
var FormatOptions = []FormatOption{FormatList, FormatGradle}

// ParseFormatOption converts a flag value to a FormatOption
func ParseFormatOption(value string) (FormatOption, error) {
	for _, option := range FormatOptions {
		if string(option) == value {
			return option, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (expected one of %s)", value, JoinOptions(FormatOptions))
}

// Decorate applies the output format to a single test name
func (f FormatOption) Decorate(name string) string {
	if f == FormatGradle {
		return "--tests " + name
	}
	return name
}

func (f FormatOption) String() string {
	return string(f)
}

// NewTestTimeOption selects the estimated time of tests without a report
type NewTestTimeOption string

const (
	NewTestTimeZero    NewTestTimeOption = "zero"
	NewTestTimeAverage NewTestTimeOption = "average"
	NewTestTimeMin     NewTestTimeOption = "min"
	NewTestTimeMax     NewTestTimeOption = "max"
)

// NewTestTimeOptions lists the supported new test time policies
var NewTestTimeOptions = []NewTestTimeOption{NewTestTimeZero, NewTestTimeAverage, NewTestTimeMin, NewTestTimeMax}

// ParseNewTestTimeOption converts a flag value to a NewTestTimeOption
func ParseNewTestTimeOption(value string) (NewTestTimeOption, error) {
	for _, option := range NewTestTimeOptions {
		if string(option) == value {
			return option, nil
		}
	}
	return "", fmt.Errorf("unknown new test time %q (expected one of %s)", value, JoinOptions(NewTestTimeOptions))
}

func (o NewTestTimeOption) String() string {
	return string(o)
}

// JoinOptions renders options as a comma separated list for help and error messages
func JoinOptions[T ~string](options []T) string {
	values := make([]string, len(options))
	for i, option := range options {
		values[i] = string(option)
	}
	return strings.Join(values, ", ")
}

// FormatTime renders seconds as "MMmSSs"
func FormatTime(seconds float64) string {
	minutes := int(math.Floor(seconds / 60))
	rest := int(math.Round(seconds - float64(minutes*60)))
	return fmt.Sprintf("%02dm%02ds", minutes, rest)
}
