package domain

import (
	"errors"
	"fmt"
)

// ErrProbeExhausted is returned when the optimal split probe hits its iteration limit
var ErrProbeExhausted = errors.New("maximum number of optimal split calculations reached")

// ArgumentError reports invalid flags or flag combinations
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string {
	return e.Msg
}

// NewArgumentError creates an ArgumentError from a format string
func NewArgumentError(format string, args ...any) *ArgumentError {
	return &ArgumentError{Msg: fmt.Sprintf(format, args...)}
}

// DiscoveryError reports a failure to find or parse test classes
type DiscoveryError struct {
	Path string
	Err  error
}

func (e *DiscoveryError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("discovery failed: %v", e.Err)
	}
	return fmt.Sprintf("failed to parse test class %s: %v", e.Path, e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// ReportParseError reports a malformed test report
type ReportParseError struct {
	Path string
	Err  error
}

func (e *ReportParseError) Error() string {
	return fmt.Sprintf("failed to parse test report %s: %v", e.Path, e.Err)
}

func (e *ReportParseError) Unwrap() error {
	return e.Err
}

// ProbeMismatchError reports that the requested split total differs from the calculated optimum
type ProbeMismatchError struct {
	Optimal int
	Total   int
}

func (e *ProbeMismatchError) Error() string {
	return fmt.Sprintf("the --split-total value of %d does not match the optimal split of %d", e.Total, e.Optimal)
}

// ExitCode maps an error to the process exit code
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
