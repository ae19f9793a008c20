package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splittests/internal/cli"
)

func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	for _, name := range []string{"Fast", "NoTimingA", "NoTimingB", "Slow", "Slowest"} {
		write("src/test/java/com/example/"+name+".java",
			fmt.Sprintf("package com.example;\n\nclass %s {\n}\n", name))
	}
	for name, seconds := range map[string]string{"Fast": "2.374", "Slow": "12.386", "Slowest": "153.457"} {
		write("build/test-results/test/TEST-com.example."+name+".xml",
			fmt.Sprintf(`<testsuite name="com.example.%s" time="%s"/>`, name, seconds))
	}
	return dir
}

type outcome struct {
	code   int
	stdout string
	stderr string
}

func execute(args ...string) outcome {
	var stdout, stderr bytes.Buffer
	code := -1
	Execute(args, cli.Streams{Out: &stdout, Err: &stderr}, cli.BuildInfo{Version: "1.2.3", Commit: "abc", Date: "today"}, func(c int) {
		code = c
	})
	return outcome{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestExecute_Split(t *testing.T) {
	dir := newProject(t)

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "second of two splits",
			args:     []string{"-i", "1", "-t", "2", "-g", "**/*.java", "-j", "**/TEST-*.xml", "-w", dir},
			expected: "com.example.NoTimingA com.example.NoTimingB com.example.Slow com.example.Fast",
		},
		{
			name:     "first of two splits",
			args:     []string{"-i", "0", "-t", "2", "-g", "**/*.java", "-j", "**/TEST-*.xml", "-w", dir},
			expected: "com.example.Slowest",
		},
		{
			name: "gradle format in a single split",
			args: []string{"-i", "0", "-t", "1", "-g", "**/*.java", "-j", "**/TEST-*.xml", "-w", dir,
				"-f", "gradle", "-n", "zero"},
			expected: "--tests com.example.Slowest --tests com.example.Slow --tests com.example.Fast " +
				"--tests com.example.NoTimingA --tests com.example.NoTimingB",
		},
		{
			name:     "excluded classes",
			args:     []string{"-i", "0", "-t", "1", "-g", "**/*.java", "-e", "**/NoTiming*", "-w", dir},
			expected: "com.example.Fast com.example.Slow com.example.Slowest",
		},
		{
			name:     "more splits than tests",
			args:     []string{"-i", "6", "-t", "7", "-g", "**/*.java", "-w", dir},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := execute(tt.args...)
			require.Equal(t, 0, result.code, result.stderr)
			assert.Equal(t, tt.expected, result.stdout)
		})
	}
}

func TestExecute_Failures(t *testing.T) {
	dir := newProject(t)

	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{
			name:    "missing split index",
			args:    []string{"-t", "2", "-g", "**/*.java", "-w", dir},
			message: "Error: --split-index is required",
		},
		{
			name:    "split index out of range",
			args:    []string{"-i", "2", "-t", "2", "-g", "**/*.java", "-w", dir},
			message: "Error: --split-index must be less than --split-total",
		},
		{
			name:    "unknown flag",
			args:    []string{"--splits", "2"},
			message: "Error: unknown flag: --splits",
		},
		{
			name:    "no test classes",
			args:    []string{"-i", "0", "-t", "2", "-g", "**/*Spec.groovy", "-w", dir},
			message: "Error: discovery failed: found no test classes",
		},
		{
			name:    "unexpected argument",
			args:    []string{"-i", "0", "-t", "2", "-g", "**/*.java", "-w", dir, "extra"},
			message: `Error: unknown command "extra" for "split-tests"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := execute(tt.args...)
			assert.Equal(t, 1, result.code)
			assert.Empty(t, result.stdout)
			assert.Contains(t, result.stderr, tt.message)
		})
	}
}

func TestExecute_Help(t *testing.T) {
	result := execute("-h")
	assert.Equal(t, 0, result.code)
	assert.Contains(t, result.stdout, "--split-index")
	assert.Contains(t, result.stdout, "--max-optimal-total-split-calculations")
	assert.NotContains(t, result.stdout, "--average-time")
}

func TestExecute_Version(t *testing.T) {
	result := execute("version")
	assert.Equal(t, 0, result.code)
	assert.Equal(t, "split-tests 1.2.3\n  commit: abc\n  built:  today\n", result.stdout)
}

func TestExecute_PlanOutput(t *testing.T) {
	dir := newProject(t)
	planPath := filepath.Join(t.TempDir(), "plan.yaml")

	result := execute("-i", "0", "-t", "3", "-g", "**/*.java", "-j", "**/TEST-*.xml", "-w", dir,
		"--summary", "--plan-output", planPath, "-c", "-d")
	require.Equal(t, 0, result.code, result.stderr)

	assert.Equal(t, "com.example.Slowest", result.stdout)
	assert.Contains(t, result.stderr, "Test Split Plan")
	assert.Contains(t, result.stderr, "level=debug")
	assert.Contains(t, result.stderr, "The optimal --split-total value for this test suite is 2")

	data, err := os.ReadFile(planPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "optimal_split_total: 2")
	assert.Contains(t, string(data), "name: com.example.NoTimingA")
}

func TestExecute_DeprecatedAverageTime(t *testing.T) {
	dir := newProject(t)

	tests := []struct {
		name     string
		args     []string
		expected string
		summary  bool
	}{
		{
			name:     "short flag",
			args:     []string{"-i", "1", "-t", "2", "-g", "**/*.java", "-j", "**/TEST-*.xml", "-w", dir, "-a"},
			expected: "com.example.NoTimingA com.example.NoTimingB com.example.Slow com.example.Fast",
		},
		{
			name: "with summary",
			args: []string{"-i", "1", "-t", "2", "-g", "**/*.java", "-j", "**/TEST-*.xml", "-w", dir,
				"-a", "--summary"},
			expected: "com.example.NoTimingA com.example.NoTimingB com.example.Slow com.example.Fast",
			summary:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := execute(tt.args...)
			require.Equal(t, 0, result.code, result.stderr)

			// nothing but the test split on stdout
			assert.Equal(t, tt.expected, result.stdout)
			assert.Contains(t, result.stderr, cli.AverageTimeDeprecation)
			if tt.summary {
				assert.Contains(t, result.stderr, "Test Split Plan")
			}
		})
	}
}
