package storage

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"splittests/internal/domain"
)

// YAMLStorage writes plans as YAML.
type YAMLStorage struct {
	path string
}

// NewYAMLStorage returns a Storage writing to path.
func NewYAMLStorage(path string) *YAMLStorage {
	return &YAMLStorage{path: path}
}

// Path returns the output file.
func (s *YAMLStorage) Path() string {
	return s.path
}

// Save writes plan to the output file.
func (s *YAMLStorage) Save(plan *domain.PlanOutput) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(plan); err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	return writeFile(s.path, buf.Bytes())
}
