package storage

import (
	"encoding/json"
	"fmt"

	"splittests/internal/domain"
)

// JSONStorage writes plans as indented JSON.
type JSONStorage struct {
	path string
}

// NewJSONStorage returns a Storage writing to path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the output file.
func (s *JSONStorage) Path() string {
	return s.path
}

// Save writes plan to the output file.
func (s *JSONStorage) Save(plan *domain.PlanOutput) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	return writeFile(s.path, data)
}
