package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"splittests/internal/domain"
)

// Storage persists a computed split plan (the --plan-output file).
type Storage interface {
	Save(plan *domain.PlanOutput) error
	Path() string
}

// New returns the Storage matching the extension of path.
// .yaml and .yml select YAML, everything else is written as JSON.
func New(path string) Storage {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewYAMLStorage(path)
	default:
		return NewJSONStorage(path)
	}
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	return nil
}
