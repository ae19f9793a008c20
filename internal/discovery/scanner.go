package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"
)

// Scanner scans for files matching a Filter in a directory
type Scanner struct {
	skipDirs map[string]bool
	log      logrus.FieldLogger
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string, log logrus.FieldLogger) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap, log: log}
}

// Scan finds all files below root accepted by the filter, sorted by path
func (s *Scanner) Scan(ctx context.Context, root string, filter *Filter) ([]string, error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("working directory does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("working directory is not a directory: %s", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// unreadable entries are skipped, the walk goes on
			s.log.Debugf("Skipping unreadable path %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			if path != root && s.skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() && d.Type()&fs.ModeSymlink == 0 {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if !filter.Includes(path, rel) {
			return nil
		}
		if filter.Excludes(path, rel) {
			s.log.Debugf("Excluding file %s", path)
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
