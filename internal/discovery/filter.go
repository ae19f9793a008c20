package discovery

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"splittests/internal/domain"
)

// Filter matches file paths against an include and an optional exclude glob.
// Globs use "**" for any number of directories and "*" within a single path segment.
type Filter struct {
	include string
	exclude string
}

// NewFilter validates the globs and creates a new Filter
func NewFilter(include, exclude string) (*Filter, error) {
	if include == "" {
		return nil, domain.NewArgumentError("glob must not be empty")
	}
	if !doublestar.ValidatePattern(filepath.ToSlash(include)) {
		return nil, domain.NewArgumentError("invalid glob pattern %q", include)
	}
	if exclude != "" && !doublestar.ValidatePattern(filepath.ToSlash(exclude)) {
		return nil, domain.NewArgumentError("invalid exclude glob pattern %q", exclude)
	}
	return &Filter{
		include: filepath.ToSlash(include),
		exclude: filepath.ToSlash(exclude),
	}, nil
}

// Includes reports whether the file at the absolute path abs, which is rel relative
// to the scanned root, matches the include glob
func (f *Filter) Includes(abs, rel string) bool {
	return match(f.include, abs, rel)
}

// Excludes reports whether the file matches the exclude glob
func (f *Filter) Excludes(abs, rel string) bool {
	if f.exclude == "" {
		return false
	}
	return match(f.exclude, abs, rel)
}

// match tries the glob against the absolute and the root-relative form of the path
func match(pattern, abs, rel string) bool {
	for _, candidate := range []string{filepath.ToSlash(rel), filepath.ToSlash(abs)} {
		if ok, err := doublestar.Match(pattern, candidate); err == nil && ok {
			return true
		}
	}
	return false
}
