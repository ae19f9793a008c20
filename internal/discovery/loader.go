package discovery

import (
	"context"
	"runtime"
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"splittests/internal/domain"
)

// Progress receives one tick per parsed source file
type Progress interface {
	Add(n int)
	Finish()
}

// Loader turns test source files into the set of runnable test class names
type Loader struct {
	parser      *Parser
	parallelism int
	progress    Progress
	log         logrus.FieldLogger
}

// NewLoader creates a Loader parsing up to parallelism files at once
func NewLoader(parser *Parser, parallelism int, log logrus.FieldLogger) *Loader {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	return &Loader{
		parser:      parser,
		parallelism: parallelism,
		log:         log,
	}
}

// SetProgress sets the progress reporter for the loader
func (l *Loader) SetProgress(progress Progress) {
	l.progress = progress
}

// ClassNames parses every path and returns the sorted, unique names of the runnable
// test classes. Interfaces, abstract classes and disabled classes are skipped.
func (l *Loader) ClassNames(ctx context.Context, paths []string) ([]string, error) {
	infos := make([]ClassInfo, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(l.parallelism)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			info, err := l.parser.ParseFile(path)
			if err != nil {
				return &domain.DiscoveryError{Path: path, Err: err}
			}
			infos[i] = info
			if l.progress != nil {
				l.progress.Add(1)
			}
			return nil
		})
	}
	err := g.Wait()
	if l.progress != nil {
		l.progress.Finish()
	}
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(infos))
	classNames := make([]string, 0, len(infos))
	for _, info := range infos {
		name := info.QualifiedName()
		if reason := info.SkipReason(); reason != "" {
			l.log.Infof("Skipping %s %s", reason, name)
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		classNames = append(classNames, name)
	}
	sort.Strings(classNames)

	if len(classNames) == 0 {
		return nil, &domain.DiscoveryError{Err: ErrNoTestClasses}
	}
	l.log.Infof("Found %d test classes", len(classNames))
	return classNames, nil
}
