package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/oasbuild/oasgen/internal/console"
	"github.com/oasbuild/oasgen/internal/source"
)

// candidate is a discovered file path tagged with the index of the
// search directory it came from.
type candidate struct {
	dirIndex int
	path     string
}

// parsedSource pairs a parsed file with its origin for deterministic
// ordering of the final set.
type parsedSource struct {
	dirIndex int
	path     string
	file     *source.File
}

// Load discovers Go files under the search directories and parses them
// into a source set. Search directories keep their given order and
// files within a directory are ordered by path, so type resolution
// scans sources in a stable order across runs.
func (s *Service) Load(searchDirs []string) (*source.Set, error) {
	if s.useGoPackages {
		return s.LoadWithGoPackages(searchDirs)
	}

	candidates, err := s.collectSearchDirs(searchDirs)
	if err != nil {
		return nil, err
	}

	return s.parseAll(candidates)
}

// collectSearchDirs walks every search directory and returns the files
// that survive the skip rules.
func (s *Service) collectSearchDirs(searchDirs []string) ([]candidate, error) {
	var candidates []candidate
	seen := make(map[string]struct{})

	for dirIndex, searchDir := range searchDirs {
		absDir, err := filepath.Abs(searchDir)
		if err != nil {
			return nil, err
		}

		packageDir, err := getPkgName(absDir)
		if err != nil {
			console.Logger.Debug("failed to get package name in dir %s: %s", absDir, err)
			packageDir = ""
		}
		if s.skipPackageByPrefix(packageDir) {
			continue
		}

		err = filepath.Walk(absDir, func(path string, f os.FileInfo, wError error) error {
			if wError != nil {
				return fmt.Errorf("failed to access path %q, err: %v", path, wError)
			}

			if err := s.shouldSkipDir(path, f); err != nil {
				return err
			}
			if f.IsDir() {
				return nil
			}
			if s.shouldSkipFile(path) {
				return nil
			}
			if _, ok := seen[path]; ok {
				return nil
			}

			seen[path] = struct{}{}
			candidates = append(candidates, candidate{dirIndex: dirIndex, path: path})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return candidates, nil
}

// parseAll parses the candidates concurrently using an errgroup bounded
// by the worker count. A file that cannot be read or parsed is skipped
// with a warning so one broken source does not abort the whole load.
// Results are sorted back into discovery order before they are added to
// the set, keeping resolution deterministic regardless of goroutine
// scheduling.
func (s *Service) parseAll(candidates []candidate) (*source.Set, error) {
	var (
		mu        sync.Mutex
		collected []parsedSource
	)

	var g errgroup.Group
	g.SetLimit(s.workers())

	for _, c := range candidates {
		c := c

		g.Go(func() error {
			file, err := source.Parse(c.path, nil)
			if err != nil {
				console.Logger.Warn("skipping unreadable source %s: %s", c.path, err)
				return nil
			}

			mu.Lock()
			collected = append(collected, parsedSource{dirIndex: c.dirIndex, path: c.path, file: file})
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(collected, func(i, j int) bool {
		if collected[i].dirIndex != collected[j].dirIndex {
			return collected[i].dirIndex < collected[j].dirIndex
		}
		return collected[i].path < collected[j].path
	})

	set := source.NewSet()
	for _, p := range collected {
		set.Add(p.file)
	}

	console.Logger.Debug("parsed %d declaration sources", set.Len())
	return set, nil
}

func (s *Service) workers() int {
	if s.concurrency > 0 {
		return s.concurrency
	}
	return runtime.NumCPU()
}

// shouldSkipFile checks if a file should be skipped
func (s *Service) shouldSkipFile(path string) bool {
	if strings.HasSuffix(strings.ToLower(path), "_test.go") {
		return true
	}
	if filepath.Ext(path) != s.parseExtension {
		return true
	}
	return s.matchesExcludePattern(path)
}

// shouldSkipDir checks if a directory should be skipped
func (s *Service) shouldSkipDir(path string, f os.FileInfo) error {
	if !f.IsDir() {
		return nil
	}

	if !s.parseVendor && f.Name() == "vendor" {
		return filepath.SkipDir
	}
	if f.Name() == "docs" {
		return filepath.SkipDir
	}
	if len(f.Name()) > 1 && f.Name()[0] == '.' && f.Name() != ".." {
		return filepath.SkipDir
	}

	if _, ok := s.excludes[path]; ok {
		return filepath.SkipDir
	}
	if s.matchesExcludePattern(path) {
		return filepath.SkipDir
	}

	return nil
}

func (s *Service) matchesExcludePattern(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, pattern := range s.excludePatterns {
		if ok, err := doublestar.Match(pattern, slashed); err == nil && ok {
			return true
		}
	}
	return false
}

// skipPackageByPrefix checks if a package should be skipped based on prefix
func (s *Service) skipPackageByPrefix(pkgpath string) bool {
	if len(s.packagePrefix) == 0 {
		return false
	}
	for _, prefix := range s.packagePrefix {
		if strings.HasPrefix(pkgpath, prefix) {
			return false
		}
	}
	return true
}
