package loader

import (
	"path/filepath"
	"sort"

	"golang.org/x/tools/go/packages"

	"github.com/oasbuild/oasgen/internal/source"
)

// LoadWithGoPackages discovers files through go/packages instead of a
// directory walk. This follows import edges, so dependency types can be
// resolved when parseDependency is enabled.
func (s *Service) LoadWithGoPackages(searchDirs []string) (*source.Set, error) {
	mode := packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedImports
	if s.parseDependency > 0 {
		mode |= packages.NeedDeps
	}

	absDirs := make([]string, 0, len(searchDirs))
	for _, dir := range searchDirs {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		absDirs = append(absDirs, absDir+"/...")
	}

	pkgs, err := packages.Load(&packages.Config{Mode: mode}, absDirs...)
	if err != nil {
		return nil, err
	}
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			return nil, e
		}
	}

	candidates := s.collectPackages(pkgs)
	return s.parseAll(candidates)
}

// collectPackages walks the loaded packages, following import edges
// when dependency parsing is on. Imports are visited in sorted order so
// the resulting set is stable.
func (s *Service) collectPackages(pkgs []*packages.Package) []candidate {
	var candidates []candidate
	pkgSeen := make(map[string]struct{})
	fileSeen := make(map[string]struct{})
	s.collectPackagesInternal(pkgs, &candidates, pkgSeen, fileSeen)
	return candidates
}

func (s *Service) collectPackagesInternal(pkgs []*packages.Package, candidates *[]candidate, pkgSeen, fileSeen map[string]struct{}) {
	for _, pkg := range pkgs {
		if s.skipPackageByPrefix(pkg.PkgPath) {
			continue
		}
		if _, ok := pkgSeen[pkg.PkgPath]; ok {
			continue
		}
		pkgSeen[pkg.PkgPath] = struct{}{}

		for _, file := range pkg.CompiledGoFiles {
			if s.shouldSkipFile(file) {
				continue
			}
			if _, ok := fileSeen[file]; ok {
				continue
			}
			fileSeen[file] = struct{}{}
			*candidates = append(*candidates, candidate{path: file})
		}

		if s.parseDependency > 0 {
			names := make([]string, 0, len(pkg.Imports))
			for name := range pkg.Imports {
				names = append(names, name)
			}
			sort.Strings(names)

			imports := make([]*packages.Package, 0, len(names))
			for _, name := range names {
				imports = append(imports, pkg.Imports[name])
			}
			s.collectPackagesInternal(imports, candidates, pkgSeen, fileSeen)
		}
	}
}
