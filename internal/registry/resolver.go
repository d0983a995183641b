// Package registry resolves symbolic type names against an ordered
// set of declaration sources.
package registry

import (
	"fmt"

	"github.com/oasbuild/oasgen/internal/console"
	"github.com/oasbuild/oasgen/internal/source"
)

// TypeNotFoundError reports a type name that no declaration source
// declares. It aborts the route or document build that referenced
// the name.
type TypeNotFoundError struct {
	Name string
}

func (e *TypeNotFoundError) Error() string {
	return fmt.Sprintf("type %q not found in any declaration source", e.Name)
}

// Service is the type resolver. It scans the source set in order and
// returns the first matching structural handle, so a name declared in
// two sources resolves to the earlier one. Sources that fail to parse
// never enter the set; a miss in one source just moves the scan to
// the next.
type Service struct {
	sources *source.Set
}

// NewService builds a resolver over the given source set.
func NewService(sources *source.Set) *Service {
	return &Service{sources: sources}
}

// Sources returns the underlying source set.
func (s *Service) Sources() *source.Set {
	return s.sources
}

// Resolve looks up a type by name. Aliases resolve to the aliased
// structural type, never the alias symbol itself.
func (s *Service) Resolve(name string) (*source.TypeHandle, error) {
	if name == "" {
		return nil, &TypeNotFoundError{Name: name}
	}
	handle, ok := s.sources.Lookup(name)
	if !ok {
		return nil, &TypeNotFoundError{Name: name}
	}
	console.Logger.Debug("resolved type %s", name)
	return handle, nil
}
