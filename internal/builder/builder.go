// Package builder assembles an OpenAPI 3.0 document from a route
// manifest and the type declarations reachable through the resolver.
package builder

import (
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/oasbuild/oasgen/internal/console"
	"github.com/oasbuild/oasgen/internal/manifest"
	"github.com/oasbuild/oasgen/internal/registry"
	"github.com/oasbuild/oasgen/internal/schema"
)

const openAPIVersion = "3.0.0"

// Service owns the document skeleton and the route-to-operation
// translation. Schema inference and component registration are
// delegated to the resolver and schema builder; each distinct type
// name is resolved and registered once per build.
type Service struct {
	resolver   *registry.Service
	schemas    *schema.Builder
	registered map[string]*openapi3.Schema
}

// New creates a document builder.
func New(resolver *registry.Service, schemas *schema.Builder) *Service {
	return &Service{
		resolver:   resolver,
		schemas:    schemas,
		registered: make(map[string]*openapi3.Schema),
	}
}

// Build assembles the full document: info, servers, security schemes,
// one operation per route, and the component schemas collected while
// inferring referenced types.
func (s *Service) Build(m *manifest.Manifest) (*openapi3.T, error) {
	doc := &openapi3.T{
		OpenAPI: openAPIVersion,
		Info:    buildInfo(m.Info),
		Paths:   openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas:         s.schemas.Definitions(),
			SecuritySchemes: buildSecuritySchemes(m.SecuritySchemes),
		},
	}

	for _, server := range m.Servers {
		doc.Servers = append(doc.Servers, &openapi3.Server{
			URL:         server.URL,
			Description: server.Description,
		})
	}

	for i := range m.Routes {
		route := &m.Routes[i]
		operation, err := s.buildOperation(route)
		if err != nil {
			return nil, err
		}
		setOperation(doc.Paths, route.Method, route.Path, operation)
		console.Logger.Debug("built operation %s %s", route.Method, route.Path)
	}

	return doc, nil
}

func buildInfo(info manifest.Info) *openapi3.Info {
	out := &openapi3.Info{
		Title:          info.Title,
		Description:    info.Description,
		TermsOfService: info.TermsOfService,
		Version:        info.Version,
	}
	if out.Title == "" {
		out.Title = "API Documentation"
	}
	if out.Version == "" {
		out.Version = "1.0.0"
	}
	if info.Contact != nil {
		out.Contact = &openapi3.Contact{
			Name:  info.Contact.Name,
			URL:   info.Contact.URL,
			Email: info.Contact.Email,
		}
	}
	if info.License != nil {
		out.License = &openapi3.License{
			Name: info.License.Name,
			URL:  info.License.URL,
		}
	}
	return out
}

func setOperation(paths *openapi3.Paths, method, path string, operation *openapi3.Operation) {
	item := paths.Value(path)
	if item == nil {
		item = &openapi3.PathItem{}
		paths.Set(path, item)
	}

	switch strings.ToUpper(method) {
	case http.MethodGet:
		item.Get = operation
	case http.MethodPost:
		item.Post = operation
	case http.MethodPut:
		item.Put = operation
	case http.MethodPatch:
		item.Patch = operation
	case http.MethodDelete:
		item.Delete = operation
	case http.MethodHead:
		item.Head = operation
	case http.MethodOptions:
		item.Options = operation
	case http.MethodTrace:
		item.Trace = operation
	}
}
