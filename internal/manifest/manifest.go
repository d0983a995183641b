package manifest

import (
	"fmt"
	"os"
	"strings"

	"sigs.k8s.io/yaml"
)

var validMethods = map[string]struct{}{
	"GET":     {},
	"POST":    {},
	"PUT":     {},
	"PATCH":   {},
	"DELETE":  {},
	"HEAD":    {},
	"OPTIONS": {},
	"TRACE":   {},
}

var validParameterIn = map[string]struct{}{
	"path":   {},
	"query":  {},
	"header": {},
	"cookie": {},
}

// Load reads and validates a manifest file. Manifest problems are
// fatal: unlike declaration sources there is no best-effort fallback
// for the document description itself.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

// Parse unmarshals and validates manifest content. YAML and JSON are
// both accepted.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.UnmarshalStrict(data, &m); err != nil {
		return nil, err
	}
	m.normalize()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// normalize uppercases methods and trims surrounding whitespace so
// validation and lookups work on canonical values.
func (m *Manifest) normalize() {
	for i := range m.Routes {
		route := &m.Routes[i]
		route.Method = strings.ToUpper(strings.TrimSpace(route.Method))
		route.Path = strings.TrimSpace(route.Path)
	}
}

// Validate checks the manifest for structural problems a document
// build cannot recover from.
func (m *Manifest) Validate() error {
	if len(m.Routes) == 0 {
		return fmt.Errorf("manifest declares no routes")
	}

	seen := make(map[string]struct{}, len(m.Routes))
	for i := range m.Routes {
		route := &m.Routes[i]
		if err := route.validate(); err != nil {
			return err
		}
		key := route.Method + " " + route.Path
		if _, ok := seen[key]; ok {
			return fmt.Errorf("duplicate route %s", key)
		}
		seen[key] = struct{}{}
	}

	for name, scheme := range m.SecuritySchemes {
		if err := scheme.validate(name); err != nil {
			return err
		}
	}
	return nil
}

func (r *Route) validate() error {
	if r.Path == "" || !strings.HasPrefix(r.Path, "/") {
		return fmt.Errorf("route path %q must start with /", r.Path)
	}
	if _, ok := validMethods[r.Method]; !ok {
		return fmt.Errorf("route %s: unsupported method %q", r.Path, r.Method)
	}
	for i := range r.Parameters {
		parameter := &r.Parameters[i]
		if parameter.Name == "" {
			return fmt.Errorf("route %s %s: parameter with empty name", r.Method, r.Path)
		}
		if _, ok := validParameterIn[parameter.In]; !ok {
			return fmt.Errorf("route %s %s: parameter %s has invalid location %q",
				r.Method, r.Path, parameter.Name, parameter.In)
		}
	}
	for i := range r.Responses {
		response := &r.Responses[i]
		if response.StatusCode < 100 || response.StatusCode > 599 {
			return fmt.Errorf("route %s %s: invalid status code %d",
				r.Method, r.Path, response.StatusCode)
		}
	}
	return nil
}

func (s *SecurityScheme) validate(name string) error {
	switch s.Type {
	case "apiKey":
		if s.Name == "" {
			return fmt.Errorf("security scheme %s: apiKey requires a name", name)
		}
		switch s.In {
		case "header", "query", "cookie":
		default:
			return fmt.Errorf("security scheme %s: apiKey location %q is invalid", name, s.In)
		}
	case "http":
		switch s.Scheme {
		case "basic", "bearer":
		default:
			return fmt.Errorf("security scheme %s: http scheme %q is invalid", name, s.Scheme)
		}
	case "oauth2":
		switch s.Flow {
		case "implicit", "password", "application", "accessCode":
		default:
			return fmt.Errorf("security scheme %s: oauth2 flow %q is invalid", name, s.Flow)
		}
	default:
		return fmt.Errorf("security scheme %s: unsupported type %q", name, s.Type)
	}
	return nil
}
