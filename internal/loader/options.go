package loader

import "strings"

// NewService creates a new loader service with optional configuration
func NewService(options ...Option) *Service {
	s := &Service{
		parseVendor:     false,
		parseInternal:   false,
		excludes:        make(map[string]struct{}),
		packagePrefix:   []string{},
		parseExtension:  ".go",
		useGoPackages:   false,
		parseDependency: ParseNone,
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// WithParseVendor sets whether to parse vendor directories
func WithParseVendor(parse bool) Option {
	return func(s *Service) {
		s.parseVendor = parse
	}
}

// WithParseInternal sets whether to parse GOROOT internal packages
func WithParseInternal(parse bool) Option {
	return func(s *Service) {
		s.parseInternal = parse
	}
}

// WithExcludes registers paths to skip. Entries containing glob
// metacharacters are matched as doublestar patterns against
// slash-separated paths; plain entries are matched exactly.
func WithExcludes(excludes []string) Option {
	return func(s *Service) {
		for _, exclude := range excludes {
			exclude = strings.TrimSpace(exclude)
			if exclude == "" {
				continue
			}
			if strings.ContainsAny(exclude, "*?[{") {
				s.excludePatterns = append(s.excludePatterns, exclude)
				continue
			}
			s.excludes[exclude] = struct{}{}
		}
	}
}

// WithPackagePrefix sets package path prefixes to filter
func WithPackagePrefix(prefixes []string) Option {
	return func(s *Service) {
		s.packagePrefix = prefixes
	}
}

// WithParseExtension sets the file extension to parse
func WithParseExtension(ext string) Option {
	return func(s *Service) {
		s.parseExtension = ext
	}
}

// WithGoPackages sets whether to use go/packages
func WithGoPackages(use bool) Option {
	return func(s *Service) {
		s.useGoPackages = use
	}
}

// WithParseDependency sets the dependency parsing flag
func WithParseDependency(flag ParseFlag) Option {
	return func(s *Service) {
		s.parseDependency = flag
	}
}

// WithConcurrency caps the number of files parsed at once. Zero or
// negative means one worker per CPU.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		s.concurrency = n
	}
}
