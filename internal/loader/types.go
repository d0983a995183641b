package loader

// ParseFlag determines what to parse
type ParseFlag int

const (
	// ParseNone parse nothing
	ParseNone ParseFlag = 0x00
	// ParseModels parse models
	ParseModels = 0x01
	// ParseOperations parse operations
	ParseOperations = 0x02
	// ParseAll parse operations and models
	ParseAll = ParseOperations | ParseModels
)

// Service discovers Go declaration sources on disk and parses them
// into an ordered source set.
type Service struct {
	parseVendor     bool
	parseInternal   bool
	excludes        map[string]struct{}
	excludePatterns []string
	packagePrefix   []string
	parseExtension  string
	useGoPackages   bool
	parseDependency ParseFlag
	concurrency     int
}

// Option is a functional option for configuring Service
type Option func(*Service)
