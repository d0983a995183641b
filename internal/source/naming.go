package source

import "github.com/stoewer/go-strcase"

// Property naming strategies.
const (
	CamelCase  = "camelcase"
	SnakeCase  = "snakecase"
	PascalCase = "pascalcase"
)

// ValidNamingStrategy reports whether strategy is a supported
// property naming strategy.
func ValidNamingStrategy(strategy string) bool {
	switch strategy {
	case CamelCase, SnakeCase, PascalCase, "":
		return true
	}
	return false
}

func applyNamingStrategy(fieldName, strategy string) string {
	switch strategy {
	case SnakeCase:
		return strcase.SnakeCase(fieldName)
	case PascalCase:
		return strcase.UpperCamelCase(fieldName)
	case CamelCase:
		return strcase.LowerCamelCase(fieldName)
	default:
		return strcase.LowerCamelCase(fieldName)
	}
}
