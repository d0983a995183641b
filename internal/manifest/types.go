// Package manifest models the declarative API description consumed by
// the document builder: document info, servers, security schemes, and
// routes with their parameters and responses.
package manifest

// Manifest is one API document description, loaded from a YAML or
// JSON file.
type Manifest struct {
	Info            Info                      `json:"info"`
	Servers         []Server                  `json:"servers,omitempty"`
	SecuritySchemes map[string]SecurityScheme `json:"securitySchemes,omitempty"`
	Routes          []Route                   `json:"routes"`
}

// Info carries the document header fields.
type Info struct {
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Version        string   `json:"version"`
	TermsOfService string   `json:"termsOfService,omitempty"`
	Contact        *Contact `json:"contact,omitempty"`
	License        *License `json:"license,omitempty"`
}

// Contact identifies the API owner.
type Contact struct {
	Name  string `json:"name,omitempty"`
	URL   string `json:"url,omitempty"`
	Email string `json:"email,omitempty"`
}

// License names the API license.
type License struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Server is one entry of the document's servers list.
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// SecurityScheme describes one reusable security scheme. Type selects
// the variant: apiKey uses Name/In, http uses Scheme/BearerFormat,
// oauth2 uses Flow and the flow URLs.
type SecurityScheme struct {
	Type             string            `json:"type"`
	Description      string            `json:"description,omitempty"`
	Name             string            `json:"name,omitempty"`
	In               string            `json:"in,omitempty"`
	Scheme           string            `json:"scheme,omitempty"`
	BearerFormat     string            `json:"bearerFormat,omitempty"`
	Flow             string            `json:"flow,omitempty"`
	AuthorizationURL string            `json:"authorizationUrl,omitempty"`
	TokenURL         string            `json:"tokenUrl,omitempty"`
	Scopes           map[string]string `json:"scopes,omitempty"`
}

// Route describes one operation. RequestType and the response Type
// fields are symbolic type names resolved against the declaration
// sources during the document build.
type Route struct {
	Method      string                `json:"method"`
	Path        string                `json:"path"`
	Summary     string                `json:"summary,omitempty"`
	Description string                `json:"description,omitempty"`
	Tags        []string              `json:"tags,omitempty"`
	OperationID string                `json:"operationId,omitempty"`
	Deprecated  bool                  `json:"deprecated,omitempty"`
	Security    []map[string][]string `json:"security,omitempty"`
	Parameters  []Parameter           `json:"parameters,omitempty"`
	RequestType string                `json:"requestType,omitempty"`
	Responses   []Response            `json:"responses,omitempty"`
}

// Parameter describes one operation parameter. Type is a primitive
// wire kind (string, integer, number, boolean), not a symbolic type
// name.
type Parameter struct {
	Name        string        `json:"name"`
	In          string        `json:"in"`
	Type        string        `json:"type,omitempty"`
	Format      string        `json:"format,omitempty"`
	Required    bool          `json:"required,omitempty"`
	Description string        `json:"description,omitempty"`
	Default     interface{}   `json:"default,omitempty"`
	Enum        []interface{} `json:"enum,omitempty"`
	Minimum     *float64      `json:"minimum,omitempty"`
	Maximum     *float64      `json:"maximum,omitempty"`
}

// Response describes one status code of a route.
type Response struct {
	StatusCode  int               `json:"statusCode"`
	Type        string            `json:"type,omitempty"`
	Description string            `json:"description,omitempty"`
	Headers     map[string]Header `json:"headers,omitempty"`
}

// Header describes one response header.
type Header struct {
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Description string `json:"description,omitempty"`
}
