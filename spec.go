package oasgen

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/goccy/go-json"
)

// Server is one entry of the document's servers array.
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// Spec holds exported document info so clients can modify it at
// runtime before the document is served.
type Spec struct {
	Version          string
	Title            string
	Description      string
	Servers          []Server
	InfoInstanceName string
	OpenAPITemplate  string
	LeftDelim        string
	RightDelim       string
}

// ReadDoc renders OpenAPITemplate with the current field values into
// the final document.
func (s *Spec) ReadDoc() string {
	s.Description = strings.ReplaceAll(s.Description, "\n", "\\n")

	tpl := template.New("openapi_info").Funcs(template.FuncMap{
		"marshal": func(v interface{}) string {
			a, _ := json.Marshal(v)
			return string(a)
		},
		"escape": func(v interface{}) string {
			// escape tabs
			str := strings.ReplaceAll(v.(string), "\t", "\\t")
			// replace " with \", and if that results in \\", replace that with \\\"
			str = strings.ReplaceAll(str, "\"", "\\\"")
			return strings.ReplaceAll(str, "\\\\\"", "\\\\\\\"")
		},
	})

	if s.LeftDelim != "" && s.RightDelim != "" {
		tpl = tpl.Delims(s.LeftDelim, s.RightDelim)
	}

	parsed, err := tpl.Parse(s.OpenAPITemplate)
	if err != nil {
		return s.OpenAPITemplate
	}

	var doc bytes.Buffer
	if err := parsed.Execute(&doc, s); err != nil {
		return s.OpenAPITemplate
	}

	return doc.String()
}

// InstanceName returns the instance name of the document.
func (s *Spec) InstanceName() string {
	return s.InfoInstanceName
}
