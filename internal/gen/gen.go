// Package gen drives a full generation run: load the manifest, parse
// the declaration sources, build the document, and write the requested
// output files.
package gen

import (
	"bytes"
	"context"
	"fmt"
	"go/format"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/goccy/go-json"
	"sigs.k8s.io/yaml"

	"github.com/oasbuild/oasgen"
	"github.com/oasbuild/oasgen/internal/builder"
	"github.com/oasbuild/oasgen/internal/console"
	"github.com/oasbuild/oasgen/internal/loader"
	"github.com/oasbuild/oasgen/internal/manifest"
	"github.com/oasbuild/oasgen/internal/registry"
	"github.com/oasbuild/oasgen/internal/schema"
	"github.com/oasbuild/oasgen/internal/source"
)

type genTypeWriter func(*Config, *openapi3.T) error

// Gen presents a generate tool for oasgen.
type Gen struct {
	json          func(data interface{}) ([]byte, error)
	jsonIndent    func(data interface{}) ([]byte, error)
	jsonToYAML    func(data []byte) ([]byte, error)
	outputTypeMap map[string]genTypeWriter
}

// New creates a new Gen.
func New() *Gen {
	gen := Gen{
		json: json.Marshal,
		jsonIndent: func(data interface{}) ([]byte, error) {
			return json.MarshalIndent(data, "", "    ")
		},
		jsonToYAML: yaml.JSONToYAML,
	}

	gen.outputTypeMap = map[string]genTypeWriter{
		"go":   gen.writeDocGo,
		"json": gen.writeJSONDoc,
		"yaml": gen.writeYAMLDoc,
		"yml":  gen.writeYAMLDoc,
	}

	return &gen
}

// Config presents Gen configurations.
type Config struct {
	// ManifestFile is the route manifest the document is built from
	ManifestFile string

	// SearchDir the generator would parse,comma separated if multiple
	SearchDir string

	// excludes dirs and files in SearchDir,comma separated; entries with
	// glob metacharacters are matched as patterns
	Excludes string

	// outputs only specific extension
	ParseExtension string

	// OutputDir represents the output directory for all the generated files
	OutputDir string

	// OutputTypes define types of files which should be generated
	OutputTypes []string

	// PropNamingStrategy represents property naming strategy like snake case,camel case,pascal case
	PropNamingStrategy string

	// InstanceName is used to get distinct names for different documents in the
	// same project. The default value is "openapi".
	InstanceName string

	// PackageName defines package name of generated `docs.go`
	PackageName string

	// ParseVendor whether the generator should parse vendor folders
	ParseVendor bool

	// ParseDependency whether to parse types in dependencies: 0 none, 1 models, 2 operations, 3 all
	ParseDependency int

	// ParseInternal whether to parse GOROOT internal packages
	ParseInternal bool

	// ParseGoPackages whether to use golang.org/x/tools/go/packages for discovery
	ParseGoPackages bool

	// Parse only packages whose import path match the given prefix, comma separated
	PackagePrefix string

	// Concurrency caps how many files are parsed at once; zero means one per CPU
	Concurrency int

	// GeneratedTime whether to generate the timestamp at the top of docs.go
	GeneratedTime bool

	// LeftTemplateDelim defines the left delimiter for the template generation
	LeftTemplateDelim string

	// RightTemplateDelim defines the right delimiter for the template generation
	RightTemplateDelim string

	// Validate re-parses the finished document and validates it before writing
	Validate bool

	// Quiet suppresses all console output
	Quiet bool

	// Debug enables debug output
	Debug bool
}

// Build assembles the OpenAPI document for the given manifest and
// search directories and writes the configured output files.
func (g *Gen) Build(config *Config) error {
	if config.Quiet {
		console.Logger.SetQuiet(true)
	}
	if config.Debug {
		console.Logger.DebugLevel = 1
	}
	if config.InstanceName == "" {
		config.InstanceName = oasgen.Name
	}
	if config.LeftTemplateDelim == "" {
		config.LeftTemplateDelim = "{{"
	}
	if config.RightTemplateDelim == "" {
		config.RightTemplateDelim = "}}"
	}

	searchDirs := strings.Split(config.SearchDir, ",")
	if !config.ParseGoPackages { // packages.Load supports patterns like ./...
		for _, searchDir := range searchDirs {
			if _, err := os.Stat(searchDir); os.IsNotExist(err) {
				return fmt.Errorf("dir: %s does not exist", searchDir)
			}
		}
	}

	if config.PropNamingStrategy != "" && !source.ValidNamingStrategy(config.PropNamingStrategy) {
		return fmt.Errorf("unknown property naming strategy: %s", config.PropNamingStrategy)
	}

	m, err := manifest.Load(config.ManifestFile)
	if err != nil {
		return err
	}

	console.Logger.Debug("Generate OpenAPI docs....")

	loaderOptions := []loader.Option{
		loader.WithParseVendor(config.ParseVendor),
		loader.WithParseInternal(config.ParseInternal),
		loader.WithParseDependency(loader.ParseFlag(config.ParseDependency)),
		loader.WithGoPackages(config.ParseGoPackages),
		loader.WithExcludes(parseExcludes(config.Excludes)),
		loader.WithPackagePrefix(parseCommaList(config.PackagePrefix)),
		loader.WithConcurrency(config.Concurrency),
	}
	if config.ParseExtension != "" {
		ext := config.ParseExtension
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		loaderOptions = append(loaderOptions, loader.WithParseExtension(ext))
	}

	sources, err := loader.NewService(loaderOptions...).Load(searchDirs)
	if err != nil {
		return err
	}
	if config.PropNamingStrategy != "" {
		sources.SetPropertyNamingStrategy(config.PropNamingStrategy)
	}

	docBuilder := builder.New(registry.NewService(sources), schema.NewBuilder())

	doc, err := docBuilder.Build(m)
	if err != nil {
		return err
	}

	if config.Validate {
		if err := g.validate(doc); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(config.OutputDir, os.ModePerm); err != nil {
		return err
	}

	for _, outputType := range config.OutputTypes {
		outputType = strings.ToLower(strings.TrimSpace(outputType))
		if typeWriter, ok := g.outputTypeMap[outputType]; ok {
			if err := typeWriter(config, doc); err != nil {
				return err
			}
		} else {
			console.Logger.Warn("output type '%s' not supported", outputType)
		}
	}

	return nil
}

// validate round-trips the document through the openapi3 loader so the
// output is checked the same way a consumer would read it.
func (g *Gen) validate(doc *openapi3.T) error {
	data, err := g.json(doc)
	if err != nil {
		return err
	}

	parsed, err := openapi3.NewLoader().LoadFromData(data)
	if err != nil {
		return fmt.Errorf("generated document does not parse: %w", err)
	}
	if err := parsed.Validate(context.Background()); err != nil {
		return fmt.Errorf("generated document is not valid: %w", err)
	}

	return nil
}

func (g *Gen) writeDocGo(config *Config, doc *openapi3.T) error {
	filename := "docs.go"

	if config.InstanceName != oasgen.Name {
		filename = config.InstanceName + "_" + filename
	}

	docFileName := path.Join(config.OutputDir, filename)

	absOutputDir, err := filepath.Abs(config.OutputDir)
	if err != nil {
		return err
	}

	var packageName string
	if len(config.PackageName) > 0 {
		packageName = config.PackageName
	} else {
		packageName = filepath.Base(absOutputDir)
		packageName = strings.ReplaceAll(packageName, "-", "_")
	}

	docs, err := os.Create(docFileName)
	if err != nil {
		return err
	}
	defer docs.Close()

	err = g.writeGoDoc(packageName, docs, doc, config)
	if err != nil {
		return err
	}

	console.Logger.Debug("create docs.go at %+v", docFileName)

	return nil
}

func (g *Gen) writeJSONDoc(config *Config, doc *openapi3.T) error {
	filename := "openapi.json"

	if config.InstanceName != oasgen.Name {
		filename = config.InstanceName + "_" + filename
	}

	jsonFileName := path.Join(config.OutputDir, filename)

	b, err := g.jsonIndent(doc)
	if err != nil {
		return err
	}

	err = g.writeFile(b, jsonFileName)
	if err != nil {
		return err
	}

	console.Logger.Debug("create openapi.json at %+v", jsonFileName)

	return nil
}

func (g *Gen) writeYAMLDoc(config *Config, doc *openapi3.T) error {
	filename := "openapi.yaml"

	if config.InstanceName != oasgen.Name {
		filename = config.InstanceName + "_" + filename
	}

	yamlFileName := path.Join(config.OutputDir, filename)

	b, err := g.json(doc)
	if err != nil {
		return err
	}

	y, err := g.jsonToYAML(b)
	if err != nil {
		return fmt.Errorf("cannot covert json to yaml error: %s", err)
	}

	err = g.writeFile(y, yamlFileName)
	if err != nil {
		return err
	}

	console.Logger.Debug("create openapi.yaml at %+v", yamlFileName)

	return nil
}

func (g *Gen) writeFile(b []byte, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	defer f.Close()

	_, err = f.Write(b)

	return err
}

func (g *Gen) formatSource(src []byte) []byte {
	code, err := format.Source(src)
	if err != nil {
		code = src // Formatter failed, return original code.
	}

	return code
}

func (g *Gen) writeGoDoc(packageName string, output io.Writer, doc *openapi3.T, config *Config) error {
	generator, err := template.New("openapi_info").Funcs(template.FuncMap{
		"printDoc": func(v string) string {
			// Add servers
			v = "{\n    \"servers\": " + config.LeftTemplateDelim + " marshal .Servers " + config.RightTemplateDelim + "," + v[1:]
			// Sanitize backticks
			return strings.Replace(v, "`", "`+\"`\"+`", -1)
		},
	}).Parse(packageTemplate)
	if err != nil {
		return err
	}

	// The written template carries placeholders for the fields a client
	// may override at runtime through the registered Spec.
	docCopy := *doc
	docCopy.Servers = nil
	docCopy.Info = &openapi3.Info{
		Description:    config.LeftTemplateDelim + "escape .Description" + config.RightTemplateDelim,
		Title:          config.LeftTemplateDelim + ".Title" + config.RightTemplateDelim,
		Version:        config.LeftTemplateDelim + ".Version" + config.RightTemplateDelim,
		TermsOfService: doc.Info.TermsOfService,
		Contact:        doc.Info.Contact,
		License:        doc.Info.License,
	}

	buf, err := g.jsonIndent(&docCopy)
	if err != nil {
		return err
	}

	servers := make([]oasgen.Server, 0, len(doc.Servers))
	for _, server := range doc.Servers {
		servers = append(servers, oasgen.Server{URL: server.URL, Description: server.Description})
	}

	buffer := &bytes.Buffer{}

	err = generator.Execute(buffer, struct {
		Timestamp          time.Time
		Doc                string
		PackageName        string
		Title              string
		Description        string
		Version            string
		InstanceName       string
		Servers            []oasgen.Server
		GeneratedTime      bool
		LeftTemplateDelim  string
		RightTemplateDelim string
	}{
		Timestamp:          time.Now(),
		GeneratedTime:      config.GeneratedTime,
		Doc:                string(buf),
		PackageName:        packageName,
		Title:              doc.Info.Title,
		Description:        doc.Info.Description,
		Version:            doc.Info.Version,
		InstanceName:       config.InstanceName,
		Servers:            servers,
		LeftTemplateDelim:  config.LeftTemplateDelim,
		RightTemplateDelim: config.RightTemplateDelim,
	})
	if err != nil {
		return err
	}

	code := g.formatSource(buffer.Bytes())

	// write
	_, err = output.Write(code)

	return err
}

var packageTemplate = `// Package {{.PackageName}} Code generated by oasgen{{ if .GeneratedTime }} at {{ .Timestamp }}{{ end }}. DO NOT EDIT
package {{.PackageName}}

import "github.com/oasbuild/oasgen"

const docTemplate{{ if ne .InstanceName "openapi" }}{{ .InstanceName }} {{- end }} = ` + "`{{ printDoc .Doc}}`" + `

// OpenAPIInfo{{ if ne .InstanceName "openapi" }}{{ .InstanceName }} {{- end }} holds exported document info so clients can modify it
var OpenAPIInfo{{ if ne .InstanceName "openapi" }}{{ .InstanceName }} {{- end }} = &oasgen.Spec{
	Version:     {{ printf "%q" .Version}},
	Title:       {{ printf "%q" .Title}},
	Description: {{ printf "%q" .Description}},
	Servers: []oasgen.Server{ {{- range $index, $server := .Servers}}{{if gt $index 0}},{{end}}
		{URL: {{ printf "%q" $server.URL}}, Description: {{ printf "%q" $server.Description}}},
	{{- end}} },
	InfoInstanceName: {{ printf "%q" .InstanceName }},
	OpenAPITemplate:  docTemplate{{ if ne .InstanceName "openapi" }}{{ .InstanceName }} {{- end }},
	LeftDelim:        {{ printf "%q" .LeftTemplateDelim}},
	RightDelim:       {{ printf "%q" .RightTemplateDelim}},
}

func init() {
	oasgen.Register(OpenAPIInfo{{ if ne .InstanceName "openapi" }}{{ .InstanceName }} {{- end }}.InstanceName(), OpenAPIInfo{{ if ne .InstanceName "openapi" }}{{ .InstanceName }} {{- end }})
}
`

// parseExcludes converts the comma-separated exclude string to a list,
// resolving plain paths to absolute so they match walked paths.
func parseExcludes(excludes string) []string {
	var result []string
	for _, exclude := range strings.Split(excludes, ",") {
		exclude = strings.TrimSpace(exclude)
		if exclude == "" {
			continue
		}
		if !strings.ContainsAny(exclude, "*?[{") {
			if abs, err := filepath.Abs(exclude); err == nil {
				exclude = abs
			}
		}
		result = append(result, exclude)
	}
	return result
}

// parseCommaList converts a comma-separated string to a slice.
func parseCommaList(list string) []string {
	if list == "" {
		return []string{}
	}

	result := []string{}
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
