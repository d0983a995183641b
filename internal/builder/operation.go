package builder

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/oasbuild/oasgen/internal/console"
	"github.com/oasbuild/oasgen/internal/manifest"
)

var titleCaser = cases.Title(language.English)

// buildOperation translates one manifest route into an operation,
// resolving the request and response type names as it goes.
func (s *Service) buildOperation(route *manifest.Route) (*openapi3.Operation, error) {
	operation := &openapi3.Operation{
		Summary:     route.Summary,
		Description: route.Description,
		Tags:        route.Tags,
		OperationID: route.OperationID,
		Deprecated:  route.Deprecated,
	}
	if operation.Summary == "" {
		operation.Summary = defaultSummary(route.Method, route.Path)
	}
	if len(route.Security) > 0 {
		operation.Security = buildSecurityRequirements(route.Security)
	}

	for i := range route.Parameters {
		operation.Parameters = append(operation.Parameters, &openapi3.ParameterRef{
			Value: buildParameter(&route.Parameters[i]),
		})
	}

	if route.RequestType != "" {
		fragment, err := s.schemaFor(route.RequestType, route, "request body")
		if err != nil {
			return nil, err
		}
		operation.RequestBody = &openapi3.RequestBodyRef{
			Value: &openapi3.RequestBody{
				Required: true,
				Content: openapi3.Content{
					"application/json": &openapi3.MediaType{
						Schema: &openapi3.SchemaRef{Value: fragment},
					},
				},
			},
		}
	}

	responses, err := s.buildResponses(route)
	if err != nil {
		return nil, err
	}
	operation.Responses = responses

	return operation, nil
}

func (s *Service) buildResponses(route *manifest.Route) (*openapi3.Responses, error) {
	responses := openapi3.NewResponses()
	if len(route.Responses) == 0 {
		// the default response added by NewResponses keeps the
		// document valid; flag the gap but keep building
		console.Logger.Warn("route %s %s declares no responses", route.Method, route.Path)
		return responses, nil
	}
	responses.Delete("default")

	for i := range route.Responses {
		response := &route.Responses[i]
		description := response.Description
		if description == "" {
			description = http.StatusText(response.StatusCode)
		}

		value := &openapi3.Response{
			Description: &description,
			Headers:     buildHeaders(response.Headers),
		}
		if response.Type != "" {
			fragment, err := s.schemaFor(response.Type, route, fmt.Sprintf("response %d", response.StatusCode))
			if err != nil {
				return nil, err
			}
			value.Content = openapi3.Content{
				"application/json": &openapi3.MediaType{
					Schema: &openapi3.SchemaRef{Value: fragment},
				},
			}
		}
		responses.Set(strconv.Itoa(response.StatusCode), &openapi3.ResponseRef{Value: value})
	}

	return responses, nil
}

// schemaFor resolves a type name and produces its fragment. The
// component registry is written once per distinct name per build;
// later references reuse the memoized fragment instead of re-walking.
// A failed resolution is fatal and carries the route and field that
// referenced the name.
func (s *Service) schemaFor(name string, route *manifest.Route, field string) (*openapi3.Schema, error) {
	if fragment, ok := s.registered[name]; ok {
		return fragment, nil
	}
	handle, err := s.resolver.Resolve(name)
	if err != nil {
		return nil, fmt.Errorf("route %s %s: %s: %w", route.Method, route.Path, field, err)
	}
	fragment := s.schemas.InferAndRegister(name, handle)
	s.registered[name] = fragment
	return fragment, nil
}

func buildParameter(parameter *manifest.Parameter) *openapi3.Parameter {
	out := &openapi3.Parameter{
		Name:        parameter.Name,
		In:          parameter.In,
		Description: parameter.Description,
		Required:    parameter.Required,
		Schema:      &openapi3.SchemaRef{Value: parameterSchema(parameter)},
	}
	if parameter.In == openapi3.ParameterInPath {
		out.Required = true
	}
	return out
}

// parameterSchema maps the manifest's primitive wire kind onto a
// schema. Unknown kinds degrade to string, matching the inference
// engine's default.
func parameterSchema(parameter *manifest.Parameter) *openapi3.Schema {
	out := &openapi3.Schema{
		Format:  parameter.Format,
		Default: parameter.Default,
		Min:     parameter.Minimum,
		Max:     parameter.Maximum,
	}
	if len(parameter.Enum) > 0 {
		out.Enum = parameter.Enum
	}
	switch parameter.Type {
	case "integer":
		out.Type = &openapi3.Types{openapi3.TypeInteger}
	case "number":
		out.Type = &openapi3.Types{openapi3.TypeNumber}
	case "boolean":
		out.Type = &openapi3.Types{openapi3.TypeBoolean}
	case "array":
		out.Type = &openapi3.Types{openapi3.TypeArray}
		out.Items = &openapi3.SchemaRef{
			Value: &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeString}},
		}
	default:
		out.Type = &openapi3.Types{openapi3.TypeString}
	}
	return out
}

func buildHeaders(headers map[string]manifest.Header) openapi3.Headers {
	if len(headers) == 0 {
		return nil
	}
	out := make(openapi3.Headers, len(headers))
	for name, header := range headers {
		headerSchema := &openapi3.Schema{Format: header.Format}
		switch header.Type {
		case "integer":
			headerSchema.Type = &openapi3.Types{openapi3.TypeInteger}
		case "number":
			headerSchema.Type = &openapi3.Types{openapi3.TypeNumber}
		case "boolean":
			headerSchema.Type = &openapi3.Types{openapi3.TypeBoolean}
		default:
			headerSchema.Type = &openapi3.Types{openapi3.TypeString}
		}
		out[name] = &openapi3.HeaderRef{
			Value: &openapi3.Header{
				Parameter: openapi3.Parameter{
					Description: header.Description,
					Schema:      &openapi3.SchemaRef{Value: headerSchema},
				},
			},
		}
	}
	return out
}

// defaultSummary produces a readable operation summary from the
// method and path when the manifest leaves it blank.
func defaultSummary(method, path string) string {
	return titleCaser.String(strings.ToLower(method)) + " " + path
}
