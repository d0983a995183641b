package builder

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/oasbuild/oasgen/internal/manifest"
)

func buildSecuritySchemes(schemes map[string]manifest.SecurityScheme) openapi3.SecuritySchemes {
	if len(schemes) == 0 {
		return nil
	}
	out := make(openapi3.SecuritySchemes, len(schemes))
	for name, scheme := range schemes {
		out[name] = &openapi3.SecuritySchemeRef{Value: buildSecurityScheme(&scheme)}
	}
	return out
}

func buildSecurityScheme(scheme *manifest.SecurityScheme) *openapi3.SecurityScheme {
	out := &openapi3.SecurityScheme{
		Type:        scheme.Type,
		Description: scheme.Description,
	}
	switch scheme.Type {
	case "apiKey":
		out.Name = scheme.Name
		out.In = scheme.In
	case "http":
		out.Scheme = scheme.Scheme
		out.BearerFormat = scheme.BearerFormat
	case "oauth2":
		out.Flows = buildOAuthFlows(scheme)
	}
	return out
}

func buildOAuthFlows(scheme *manifest.SecurityScheme) *openapi3.OAuthFlows {
	scopes := scheme.Scopes
	if scopes == nil {
		scopes = map[string]string{}
	}
	flows := &openapi3.OAuthFlows{}
	switch scheme.Flow {
	case "implicit":
		flows.Implicit = &openapi3.OAuthFlow{
			AuthorizationURL: scheme.AuthorizationURL,
			Scopes:           scopes,
		}
	case "password":
		flows.Password = &openapi3.OAuthFlow{
			TokenURL: scheme.TokenURL,
			Scopes:   scopes,
		}
	case "application":
		flows.ClientCredentials = &openapi3.OAuthFlow{
			TokenURL: scheme.TokenURL,
			Scopes:   scopes,
		}
	case "accessCode":
		flows.AuthorizationCode = &openapi3.OAuthFlow{
			AuthorizationURL: scheme.AuthorizationURL,
			TokenURL:         scheme.TokenURL,
			Scopes:           scopes,
		}
	}
	return flows
}

func buildSecurityRequirements(security []map[string][]string) *openapi3.SecurityRequirements {
	requirements := openapi3.NewSecurityRequirements()
	for _, entry := range security {
		requirement := openapi3.NewSecurityRequirement()
		for scheme, scopes := range entry {
			if scopes == nil {
				scopes = []string{}
			}
			requirement[scheme] = scopes
		}
		requirements.With(requirement)
	}
	return requirements
}
