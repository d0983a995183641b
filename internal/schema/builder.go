// Package schema infers OpenAPI schema fragments from structural type
// handles and manages the component registry for one document build.
package schema

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/oasbuild/oasgen/internal/source"
)

// Builder is the schema inference engine. Inference is total: every
// shape terminates in some fragment, degrading to the string default
// when nothing else matches, so all error signaling stays upstream in
// the type resolver.
type Builder struct {
	definitions openapi3.Schemas
}

// NewBuilder creates a Builder with an empty component registry.
func NewBuilder() *Builder {
	return &Builder{
		definitions: make(openapi3.Schemas),
	}
}

// Infer derives the schema fragment for a type handle. Top-level
// types and array elements are walked deeply; object properties are
// reduced to bare kind tags except for enums, which expand in place.
func (b *Builder) Infer(handle *source.TypeHandle) *openapi3.Schema {
	return b.infer(handle, make(map[*source.TypeHandle]struct{}))
}

// InferAndRegister infers a fragment and records it in the component
// registry under name. When the handle is an array, the registry
// receives the element schema while the array wrapper is returned:
// registry entries hold reusable object and enum shapes, not
// wrappers. Only the outermost array level is unwrapped.
func (b *Builder) InferAndRegister(name string, handle *source.TypeHandle) *openapi3.Schema {
	fragment := b.infer(handle, make(map[*source.TypeHandle]struct{}))

	registered := fragment
	if handle != nil && handle.IsArray() && fragment.Items != nil {
		registered = fragment.Items.Value
	}
	b.definitions[name] = &openapi3.SchemaRef{Value: registered}

	return fragment
}

// infer applies the inference rules in precedence order. The rules
// are not independent; an enum also satisfies weaker predicates, so
// the order is part of the contract. The visited set terminates
// walks over cyclic type graphs: a revisited handle emits the string
// default in place of endless recursion.
func (b *Builder) infer(handle *source.TypeHandle, visited map[*source.TypeHandle]struct{}) *openapi3.Schema {
	if handle == nil {
		return primitiveSchema(source.PrimitiveString, false)
	}
	if _, ok := visited[handle]; ok {
		return primitiveSchema(source.PrimitiveString, handle.Nullable())
	}
	visited[handle] = struct{}{}
	defer delete(visited, handle)

	switch {
	case handle.IsArray():
		item := b.infer(handle.Elem(), visited)
		return &openapi3.Schema{
			Type:     &openapi3.Types{openapi3.TypeArray},
			Items:    &openapi3.SchemaRef{Value: item},
			Nullable: handle.Nullable(),
		}
	case handle.IsEnum():
		return enumSchema(handle)
	case handle.IsObject() && (len(handle.Properties()) > 0 || handle.AdditionalProperties() != nil):
		return b.objectSchema(handle)
	case handle.IsObject():
		// memberless object: bare kind tag from the fallback table
		return &openapi3.Schema{
			Type:     &openapi3.Types{openapi3.TypeObject},
			Nullable: handle.Nullable(),
		}
	default:
		return primitiveSchema(handle.Primitive(), handle.Nullable())
	}
}

func (b *Builder) objectSchema(handle *source.TypeHandle) *openapi3.Schema {
	schema := &openapi3.Schema{
		Type:     &openapi3.Types{openapi3.TypeObject},
		Nullable: handle.Nullable(),
	}

	if additional := handle.AdditionalProperties(); additional != nil {
		schema.AdditionalProperties = openapi3.AdditionalProperties{
			Schema: &openapi3.SchemaRef{Value: b.shallow(additional)},
		}
		return schema
	}

	properties := handle.Properties()
	schema.Properties = make(openapi3.Schemas, len(properties))
	for _, property := range properties {
		schema.Properties[property.Name] = &openapi3.SchemaRef{Value: b.shallow(property.Type)}
	}
	return schema
}

// shallow reduces a property type to its bare kind tag: arrays lose
// their items, objects lose their properties. Enums are the one
// exception and keep their literal values.
func (b *Builder) shallow(handle *source.TypeHandle) *openapi3.Schema {
	if handle == nil {
		return primitiveSchema(source.PrimitiveString, false)
	}
	switch {
	case handle.IsEnum():
		return enumSchema(handle)
	case handle.IsArray():
		return &openapi3.Schema{
			Type:     &openapi3.Types{openapi3.TypeArray},
			Nullable: handle.Nullable(),
		}
	case handle.IsObject():
		return &openapi3.Schema{
			Type:     &openapi3.Types{openapi3.TypeObject},
			Nullable: handle.Nullable(),
		}
	default:
		return primitiveSchema(handle.Primitive(), handle.Nullable())
	}
}

func enumSchema(handle *source.TypeHandle) *openapi3.Schema {
	values := handle.EnumValues()
	enum := make([]interface{}, len(values))
	copy(enum, values)
	return &openapi3.Schema{
		Type:     kindType(handle.Primitive()),
		Enum:     enum,
		Nullable: handle.Nullable(),
	}
}

func primitiveSchema(kind source.PrimitiveKind, nullable bool) *openapi3.Schema {
	switch kind {
	case source.PrimitiveInteger:
		return &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeInteger}, Nullable: nullable}
	case source.PrimitiveNumber:
		return &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeNumber}, Nullable: nullable}
	case source.PrimitiveBoolean:
		return &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeBoolean}, Nullable: nullable}
	case source.PrimitiveNull:
		return &openapi3.Schema{Nullable: true}
	case source.PrimitiveString:
		fallthrough
	default:
		return &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeString}, Nullable: nullable}
	}
}

func kindType(kind source.PrimitiveKind) *openapi3.Types {
	switch kind {
	case source.PrimitiveInteger:
		return &openapi3.Types{openapi3.TypeInteger}
	case source.PrimitiveNumber:
		return &openapi3.Types{openapi3.TypeNumber}
	case source.PrimitiveBoolean:
		return &openapi3.Types{openapi3.TypeBoolean}
	default:
		return &openapi3.Types{openapi3.TypeString}
	}
}

// Register adds a schema to the component registry under name,
// overwriting any previous entry. Last write wins.
func (b *Builder) Register(name string, schema *openapi3.Schema) {
	b.definitions[name] = &openapi3.SchemaRef{Value: schema}
}

// GetDefinition retrieves a registered schema by name.
func (b *Builder) GetDefinition(name string) (*openapi3.Schema, bool) {
	ref, ok := b.definitions[name]
	if !ok || ref == nil {
		return nil, false
	}
	return ref.Value, true
}

// Definitions returns the live component registry. The map is owned
// by the builder and must not be mutated between builds.
func (b *Builder) Definitions() openapi3.Schemas {
	return b.definitions
}
