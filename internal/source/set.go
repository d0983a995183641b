package source

import (
	"go/ast"
	"reflect"
	"strings"
)

// Set is an ordered collection of declaration sources. Lookups scan
// the sources in order, so the first declaration of a name wins when
// two sources declare it. Derived handles are interned per name.
type Set struct {
	files   []*File
	handles map[string]*TypeHandle
	naming  string
}

// NewSet builds a set over the given sources, keeping their order.
func NewSet(files ...*File) *Set {
	return &Set{
		files:   files,
		handles: make(map[string]*TypeHandle),
		naming:  CamelCase,
	}
}

// Add appends a source to the scan order.
func (s *Set) Add(file *File) {
	s.files = append(s.files, file)
}

// Files returns the sources in scan order.
func (s *Set) Files() []*File { return s.files }

// Len returns the number of sources.
func (s *Set) Len() int { return len(s.files) }

// HasType reports whether any source in the set declares name.
func (s *Set) HasType(name string) bool {
	for _, file := range s.files {
		if file.HasType(name) {
			return true
		}
	}
	return false
}

// SetPropertyNamingStrategy sets the wire-name strategy used for
// struct fields without a json tag. Must be called before the first
// lookup; handles derived earlier keep the old names.
func (s *Set) SetPropertyNamingStrategy(strategy string) {
	if strategy == "" {
		strategy = CamelCase
	}
	s.naming = strategy
}

// Lookup resolves a type name across the set. Aliases resolve to the
// aliased structural type. The boolean is false when no source
// declares the name.
func (s *Set) Lookup(name string) (*TypeHandle, bool) {
	return s.lookup(name, make(map[string]struct{}))
}

func (s *Set) lookup(name string, stack map[string]struct{}) (*TypeHandle, bool) {
	if handle, ok := s.handles[name]; ok {
		return handle, true
	}
	for _, file := range s.files {
		typeSpec, ok := file.types[name]
		if !ok {
			continue
		}
		return s.derive(name, typeSpec, file, stack), true
	}
	return nil, false
}

// derive builds the structural handle for a named declaration. The
// handle is interned before its members are walked so that
// self-referential types terminate; the stack breaks alias chains
// that loop without ever reaching a structural type.
func (s *Set) derive(name string, typeSpec *ast.TypeSpec, file *File, stack map[string]struct{}) *TypeHandle {
	if _, ok := stack[name]; ok {
		return s.placeholder(name)
	}
	stack[name] = struct{}{}
	defer delete(stack, name)

	if values, kind, ok := s.enumFor(name, file); ok {
		handle := &TypeHandle{name: name, kind: KindEnum, primitive: kind, enumValues: values}
		s.handles[name] = handle
		return handle
	}

	switch t := typeSpec.Type.(type) {
	case *ast.Ident:
		if kind, ok := builtinKinds[t.Name]; ok {
			handle := &TypeHandle{name: name, kind: KindPrimitive, primitive: kind}
			s.handles[name] = handle
			return handle
		}
		if resolved, ok := s.lookup(t.Name, stack); ok {
			s.handles[name] = resolved
			return resolved
		}
		return s.placeholder(name)
	case *ast.SelectorExpr:
		if resolved, ok := s.lookup(t.Sel.Name, stack); ok {
			s.handles[name] = resolved
			return resolved
		}
		return s.placeholder(name)
	case *ast.StarExpr:
		handle := &TypeHandle{name: name, nullable: true}
		s.handles[name] = handle
		inner := s.handleOf(t.X, file, stack)
		handle.kind = inner.kind
		handle.primitive = inner.primitive
		handle.elem = inner.elem
		handle.additional = inner.additional
		handle.properties = inner.properties
		handle.enumValues = inner.enumValues
		return handle
	}

	handle := &TypeHandle{name: name}
	s.handles[name] = handle
	switch t := typeSpec.Type.(type) {
	case *ast.StructType:
		handle.kind = KindObject
		handle.properties = s.collectProperties(t, file, stack)
	case *ast.ArrayType:
		handle.kind = KindArray
		handle.elem = s.handleOf(t.Elt, file, stack)
	case *ast.MapType:
		handle.kind = KindObject
		handle.additional = s.handleOf(t.Value, file, stack)
	default:
		// interface, func, chan: no structural schema, degrades to
		// the string default downstream
	}
	return handle
}

// placeholder interns an unresolvable name as the string default.
func (s *Set) placeholder(name string) *TypeHandle {
	handle := &TypeHandle{name: name}
	s.handles[name] = handle
	return handle
}

// handleOf derives a handle for an arbitrary type expression inside a
// declaration, resolving named references through the set.
func (s *Set) handleOf(expr ast.Expr, file *File, stack map[string]struct{}) *TypeHandle {
	switch t := expr.(type) {
	case *ast.Ident:
		if kind, ok := builtinKinds[t.Name]; ok {
			return &TypeHandle{kind: KindPrimitive, primitive: kind}
		}
		if resolved, ok := s.lookup(t.Name, stack); ok {
			return resolved
		}
		return &TypeHandle{}
	case *ast.SelectorExpr:
		if resolved, ok := s.lookup(t.Sel.Name, stack); ok {
			return resolved
		}
		return &TypeHandle{}
	case *ast.ArrayType:
		return &TypeHandle{kind: KindArray, elem: s.handleOf(t.Elt, file, stack)}
	case *ast.StarExpr:
		return nullableOf(s.handleOf(t.X, file, stack))
	case *ast.MapType:
		return &TypeHandle{kind: KindObject, additional: s.handleOf(t.Value, file, stack)}
	case *ast.StructType:
		return &TypeHandle{kind: KindObject, properties: s.collectProperties(t, file, stack)}
	default:
		return &TypeHandle{}
	}
}

// enumFor gathers enum members for a named type, looking in the
// declaring source first and then across the rest of the set so
// const blocks split from their type declaration are still found.
func (s *Set) enumFor(name string, declaring *File) ([]interface{}, PrimitiveKind, bool) {
	if values, kind, ok := declaring.enumFor(name); ok {
		return values, kind, true
	}
	for _, file := range s.files {
		if file == declaring {
			continue
		}
		if values, kind, ok := file.enumFor(name); ok {
			return values, kind, true
		}
	}
	return nil, PrimitiveString, false
}

func (s *Set) collectProperties(structType *ast.StructType, file *File, stack map[string]struct{}) []Property {
	if structType.Fields == nil {
		return nil
	}
	properties := make([]Property, 0, len(structType.Fields.List))
	for _, field := range structType.Fields.List {
		if len(field.Names) == 0 {
			// embedded field
			continue
		}
		for _, fieldName := range field.Names {
			if !fieldName.IsExported() {
				continue
			}
			wireName, ok := propertyName(fieldName.Name, field.Tag, s.naming)
			if !ok {
				continue
			}
			properties = append(properties, Property{
				Name: wireName,
				Type: s.handleOf(field.Type, file, stack),
			})
		}
	}
	return properties
}

// propertyName returns the wire name for a struct field. A json tag
// wins over the naming strategy; json:"-" drops the field.
func propertyName(fieldName string, tag *ast.BasicLit, strategy string) (string, bool) {
	if tag != nil {
		structTag := reflect.StructTag(strings.Trim(tag.Value, "`"))
		if jsonTag, ok := structTag.Lookup("json"); ok {
			name, _, _ := strings.Cut(jsonTag, ",")
			if name == "-" {
				return "", false
			}
			if name != "" {
				return name, true
			}
		}
	}
	return applyNamingStrategy(fieldName, strategy), true
}
