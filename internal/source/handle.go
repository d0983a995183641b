package source

// Kind identifies the structural shape of a resolved type.
type Kind int

const (
	// KindPrimitive is a scalar type, including anything that has no
	// schema representation and degrades to the string default.
	KindPrimitive Kind = iota
	// KindArray is a slice or array type.
	KindArray
	// KindObject is a struct or map type.
	KindObject
	// KindEnum is a named type with constants declared against it.
	KindEnum
)

// PrimitiveKind is the scalar category a primitive type maps to.
type PrimitiveKind int

const (
	// PrimitiveString is the zero value so unresolved shapes
	// degrade to the string default.
	PrimitiveString PrimitiveKind = iota
	PrimitiveInteger
	PrimitiveNumber
	PrimitiveBoolean
	PrimitiveNull
)

// Property is one enumerated member of an object type, in declaration
// order. The name is the wire name after tag and naming-strategy rules.
type Property struct {
	Name string
	Type *TypeHandle
}

// TypeHandle is an immutable structural view of one resolved type.
// Handles are derived by a Set and shared; callers must not mutate
// the slices they expose.
type TypeHandle struct {
	name       string
	kind       Kind
	primitive  PrimitiveKind
	nullable   bool
	elem       *TypeHandle
	additional *TypeHandle
	properties []Property
	enumValues []interface{}
}

// Name returns the declared name, empty for anonymous handles.
func (h *TypeHandle) Name() string { return h.name }

// Kind returns the structural kind.
func (h *TypeHandle) Kind() Kind { return h.kind }

// Primitive returns the scalar category. For enums it is the kind of
// the literal values.
func (h *TypeHandle) Primitive() PrimitiveKind { return h.primitive }

// Nullable reports whether the type was reached through a pointer.
func (h *TypeHandle) Nullable() bool { return h.nullable }

// Elem returns the element handle of an array type, nil otherwise.
func (h *TypeHandle) Elem() *TypeHandle { return h.elem }

// Properties returns the object members in declaration order.
func (h *TypeHandle) Properties() []Property { return h.properties }

// AdditionalProperties returns the value handle of a map-backed
// object, nil for struct-backed objects.
func (h *TypeHandle) AdditionalProperties() *TypeHandle { return h.additional }

// EnumValues returns the literal values in declaration order.
func (h *TypeHandle) EnumValues() []interface{} { return h.enumValues }

func (h *TypeHandle) IsArray() bool     { return h.kind == KindArray }
func (h *TypeHandle) IsEnum() bool      { return h.kind == KindEnum }
func (h *TypeHandle) IsObject() bool    { return h.kind == KindObject }
func (h *TypeHandle) IsPrimitive() bool { return h.kind == KindPrimitive }

// nullableOf returns a view of h with the nullable bit set. The copy
// shares element and property handles with the original.
func nullableOf(h *TypeHandle) *TypeHandle {
	if h.nullable {
		return h
	}
	nh := *h
	nh.nullable = true
	return &nh
}

// builtinKinds maps Go builtin identifiers to their scalar category.
var builtinKinds = map[string]PrimitiveKind{
	"string":  PrimitiveString,
	"int":     PrimitiveInteger,
	"int8":    PrimitiveInteger,
	"int16":   PrimitiveInteger,
	"int32":   PrimitiveInteger,
	"int64":   PrimitiveInteger,
	"uint":    PrimitiveInteger,
	"uint8":   PrimitiveInteger,
	"uint16":  PrimitiveInteger,
	"uint32":  PrimitiveInteger,
	"uint64":  PrimitiveInteger,
	"uintptr": PrimitiveInteger,
	"byte":    PrimitiveInteger,
	"rune":    PrimitiveInteger,
	"float32": PrimitiveNumber,
	"float64": PrimitiveNumber,
	"bool":    PrimitiveBoolean,
}
