package model

import "strings"

// Kind discriminates the closed set of type shapes the model describes.
// The variant set is fixed at design time: the eight Java primitive kinds,
// declared (named class/interface) types, and the shapes the metadata
// renderer treats as unsupported (arrays, wildcards, type variables).
type Kind int

const (
	// KindError marks a type expression that could not be parsed.
	KindError Kind = iota

	KindBoolean
	KindByte
	KindChar
	KindDouble
	KindFloat
	KindInt
	KindLong
	KindShort

	KindDeclared
	KindArray
	KindWildcard
	KindTypeVar
)

var kindNames = map[Kind]string{
	KindError:    "error",
	KindBoolean:  "boolean",
	KindByte:     "byte",
	KindChar:     "char",
	KindDouble:   "double",
	KindFloat:    "float",
	KindInt:      "int",
	KindLong:     "long",
	KindShort:    "short",
	KindDeclared: "declared",
	KindArray:    "array",
	KindWildcard: "wildcard",
	KindTypeVar:  "typevar",
}

func (k Kind) String() string { return kindNames[k] }

// IsPrimitive reports whether k is one of the eight primitive kinds.
func (k Kind) IsPrimitive() bool { return k >= KindBoolean && k <= KindShort }

// primitiveKinds maps source keywords to primitive kinds.
var primitiveKinds = map[string]Kind{
	"boolean": KindBoolean,
	"byte":    KindByte,
	"char":    KindChar,
	"double":  KindDouble,
	"float":   KindFloat,
	"int":     KindInt,
	"long":    KindLong,
	"short":   KindShort,
}

// Type is a semantic Java type handle. Implementations are the closed set
// PrimitiveType, DeclaredType, ArrayType, WildcardType and TypeVariable;
// callers dispatch on Kind or by type switch.
//
// String returns the default textual form of the type: dot-qualified names
// with source-level generic arguments, "?" for wildcards, "[]" suffixes for
// arrays. Binary ($-joined) names for nested classes are the renderer's job,
// not the model's.
type Type interface {
	Kind() Kind
	String() string
}

// PrimitiveType is one of the eight primitive kinds.
type PrimitiveType struct {
	kind Kind
}

func (p *PrimitiveType) Kind() Kind { return p.kind }

func (p *PrimitiveType) String() string { return p.kind.String() }

// DeclaredType is a reference to a named class or interface, with zero or
// more generic type arguments. A DeclaredType with no arguments is the raw
// form of its element.
type DeclaredType struct {
	elem *TypeElement
	args []Type
}

func (d *DeclaredType) Kind() Kind { return KindDeclared }

// Element returns the class or interface this type refers to.
func (d *DeclaredType) Element() *TypeElement { return d.elem }

// TypeArgs returns the generic type arguments, nil for the raw form.
func (d *DeclaredType) TypeArgs() []Type { return d.args }

func (d *DeclaredType) String() string {
	if len(d.args) == 0 {
		return d.elem.QualifiedName()
	}
	parts := make([]string, len(d.args))
	for i, a := range d.args {
		parts[i] = a.String()
	}
	return d.elem.QualifiedName() + "<" + strings.Join(parts, ", ") + ">"
}

// ArrayType is a component type plus one array dimension.
type ArrayType struct {
	component Type
}

func (a *ArrayType) Kind() Kind { return KindArray }

// Component returns the element type of the array.
func (a *ArrayType) Component() Type { return a.component }

func (a *ArrayType) String() string { return a.component.String() + "[]" }

// WildcardType is the unbounded wildcard "?". Bounds are not modeled; an
// "? extends X" in source parses to the unbounded form.
type WildcardType struct{}

func (w *WildcardType) Kind() Kind { return KindWildcard }

func (w *WildcardType) String() string { return "?" }

// TypeVariable is a reference to a declared type parameter ("T").
type TypeVariable struct {
	name string
}

func (v *TypeVariable) Kind() Kind { return KindTypeVar }

func (v *TypeVariable) String() string { return v.name }
