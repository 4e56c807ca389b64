package model

import (
	"fmt"
	"strings"
)

// Universe is the registry of every type element known to one load: builtin
// JDK types, types parsed from source, and placeholder elements synthesized
// for names outside the compilation. It is populated during binding and
// read-only while metadata is extracted, so no locking is needed.
type Universe struct {
	types    map[string]*TypeElement
	packages map[string]*PackageElement

	wildcard *WildcardType
	prims    map[Kind]*PrimitiveType
}

// NewUniverse creates a universe with the builtin JDK table pre-registered.
func NewUniverse() *Universe {
	u := &Universe{
		types:    make(map[string]*TypeElement),
		packages: make(map[string]*PackageElement),
		wildcard: &WildcardType{},
		prims:    make(map[Kind]*PrimitiveType),
	}
	for _, kind := range []Kind{
		KindBoolean, KindByte, KindChar, KindDouble,
		KindFloat, KindInt, KindLong, KindShort,
	} {
		u.prims[kind] = &PrimitiveType{kind: kind}
	}
	u.registerBuiltins()
	return u
}

// Package returns the package element for a dotted name, creating it on
// first use.
func (u *Universe) Package(name string) *PackageElement {
	if p, ok := u.packages[name]; ok {
		return p
	}
	p := &PackageElement{name: name}
	u.packages[name] = p
	return p
}

// LookupType returns the registered element for a dotted qualified name,
// nil when unknown.
func (u *Universe) LookupType(qname string) *TypeElement {
	return u.types[qname]
}

// Register adds a type element under its qualified name. Later registrations
// win; the binder registers source types after builtins so a source type may
// shadow a placeholder.
func (u *Universe) Register(t *TypeElement) {
	u.types[t.QualifiedName()] = t
}

// ExternalType returns the element for a qualified name, synthesizing a
// placeholder class element when the name is not part of the compilation.
// Everything before the last dot is treated as the package, which matches
// how unresolvable names behave in the host model.
func (u *Universe) ExternalType(qname string) *TypeElement {
	if t, ok := u.types[qname]; ok {
		return t
	}
	simple := qname
	var enclosing Element
	if i := strings.LastIndex(qname, "."); i >= 0 {
		simple = qname[i+1:]
		enclosing = u.Package(qname[:i])
	}
	t := NewTypeElement(qname, simple, ElemClass, enclosing)
	u.types[qname] = t
	return t
}

// Primitive returns the shared type for a primitive kind, nil for
// non-primitive kinds.
func (u *Universe) Primitive(kind Kind) Type {
	p, ok := u.prims[kind]
	if !ok {
		return nil
	}
	return p
}

// PrimitiveByName returns the primitive type for a source keyword ("int"),
// nil when the name is not a primitive.
func (u *Universe) PrimitiveByName(name string) Type {
	kind, ok := primitiveKinds[name]
	if !ok {
		return nil
	}
	return u.prims[kind]
}

// Wildcard returns the shared unbounded wildcard type.
func (u *Universe) Wildcard() Type { return u.wildcard }

// boxedTypes is the host boxing facility: primitive kind to the qualified
// name of its wrapper class.
var boxedTypes = map[Kind]string{
	KindBoolean: "java.lang.Boolean",
	KindByte:    "java.lang.Byte",
	KindChar:    "java.lang.Character",
	KindDouble:  "java.lang.Double",
	KindFloat:   "java.lang.Float",
	KindInt:     "java.lang.Integer",
	KindLong:    "java.lang.Long",
	KindShort:   "java.lang.Short",
}

// Boxed returns the wrapper class element for a primitive type.
func (u *Universe) Boxed(p *PrimitiveType) *TypeElement {
	return u.ExternalType(boxedTypes[p.Kind()])
}

// DeclaredType constructs a declared type for elem with the given type
// arguments. A non-empty argument list must match the element's declared
// type parameter count; otherwise an error is returned and the caller can
// fall back to the raw form.
func (u *Universe) DeclaredType(elem *TypeElement, args ...Type) (Type, error) {
	if len(args) > 0 && len(args) != len(elem.TypeParams()) {
		return nil, fmt.Errorf("type %s declares %d type parameters, got %d arguments",
			elem.QualifiedName(), len(elem.TypeParams()), len(args))
	}
	if len(args) == 0 {
		return elem.AsType(), nil
	}
	return &DeclaredType{elem: elem, args: args}, nil
}

// IsAssignable reports whether src is assignable to dst. Only declared
// targets are supported. Subtyping is nominal, via the supertype closure of
// src's element. Wildcard arguments on dst accept any parameterization; a
// non-wildcard argument falls back to exact textual equality, which is all
// the metadata pipeline needs.
func (u *Universe) IsAssignable(src, dst Type) bool {
	d, ok := dst.(*DeclaredType)
	if !ok || d == nil {
		return false
	}
	s, ok := src.(*DeclaredType)
	if !ok || s == nil {
		return false
	}
	if !u.isSubtype(s.Element(), d.Element(), make(map[*TypeElement]bool)) {
		return false
	}
	for _, arg := range d.TypeArgs() {
		if arg.Kind() != KindWildcard {
			return src.String() == dst.String()
		}
	}
	return true
}

func (u *Universe) isSubtype(src, dst *TypeElement, seen map[*TypeElement]bool) bool {
	if src == nil || dst == nil {
		return false
	}
	if src == dst || src.QualifiedName() == dst.QualifiedName() {
		return true
	}
	if seen[src] {
		return false
	}
	seen[src] = true
	for _, sup := range src.Supertypes() {
		if d, ok := sup.(*DeclaredType); ok && u.isSubtype(d.Element(), dst, seen) {
			return true
		}
	}
	return false
}
