package sprout

import (
	"fmt"
	"strings"

	"github.com/jward/sprout/internal/model"
)

// primitiveWrappers maps each primitive kind to the qualified name of its
// boxed wrapper class. Kept separate from wrapperToPrimitive: this table
// keys on kinds, the reverse keys on textual names, and the two are never
// collapsed into one structure.
var primitiveWrappers = map[model.Kind]string{
	model.KindBoolean: "java.lang.Boolean",
	model.KindByte:    "java.lang.Byte",
	model.KindChar:    "java.lang.Character",
	model.KindDouble:  "java.lang.Double",
	model.KindFloat:   "java.lang.Float",
	model.KindInt:     "java.lang.Integer",
	model.KindLong:    "java.lang.Long",
	model.KindShort:   "java.lang.Short",
}

// wrapperToPrimitive is the reverse lookup, keyed on the wrapper's textual
// name. Built once at package init; read-only afterwards.
var wrapperToPrimitive = make(map[string]model.Kind, len(primitiveWrappers))

func init() {
	for kind, name := range primitiveWrappers {
		wrapperToPrimitive[name] = kind
	}
}

// TypeUtils renders semantic types and elements into the textual forms the
// metadata format requires and answers the classification queries the
// extractor needs. It holds no mutable state beyond two reference types
// constructed up front, so one instance serves a whole load.
type TypeUtils struct {
	uni            *model.Universe
	collectionType model.Type
	mapType        model.Type
}

// NewTypeUtils creates a TypeUtils bound to uni.
func NewTypeUtils(uni *model.Universe) *TypeUtils {
	return &TypeUtils{
		uni:            uni,
		collectionType: wildcardReference(uni, "java.util.Collection", 1),
		mapType:        wildcardReference(uni, "java.util.Map", 2),
	}
}

// wildcardReference builds the reference type used for assignability
// checks, parameterized with unbounded wildcards. Falls back to the raw
// form when the model rejects the argument list (an element registered
// without arity information).
func wildcardReference(uni *model.Universe, qname string, argCount int) model.Type {
	elem := uni.ExternalType(qname)
	args := make([]model.Type, argCount)
	for i := range args {
		args[i] = uni.Wildcard()
	}
	t, err := uni.DeclaredType(elem, args...)
	if err != nil {
		t, _ = uni.DeclaredType(elem)
	}
	return t
}

// QualifiedName returns the fully qualified name of element, suitable for a
// Class.forName call: nested types are joined to their enclosing class with
// '$'. Returns an error when the element is not ultimately backed by a
// named class or interface — that means the model handed over a shape the
// renderer was never designed to see, so the caller should abort the
// current item rather than continue.
func (tu *TypeUtils) QualifiedName(el model.Element) (string, error) {
	if el == nil {
		return "", nil
	}
	if enclosing := enclosingTypeElement(el.AsType()); enclosing != nil {
		parent, err := tu.QualifiedName(enclosing)
		if err != nil {
			return "", err
		}
		return parent + "$" + el.SimpleName(), nil
	}
	if te, ok := el.(*model.TypeElement); ok {
		return te.QualifiedName(), nil
	}
	return "", fmt.Errorf("cannot extract qualified name from %q", el.SimpleName())
}

// TypeString returns the textual form of t including its generic
// information, or "" for nil and for shapes the renderer does not support
// (arrays, wildcards, type variables).
func (tu *TypeUtils) TypeString(t model.Type) string {
	switch v := t.(type) {
	case nil:
		return ""
	case *model.PrimitiveType:
		// Boxing goes through the model, not the wrapper table above:
		// the table serves WrapperOrPrimitiveFor conversions only.
		return tu.uni.Boxed(v).QualifiedName()
	case *model.DeclaredType:
		return tu.declaredTypeString(v)
	default:
		return ""
	}
}

func (tu *TypeUtils) declaredTypeString(t *model.DeclaredType) string {
	if enclosing := enclosingTypeElement(t); enclosing != nil {
		parent, err := tu.QualifiedName(enclosing)
		if err != nil {
			return ""
		}
		return parent + "$" + t.Element().SimpleName()
	}
	var sb strings.Builder
	sb.WriteString(t.Element().QualifiedName())
	if args := t.TypeArgs(); len(args) > 0 {
		parts := make([]string, len(args))
		for i, a := range args {
			// Arguments keep their default textual form; they are not
			// re-rendered through the enclosing-name logic. Downstream
			// consumers parse this exact shape.
			parts[i] = a.String()
		}
		sb.WriteString("<")
		sb.WriteString(strings.Join(parts, ","))
		sb.WriteString(">")
	}
	return sb.String()
}

// enclosingTypeElement returns the type element lexically enclosing t's
// element, nil when t is not a declared type or its element is top level.
func enclosingTypeElement(t model.Type) *model.TypeElement {
	d, ok := t.(*model.DeclaredType)
	if !ok || d == nil {
		return nil
	}
	if te, ok := d.Element().Enclosing().(*model.TypeElement); ok {
		return te
	}
	return nil
}

// IsCollectionOrMap reports whether t is assignable to the
// wildcard-parameterized java.util.Collection or java.util.Map reference
// types.
func (tu *TypeUtils) IsCollectionOrMap(t model.Type) bool {
	return tu.uni.IsAssignable(t, tu.collectionType) ||
		tu.uni.IsAssignable(t, tu.mapType)
}

// IsEnclosedIn reports whether candidate is container itself or is
// lexically enclosed in it at any depth. False when either side is nil.
// The enclosing chain is finite and acyclic, so the recursion terminates.
func (tu *TypeUtils) IsEnclosedIn(candidate model.Element, container *model.TypeElement) bool {
	if candidate == nil || container == nil {
		return false
	}
	if candidate == model.Element(container) {
		return true
	}
	return tu.IsEnclosedIn(candidate.Enclosing(), container)
}

// Javadoc returns element's doc comment with surrounding whitespace
// trimmed, "" when the element is nil, has no comment, or the comment is
// blank. Never returns a non-empty string of pure whitespace.
func (tu *TypeUtils) Javadoc(el model.Element) string {
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Doc())
}

// WrapperOrPrimitiveFor converts between primitives and their wrappers:
// a primitive type yields its wrapper's declared type, a wrapper type (by
// textual name) yields the primitive, and anything else yields nil. The
// forward lookup keys on the type's kind, the reverse on its name — the
// asymmetry is deliberate and both directions must stay separate.
func (tu *TypeUtils) WrapperOrPrimitiveFor(t model.Type) model.Type {
	if t == nil {
		return nil
	}
	if wrapper, ok := primitiveWrappers[t.Kind()]; ok {
		return tu.uni.ExternalType(wrapper).AsType()
	}
	if kind, ok := wrapperToPrimitive[t.String()]; ok {
		return tu.uni.Primitive(kind)
	}
	return nil
}
