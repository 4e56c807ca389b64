package model

import "strings"

// Element is a handle to a named program declaration, distinct from its
// type. Enclosing returns the lexically containing element (the outer class
// for a nested class or a field, the package for a top-level class, nil for
// a package). AsType converts the element to the type it declares.
type Element interface {
	SimpleName() string
	Enclosing() Element
	AsType() Type
	Doc() string
}

// PackageElement is a Java package. Packages have no type and no enclosing
// element.
type PackageElement struct {
	name string
}

// Name returns the full dotted package name.
func (p *PackageElement) Name() string { return p.name }

func (p *PackageElement) SimpleName() string {
	if i := strings.LastIndex(p.name, "."); i >= 0 {
		return p.name[i+1:]
	}
	return p.name
}

func (p *PackageElement) Enclosing() Element { return nil }

func (p *PackageElement) AsType() Type { return nil }

func (p *PackageElement) Doc() string { return "" }

// Type element kinds.
const (
	ElemClass      = "class"
	ElemInterface  = "interface"
	ElemEnum       = "enum"
	ElemAnnotation = "annotation"
	ElemRecord     = "record"
)

// Annotation is a single annotation use on a declaration. Args holds the
// raw source text of each named argument; the single-member shorthand
// (@Foo("x")) is stored under "value".
type Annotation struct {
	Name string
	Args map[string]string
}

// TypeElement is a named class, interface, enum or annotation type.
// Instances are created during binding (or builtin registration) and are
// read-only once a load completes.
type TypeElement struct {
	qname      string // source-level dotted qualified name
	simple     string
	kind       string
	enclosing  Element
	doc        string
	typeParams []string
	fields     []*FieldElement
	anns       []Annotation
	supers     []Type

	raw *DeclaredType // cached raw type
}

// NewTypeElement creates a type element with the given identity. Fields,
// supertypes and annotations are attached afterwards by the binder.
func NewTypeElement(qname, simple, kind string, enclosing Element) *TypeElement {
	return &TypeElement{qname: qname, simple: simple, kind: kind, enclosing: enclosing}
}

// QualifiedName returns the source-level dotted name (com.example.Outer.Inner).
func (t *TypeElement) QualifiedName() string { return t.qname }

func (t *TypeElement) SimpleName() string { return t.simple }

// ElemKind returns one of the Elem* constants.
func (t *TypeElement) ElemKind() string { return t.kind }

func (t *TypeElement) Enclosing() Element { return t.enclosing }

// AsType returns the raw declared type for this element.
func (t *TypeElement) AsType() Type {
	if t.raw == nil {
		t.raw = &DeclaredType{elem: t}
	}
	return t.raw
}

func (t *TypeElement) Doc() string { return t.doc }

func (t *TypeElement) SetDoc(doc string) { t.doc = doc }

// TypeParams returns the declared type parameter names, in order.
func (t *TypeElement) TypeParams() []string { return t.typeParams }

func (t *TypeElement) SetTypeParams(names []string) { t.typeParams = names }

// Fields returns the declared fields in declaration order.
func (t *TypeElement) Fields() []*FieldElement { return t.fields }

func (t *TypeElement) AddField(f *FieldElement) { t.fields = append(t.fields, f) }

// Annotations returns every annotation on the declaration.
func (t *TypeElement) Annotations() []Annotation { return t.anns }

func (t *TypeElement) SetAnnotations(anns []Annotation) { t.anns = anns }

// AnnotationNamed returns the annotation whose source name matches name by
// simple name or qualified suffix ("ConfigurationProperties" matches both
// the bare and the fully qualified spelling).
func (t *TypeElement) AnnotationNamed(name string) (Annotation, bool) {
	for _, a := range t.anns {
		if a.Name == name || strings.HasSuffix(a.Name, "."+name) {
			return a, true
		}
	}
	return Annotation{}, false
}

// Supertypes returns the resolved direct superclass and interfaces.
func (t *TypeElement) Supertypes() []Type { return t.supers }

func (t *TypeElement) SetSupertypes(supers []Type) { t.supers = supers }

// FieldElement is a field declaration inside a type element.
type FieldElement struct {
	name      string
	enclosing *TypeElement
	typ       Type
	doc       string
	initText  string
	modifiers []string
	anns      []Annotation
}

// NewFieldElement creates a field owned by enclosing with the given resolved
// type. initText is the raw initializer expression, "" when absent.
func NewFieldElement(name string, enclosing *TypeElement, typ Type, doc, initText string, modifiers []string) *FieldElement {
	return &FieldElement{
		name:      name,
		enclosing: enclosing,
		typ:       typ,
		doc:       doc,
		initText:  initText,
		modifiers: modifiers,
	}
}

func (f *FieldElement) SimpleName() string { return f.name }

func (f *FieldElement) Enclosing() Element { return f.enclosing }

// AsType returns the field's declared type.
func (f *FieldElement) AsType() Type { return f.typ }

func (f *FieldElement) Doc() string { return f.doc }

// Initializer returns the raw initializer expression text, "" when the
// field has none.
func (f *FieldElement) Initializer() string { return f.initText }

// Modifiers returns the source modifiers (public, static, final, ...).
func (f *FieldElement) Modifiers() []string { return f.modifiers }

// HasModifier reports whether the field carries the given modifier.
func (f *FieldElement) HasModifier(mod string) bool {
	for _, m := range f.modifiers {
		if m == mod {
			return true
		}
	}
	return false
}

// Annotations returns every annotation on the field.
func (f *FieldElement) Annotations() []Annotation { return f.anns }

func (f *FieldElement) SetAnnotations(anns []Annotation) { f.anns = anns }

// AnnotationNamed matches by simple name or qualified suffix, like
// TypeElement.AnnotationNamed.
func (f *FieldElement) AnnotationNamed(name string) (Annotation, bool) {
	for _, a := range f.anns {
		if a.Name == name || strings.HasSuffix(a.Name, "."+name) {
			return a, true
		}
	}
	return Annotation{}, false
}
