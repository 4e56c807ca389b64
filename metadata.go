package sprout

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/jward/sprout/internal/model"
	"github.com/jward/sprout/internal/parser"
)

// Metadata is a configuration-metadata document: the property groups and
// the individual properties extracted from annotated classes. The JSON
// shape matches META-INF/spring-configuration-metadata.json.
type Metadata struct {
	Groups     []ItemGroup    `json:"groups"`
	Properties []ItemProperty `json:"properties"`
}

// ItemGroup describes a prefix contributed by one annotated class or one
// nested group field.
type ItemGroup struct {
	Name       string `json:"name"`
	Type       string `json:"type,omitempty"`
	SourceType string `json:"sourceType,omitempty"`
}

// ItemProperty describes a single bindable property.
type ItemProperty struct {
	Name         string `json:"name"`
	Type         string `json:"type,omitempty"`
	Description  string `json:"description,omitempty"`
	SourceType   string `json:"sourceType,omitempty"`
	DefaultValue any    `json:"defaultValue,omitempty"`
	Deprecated   bool   `json:"deprecated,omitempty"`
}

const configurationPropertiesAnnotation = "ConfigurationProperties"

// Metadata extracts the configuration metadata for every class annotated
// with @ConfigurationProperties. Groups and properties are sorted by name
// so output is deterministic across loads.
func (p *Project) Metadata() (*Metadata, error) {
	md := &Metadata{}
	for _, te := range p.typeElems {
		ann, ok := te.AnnotationNamed(configurationPropertiesAnnotation)
		if !ok {
			continue
		}
		prefix := annotationPrefix(ann)
		if err := p.collectGroup(md, te, te, prefix, map[*model.TypeElement]bool{}); err != nil {
			return nil, err
		}
	}

	sort.Slice(md.Groups, func(i, j int) bool { return md.Groups[i].Name < md.Groups[j].Name })
	sort.Slice(md.Properties, func(i, j int) bool { return md.Properties[i].Name < md.Properties[j].Name })
	return md, nil
}

// annotationPrefix reads the prefix from a @ConfigurationProperties use:
// the named "prefix" argument or the single-member shorthand.
func annotationPrefix(ann model.Annotation) string {
	if v, ok := ann.Args["prefix"]; ok {
		return parser.UnquoteString(v)
	}
	if v, ok := ann.Args["value"]; ok {
		return parser.UnquoteString(v)
	}
	return ""
}

// collectGroup emits the group entry for te under prefix, one property per
// bindable field, and recurses into nested group fields. root is the
// annotated class the walk started from; seen guards against type cycles.
func (p *Project) collectGroup(md *Metadata, root, te *model.TypeElement, prefix string, seen map[*model.TypeElement]bool) error {
	if seen[te] {
		return nil
	}
	seen[te] = true

	typeName, err := p.Types.QualifiedName(te)
	if err != nil {
		return err
	}
	md.Groups = append(md.Groups, ItemGroup{
		Name:       prefix,
		Type:       typeName,
		SourceType: typeName,
	})

	classDeprecated := isDeprecated(te)

	for _, f := range te.Fields() {
		if f.HasModifier("static") {
			continue
		}
		// A final field with an initializer is a constant, not a bindable
		// property.
		if f.HasModifier("final") && f.Initializer() != "" {
			continue
		}
		name := propertyName(prefix, f.SimpleName())

		// A field whose type is a class nested in the annotated class is
		// a sub-group, unless it is a collection or map (those bind as
		// plain properties of the container type).
		if nested := nestedGroupElement(p.Types, root, f); nested != nil {
			if err := p.collectGroup(md, root, nested, name, seen); err != nil {
				return err
			}
			continue
		}

		md.Properties = append(md.Properties, ItemProperty{
			Name:         name,
			Type:         p.Types.TypeString(f.AsType()),
			Description:  p.Types.Javadoc(f),
			SourceType:   typeName,
			DefaultValue: defaultValueOf(p.Types, f),
			Deprecated:   classDeprecated || isDeprecated(f),
		})
	}
	return nil
}

// nestedGroupElement returns the element of f's type when it qualifies as a
// nested group: declared, lexically enclosed in root, and not a collection
// or map.
func nestedGroupElement(tu *TypeUtils, root *model.TypeElement, f *model.FieldElement) *model.TypeElement {
	d, ok := f.AsType().(*model.DeclaredType)
	if !ok || d == nil {
		return nil
	}
	elem := d.Element()
	if elem == root || !tu.IsEnclosedIn(elem, root) {
		return nil
	}
	if tu.IsCollectionOrMap(f.AsType()) {
		return nil
	}
	return elem
}

type annotated interface {
	AnnotationNamed(name string) (model.Annotation, bool)
}

func isDeprecated(el annotated) bool {
	_, ok := el.AnnotationNamed("Deprecated")
	return ok
}

// propertyName joins prefix and the dashed form of a camelCase field name
// ("maxConnections" under "app.server" -> "app.server.max-connections").
func propertyName(prefix, field string) string {
	if prefix == "" {
		return dashedName(field)
	}
	return prefix + "." + dashedName(field)
}

func dashedName(name string) string {
	var sb strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// defaultValueOf parses a field's literal initializer into the JSON value
// the metadata format expects. The field's type shape decides how the text
// is read: booleans and numbers for primitives and their wrappers, unquoted
// text for strings. Non-literal initializers (method calls, constructors)
// yield nil.
func defaultValueOf(tu *TypeUtils, f *model.FieldElement) any {
	raw := strings.TrimSpace(f.Initializer())
	if raw == "" {
		return nil
	}

	t := f.AsType()
	if t == nil {
		return nil
	}

	// Normalize wrappers to their primitive kind; leave primitives as is.
	kind := t.Kind()
	if !kind.IsPrimitive() {
		if prim := tu.WrapperOrPrimitiveFor(t); prim != nil && prim.Kind().IsPrimitive() {
			kind = prim.Kind()
		}
	}

	switch kind {
	case model.KindBoolean:
		if v, err := strconv.ParseBool(raw); err == nil {
			return v
		}
		return nil
	case model.KindByte, model.KindShort, model.KindInt, model.KindLong:
		raw = strings.TrimRight(raw, "Ll")
		raw = strings.ReplaceAll(raw, "_", "")
		if v, err := strconv.ParseInt(raw, 0, 64); err == nil {
			return v
		}
		return nil
	case model.KindFloat, model.KindDouble:
		raw = strings.TrimRight(raw, "FfDd")
		raw = strings.ReplaceAll(raw, "_", "")
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
		return nil
	case model.KindChar:
		if len(raw) >= 3 && raw[0] == '\'' && raw[len(raw)-1] == '\'' {
			if s, err := strconv.Unquote(`"` + raw[1:len(raw)-1] + `"`); err == nil {
				return s
			}
			return raw[1 : len(raw)-1]
		}
		return nil
	}

	if t.String() == "java.lang.String" {
		if strings.HasPrefix(raw, `"`) {
			return parser.UnquoteString(raw)
		}
		return nil
	}
	return nil
}
