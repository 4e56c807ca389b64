package model

import "strings"

// builtin describes one pre-registered JDK type: identity, type parameter
// arity and direct supertypes. The table covers java.lang, the collection
// framework and the value types configuration properties commonly use; it
// is not an exhaustive JDK model.
type builtin struct {
	qname  string
	kind   string
	params []string
	supers []string
}

var builtinTypes = []builtin{
	// java.lang core
	{qname: "java.lang.Object", kind: ElemClass},
	{qname: "java.lang.Number", kind: ElemClass},
	{qname: "java.lang.String", kind: ElemClass, supers: []string{"java.lang.CharSequence", "java.lang.Comparable"}},
	{qname: "java.lang.CharSequence", kind: ElemInterface},
	{qname: "java.lang.Comparable", kind: ElemInterface, params: []string{"T"}},
	{qname: "java.lang.Iterable", kind: ElemInterface, params: []string{"T"}},
	{qname: "java.lang.Class", kind: ElemClass, params: []string{"T"}},
	{qname: "java.lang.Enum", kind: ElemClass, params: []string{"E"}},
	{qname: "java.lang.Void", kind: ElemClass},

	// Primitive wrappers
	{qname: "java.lang.Boolean", kind: ElemClass},
	{qname: "java.lang.Byte", kind: ElemClass, supers: []string{"java.lang.Number"}},
	{qname: "java.lang.Character", kind: ElemClass},
	{qname: "java.lang.Double", kind: ElemClass, supers: []string{"java.lang.Number"}},
	{qname: "java.lang.Float", kind: ElemClass, supers: []string{"java.lang.Number"}},
	{qname: "java.lang.Integer", kind: ElemClass, supers: []string{"java.lang.Number"}},
	{qname: "java.lang.Long", kind: ElemClass, supers: []string{"java.lang.Number"}},
	{qname: "java.lang.Short", kind: ElemClass, supers: []string{"java.lang.Number"}},

	// Collection framework
	{qname: "java.util.Collection", kind: ElemInterface, params: []string{"E"}, supers: []string{"java.lang.Iterable"}},
	{qname: "java.util.List", kind: ElemInterface, params: []string{"E"}, supers: []string{"java.util.Collection"}},
	{qname: "java.util.Set", kind: ElemInterface, params: []string{"E"}, supers: []string{"java.util.Collection"}},
	{qname: "java.util.SortedSet", kind: ElemInterface, params: []string{"E"}, supers: []string{"java.util.Set"}},
	{qname: "java.util.Queue", kind: ElemInterface, params: []string{"E"}, supers: []string{"java.util.Collection"}},
	{qname: "java.util.Deque", kind: ElemInterface, params: []string{"E"}, supers: []string{"java.util.Queue"}},
	{qname: "java.util.ArrayList", kind: ElemClass, params: []string{"E"}, supers: []string{"java.util.List"}},
	{qname: "java.util.LinkedList", kind: ElemClass, params: []string{"E"}, supers: []string{"java.util.List", "java.util.Deque"}},
	{qname: "java.util.HashSet", kind: ElemClass, params: []string{"E"}, supers: []string{"java.util.Set"}},
	{qname: "java.util.LinkedHashSet", kind: ElemClass, params: []string{"E"}, supers: []string{"java.util.HashSet"}},
	{qname: "java.util.TreeSet", kind: ElemClass, params: []string{"E"}, supers: []string{"java.util.SortedSet"}},
	{qname: "java.util.Map", kind: ElemInterface, params: []string{"K", "V"}},
	{qname: "java.util.SortedMap", kind: ElemInterface, params: []string{"K", "V"}, supers: []string{"java.util.Map"}},
	{qname: "java.util.HashMap", kind: ElemClass, params: []string{"K", "V"}, supers: []string{"java.util.Map"}},
	{qname: "java.util.LinkedHashMap", kind: ElemClass, params: []string{"K", "V"}, supers: []string{"java.util.HashMap"}},
	{qname: "java.util.TreeMap", kind: ElemClass, params: []string{"K", "V"}, supers: []string{"java.util.SortedMap"}},
	{qname: "java.util.Hashtable", kind: ElemClass, params: []string{"K", "V"}, supers: []string{"java.util.Map"}},
	{qname: "java.util.Properties", kind: ElemClass, supers: []string{"java.util.Hashtable"}},
	{qname: "java.util.Iterator", kind: ElemInterface, params: []string{"E"}},
	{qname: "java.util.Optional", kind: ElemClass, params: []string{"T"}},
	{qname: "java.util.UUID", kind: ElemClass},
	{qname: "java.util.Date", kind: ElemClass},
	{qname: "java.util.Locale", kind: ElemClass},

	// java.time
	{qname: "java.time.Duration", kind: ElemClass},
	{qname: "java.time.Period", kind: ElemClass},
	{qname: "java.time.Instant", kind: ElemClass},
	{qname: "java.time.LocalDate", kind: ElemClass},
	{qname: "java.time.LocalTime", kind: ElemClass},
	{qname: "java.time.LocalDateTime", kind: ElemClass},
	{qname: "java.time.ZonedDateTime", kind: ElemClass},

	// Common value types
	{qname: "java.math.BigDecimal", kind: ElemClass, supers: []string{"java.lang.Number"}},
	{qname: "java.math.BigInteger", kind: ElemClass, supers: []string{"java.lang.Number"}},
	{qname: "java.io.File", kind: ElemClass},
	{qname: "java.io.Serializable", kind: ElemInterface},
	{qname: "java.nio.file.Path", kind: ElemInterface},
	{qname: "java.nio.charset.Charset", kind: ElemClass},
	{qname: "java.net.URI", kind: ElemClass},
	{qname: "java.net.URL", kind: ElemClass},
	{qname: "java.net.InetAddress", kind: ElemClass},

	// Annotations the extractor recognizes by name
	{qname: "java.lang.Deprecated", kind: ElemAnnotation},
	{qname: "java.lang.Override", kind: ElemAnnotation},
}

// registerBuiltins installs the builtin table. Elements are created first
// so supertype wiring can reference them in any order.
func (u *Universe) registerBuiltins() {
	for _, b := range builtinTypes {
		simple := b.qname
		var enclosing Element
		if i := strings.LastIndex(b.qname, "."); i >= 0 {
			simple = b.qname[i+1:]
			enclosing = u.Package(b.qname[:i])
		}
		t := NewTypeElement(b.qname, simple, b.kind, enclosing)
		t.SetTypeParams(b.params)
		u.types[b.qname] = t
	}
	for _, b := range builtinTypes {
		if len(b.supers) == 0 {
			continue
		}
		t := u.types[b.qname]
		supers := make([]Type, 0, len(b.supers))
		for _, s := range b.supers {
			supers = append(supers, u.types[s].AsType())
		}
		t.SetSupertypes(supers)
	}
}
