package parser

// SourceFile is the syntactic content of one .java file: package, imports
// and the top-level type declarations with their nested types. Semantic
// resolution happens later, against the whole set of parsed files.
type SourceFile struct {
	Path    string
	Package string
	Imports []Import
	Types   []*RawType
}

// Import is a single import declaration.
type Import struct {
	Path     string // dotted name as written, without the trailing ".*"
	Wildcard bool
	Static   bool
}

// RawType is a class, interface, enum, record or annotation declaration as
// written, before name resolution.
type RawType struct {
	Name        string
	Kind        string // class | interface | enum | record | annotation
	Doc         string
	Modifiers   []string
	Annotations []RawAnnotation
	TypeParams  []string
	Superclass  string   // source text, "" when absent
	Interfaces  []string // source text of implemented/extended interfaces
	Fields      []RawField
	Nested      []*RawType
	Line        int
}

// RawField is one declarator of a field declaration. A declaration with
// multiple declarators produces multiple RawFields sharing type, modifiers
// and doc comment.
type RawField struct {
	Name        string
	TypeExpr    string // source text of the declared type
	Doc         string
	Init        string // raw initializer expression, "" when absent
	Modifiers   []string
	Annotations []RawAnnotation
	Line        int
}

// RawAnnotation is an annotation use. Args maps element names to raw
// argument text; the single-member form stores its value under "value".
type RawAnnotation struct {
	Name string
	Args map[string]string
}

// StringArg returns the unquoted string value of an annotation argument.
func (a RawAnnotation) StringArg(name string) (string, bool) {
	raw, ok := a.Args[name]
	if !ok {
		return "", false
	}
	return UnquoteString(raw), true
}
