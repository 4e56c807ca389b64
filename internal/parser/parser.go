package parser

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

var javaLang = java.GetLanguage()

// Parse reads and parses a .java file.
func Parse(ctx context.Context, path string) (*SourceFile, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return ParseSource(ctx, src, path)
}

// ParseSource parses Java source text. path is used only for labeling.
func ParseSource(ctx context.Context, src []byte, path string) (*SourceFile, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(javaLang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	f := &SourceFile{Path: path}
	root := tree.RootNode()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		n := root.NamedChild(i)
		switch n.Type() {
		case "package_declaration":
			f.Package = packageName(n, src)
		case "import_declaration":
			f.Imports = append(f.Imports, readImport(n, src))
		default:
			if kind, ok := declKinds[n.Type()]; ok {
				f.Types = append(f.Types, readType(n, src, kind))
			}
		}
	}
	return f, nil
}

// declKinds maps declaration node types to element kinds.
var declKinds = map[string]string{
	"class_declaration":           "class",
	"interface_declaration":       "interface",
	"enum_declaration":            "enum",
	"record_declaration":          "record",
	"annotation_type_declaration": "annotation",
}

// modifierKeywords is the set of plain (non-annotation) modifier tokens.
var modifierKeywords = map[string]bool{
	"public": true, "protected": true, "private": true,
	"static": true, "final": true, "abstract": true,
	"transient": true, "volatile": true, "synchronized": true,
	"native": true, "strictfp": true, "default": true, "sealed": true,
}

func packageName(n *sitter.Node, src []byte) string {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() == "identifier" || c.Type() == "scoped_identifier" {
			return c.Content(src)
		}
	}
	return ""
}

func readImport(n *sitter.Node, src []byte) Import {
	var imp Import
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "static":
			imp.Static = true
		case "identifier", "scoped_identifier":
			imp.Path = c.Content(src)
		case "asterisk":
			imp.Wildcard = true
		}
	}
	return imp
}

func readType(n *sitter.Node, src []byte, kind string) *RawType {
	rt := &RawType{
		Kind: kind,
		Doc:  docCommentBefore(n, src),
		Line: int(n.StartPoint().Row) + 1,
	}
	if name := n.ChildByFieldName("name"); name != nil {
		rt.Name = name.Content(src)
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "modifiers":
			rt.Modifiers, rt.Annotations = readModifiers(c, src)
		case "type_parameters":
			rt.TypeParams = typeParamNames(c, src)
		case "superclass":
			rt.Superclass = clauseTypeText(c, src)
		case "super_interfaces", "extends_interfaces":
			rt.Interfaces = clauseTypeList(c, src)
		}
	}
	if body := n.ChildByFieldName("body"); body != nil {
		readBody(rt, body, src)
	}
	return rt
}

// readBody collects fields and nested declarations from a class, interface,
// enum or annotation body. Enum bodies nest their member declarations one
// level deeper.
func readBody(rt *RawType, body *sitter.Node, src []byte) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		c := body.NamedChild(i)
		switch c.Type() {
		case "field_declaration", "constant_declaration":
			rt.Fields = append(rt.Fields, readFields(c, src)...)
		case "enum_body_declarations":
			readBody(rt, c, src)
		default:
			if kind, ok := declKinds[c.Type()]; ok {
				rt.Nested = append(rt.Nested, readType(c, src, kind))
			}
		}
	}
}

// readFields expands one field declaration into one RawField per declarator.
func readFields(n *sitter.Node, src []byte) []RawField {
	doc := docCommentBefore(n, src)
	var typeExpr string
	if tn := n.ChildByFieldName("type"); tn != nil {
		typeExpr = tn.Content(src)
	}
	var mods []string
	var anns []RawAnnotation
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() == "modifiers" {
			mods, anns = readModifiers(c, src)
		}
	}

	var fields []RawField
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() != "variable_declarator" {
			continue
		}
		f := RawField{
			TypeExpr:    typeExpr,
			Doc:         doc,
			Modifiers:   mods,
			Annotations: anns,
			Line:        int(c.StartPoint().Row) + 1,
		}
		if name := c.ChildByFieldName("name"); name != nil {
			f.Name = name.Content(src)
		}
		if value := c.ChildByFieldName("value"); value != nil {
			f.Init = value.Content(src)
		}
		fields = append(fields, f)
	}
	return fields
}

// readModifiers splits a modifiers node into keyword modifiers and
// annotations. Keywords are anonymous tokens; annotations are named
// children.
func readModifiers(n *sitter.Node, src []byte) ([]string, []RawAnnotation) {
	var mods []string
	var anns []RawAnnotation
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "marker_annotation", "annotation":
			anns = append(anns, readAnnotation(c, src))
		default:
			if modifierKeywords[c.Type()] {
				mods = append(mods, c.Type())
			}
		}
	}
	return mods, anns
}

func readAnnotation(n *sitter.Node, src []byte) RawAnnotation {
	ann := RawAnnotation{Args: map[string]string{}}
	if name := n.ChildByFieldName("name"); name != nil {
		ann.Name = name.Content(src)
	}
	args := n.ChildByFieldName("arguments")
	if args == nil {
		return ann
	}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		c := args.NamedChild(i)
		if c.Type() == "element_value_pair" {
			key := c.ChildByFieldName("key")
			value := c.ChildByFieldName("value")
			if key != nil && value != nil {
				ann.Args[key.Content(src)] = value.Content(src)
			}
			continue
		}
		// Single-member shorthand: @Foo("x").
		ann.Args["value"] = c.Content(src)
	}
	return ann
}

func typeParamNames(n *sitter.Node, src []byte) []string {
	var names []string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() != "type_parameter" {
			continue
		}
		for j := 0; j < int(c.NamedChildCount()); j++ {
			if id := c.NamedChild(j); id.Type() == "identifier" {
				names = append(names, id.Content(src))
				break
			}
		}
	}
	return names
}

// clauseTypeText returns the single type in an extends clause ("extends X").
func clauseTypeText(n *sitter.Node, src []byte) string {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() != "line_comment" && c.Type() != "block_comment" {
			return c.Content(src)
		}
	}
	return ""
}

// clauseTypeList returns the types of an implements/extends interface list.
func clauseTypeList(n *sitter.Node, src []byte) []string {
	var out []string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() == "type_list" {
			for j := 0; j < int(c.NamedChildCount()); j++ {
				out = append(out, c.NamedChild(j).Content(src))
			}
			return out
		}
	}
	return out
}

// docCommentBefore returns the cleaned javadoc block immediately preceding a
// declaration, "" when there is none.
func docCommentBefore(n *sitter.Node, src []byte) string {
	prev := n.PrevNamedSibling()
	if prev == nil || prev.Type() != "block_comment" {
		return ""
	}
	text := prev.Content(src)
	if !strings.HasPrefix(text, "/**") {
		return ""
	}
	return CleanJavadoc(text)
}

// UnquoteString strips the surrounding quotes from a string literal and
// resolves escapes. Non-literal text is returned unchanged.
func UnquoteString(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return raw
	}
	if s, err := strconv.Unquote(raw); err == nil {
		return s
	}
	return raw[1 : len(raw)-1]
}
