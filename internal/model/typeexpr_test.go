package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubScope resolves a fixed set of simple names and type variables, the way
// a file binding scope would.
type stubScope struct {
	names map[string]*TypeElement
	vars  map[string]bool
}

func (s *stubScope) ResolveName(name string) *TypeElement { return s.names[name] }

func (s *stubScope) IsTypeVariable(name string) bool { return s.vars[name] }

func TestParseTypeExpr(t *testing.T) {
	t.Parallel()
	u := NewUniverse()
	scope := &stubScope{
		names: map[string]*TypeElement{
			"String":  u.LookupType("java.lang.String"),
			"Integer": u.LookupType("java.lang.Integer"),
			"List":    u.LookupType("java.util.List"),
			"Map":     u.LookupType("java.util.Map"),
			"Widget":  u.ExternalType("com.acme.Widget"),
		},
		vars: map[string]bool{"T": true},
	}

	cases := []struct {
		expr string
		want string
		kind Kind
	}{
		{"int", "int", KindInt},
		{"boolean", "boolean", KindBoolean},
		{"String", "java.lang.String", KindDeclared},
		{"java.lang.String", "java.lang.String", KindDeclared},
		{"List<String>", "java.util.List<java.lang.String>", KindDeclared},
		{"Map<String, Integer>", "java.util.Map<java.lang.String, java.lang.Integer>", KindDeclared},
		{"Map<String, List<Integer>>", "java.util.Map<java.lang.String, java.util.List<java.lang.Integer>>", KindDeclared},
		{"int[]", "int[]", KindArray},
		{"String[][]", "java.lang.String[][]", KindArray},
		{"List<String>[]", "java.util.List<java.lang.String>[]", KindArray},
		{"?", "?", KindWildcard},
		{"? extends Integer", "?", KindWildcard},
		{"List<?>", "java.util.List<?>", KindDeclared},
		{"List<? extends Widget>", "java.util.List<?>", KindDeclared},
		{"T", "T", KindTypeVar},
		{"List<T>", "java.util.List<T>", KindDeclared},
		{"Widget", "com.acme.Widget", KindDeclared},
		{"  Map < String , Integer > ", "java.util.Map<java.lang.String, java.lang.Integer>", KindDeclared},
	}
	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			typ := u.ParseTypeExpr(tc.expr, scope)
			require.NotNil(t, typ, "expr %q", tc.expr)
			assert.Equal(t, tc.want, typ.String())
			assert.Equal(t, tc.kind, typ.Kind())
		})
	}
}

func TestParseTypeExpr_Unusable(t *testing.T) {
	t.Parallel()
	u := NewUniverse()

	assert.Nil(t, u.ParseTypeExpr("", nil))
	assert.Nil(t, u.ParseTypeExpr("void", nil))
	assert.Nil(t, u.ParseTypeExpr("List<", nil))
	assert.Nil(t, u.ParseTypeExpr("int[3]", nil))
}

func TestParseTypeExpr_NilScopeFallsBackToJavaLang(t *testing.T) {
	t.Parallel()
	u := NewUniverse()

	typ := u.ParseTypeExpr("String", nil)
	require.NotNil(t, typ)
	assert.Equal(t, "java.lang.String", typ.String())

	// Unknown simple names become bare placeholders.
	typ = u.ParseTypeExpr("Widget", nil)
	require.NotNil(t, typ)
	assert.Equal(t, "Widget", typ.String())
}

func TestParseTypeExpr_GenericPlaceholderKeepsWrittenArgs(t *testing.T) {
	t.Parallel()
	u := NewUniverse()

	// Placeholder elements have no declared arity; the written argument
	// list is still preserved.
	typ := u.ParseTypeExpr("com.acme.Box<java.lang.String>", nil)
	require.NotNil(t, typ)
	assert.Equal(t, "com.acme.Box<java.lang.String>", typ.String())
}
