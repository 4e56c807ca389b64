package sprout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/sprout/internal/model"
)

func newTestUtils() (*model.Universe, *TypeUtils) {
	u := model.NewUniverse()
	return u, NewTypeUtils(u)
}

// nestedElements registers com.example.Outer with an Inner member class and
// returns both.
func nestedElements(u *model.Universe) (outer, inner *model.TypeElement) {
	pkg := u.Package("com.example")
	outer = model.NewTypeElement("com.example.Outer", "Outer", "class", pkg)
	u.Register(outer)
	inner = model.NewTypeElement("com.example.Outer.Inner", "Inner", "class", outer)
	u.Register(inner)
	return outer, inner
}

func TestTypeString_NilType(t *testing.T) {
	t.Parallel()
	_, tu := newTestUtils()

	assert.Equal(t, "", tu.TypeString(nil))
}

func TestTypeString_TopLevelClass(t *testing.T) {
	t.Parallel()
	u, tu := newTestUtils()

	foo := u.ExternalType("com.example.Foo")
	assert.Equal(t, "com.example.Foo", tu.TypeString(foo.AsType()))
}

func TestTypeString_GenericArguments(t *testing.T) {
	t.Parallel()
	u, tu := newTestUtils()

	generic := u.ParseTypeExpr("com.example.Foo<java.lang.String>", nil)
	require.NotNil(t, generic)
	assert.Equal(t, "com.example.Foo<java.lang.String>", tu.TypeString(generic))

	pair := u.ParseTypeExpr("java.util.Map<java.lang.String, java.lang.Integer>", nil)
	require.NotNil(t, pair)
	assert.Equal(t, "java.util.Map<java.lang.String,java.lang.Integer>", tu.TypeString(pair))
}

func TestTypeString_NestedClassUsesBinaryName(t *testing.T) {
	t.Parallel()
	u, tu := newTestUtils()
	_, inner := nestedElements(u)

	assert.Equal(t, "com.example.Outer$Inner", tu.TypeString(inner.AsType()))

	deepest := model.NewTypeElement("com.example.Outer.Inner.Deepest", "Deepest", "class", inner)
	u.Register(deepest)
	assert.Equal(t, "com.example.Outer$Inner$Deepest", tu.TypeString(deepest.AsType()))
}

func TestTypeString_PrimitiveBoxes(t *testing.T) {
	t.Parallel()
	u, tu := newTestUtils()

	want := map[model.Kind]string{
		model.KindBoolean: "java.lang.Boolean",
		model.KindByte:    "java.lang.Byte",
		model.KindChar:    "java.lang.Character",
		model.KindDouble:  "java.lang.Double",
		model.KindFloat:   "java.lang.Float",
		model.KindInt:     "java.lang.Integer",
		model.KindLong:    "java.lang.Long",
		model.KindShort:   "java.lang.Short",
	}
	for kind, qname := range want {
		assert.Equal(t, qname, tu.TypeString(u.Primitive(kind)))
	}
}

func TestTypeString_UnsupportedShapes(t *testing.T) {
	t.Parallel()
	u, tu := newTestUtils()

	assert.Equal(t, "", tu.TypeString(u.Wildcard()))
	assert.Equal(t, "", tu.TypeString(u.ParseTypeExpr("java.lang.String[]", nil)))
}

func TestQualifiedName(t *testing.T) {
	t.Parallel()
	u, tu := newTestUtils()
	outer, inner := nestedElements(u)

	name, err := tu.QualifiedName(outer)
	require.NoError(t, err)
	assert.Equal(t, "com.example.Outer", name)

	name, err = tu.QualifiedName(inner)
	require.NoError(t, err)
	assert.Equal(t, "com.example.Outer$Inner", name)

	name, err = tu.QualifiedName(nil)
	require.NoError(t, err)
	assert.Equal(t, "", name)

	// Packages have no loadable class name.
	_, err = tu.QualifiedName(u.Package("com.example"))
	assert.Error(t, err)
}

func TestWrapperOrPrimitiveFor_RoundTrips(t *testing.T) {
	t.Parallel()
	u, tu := newTestUtils()

	kinds := []model.Kind{
		model.KindBoolean, model.KindByte, model.KindChar, model.KindDouble,
		model.KindFloat, model.KindInt, model.KindLong, model.KindShort,
	}
	for _, kind := range kinds {
		prim := u.Primitive(kind)

		wrapper := tu.WrapperOrPrimitiveFor(prim)
		require.NotNil(t, wrapper, "wrapper for %s", prim)
		assert.Equal(t, model.KindDeclared, wrapper.Kind())

		back := tu.WrapperOrPrimitiveFor(wrapper)
		require.NotNil(t, back, "primitive for %s", wrapper)
		assert.Equal(t, kind, back.Kind())
		assert.Same(t, prim, back)
	}
}

func TestWrapperOrPrimitiveFor_NotConvertible(t *testing.T) {
	t.Parallel()
	u, tu := newTestUtils()

	assert.Nil(t, tu.WrapperOrPrimitiveFor(nil))
	assert.Nil(t, tu.WrapperOrPrimitiveFor(u.LookupType("java.lang.String").AsType()))
	assert.Nil(t, tu.WrapperOrPrimitiveFor(u.ExternalType("com.example.Foo").AsType()))
	assert.Nil(t, tu.WrapperOrPrimitiveFor(u.Wildcard()))
}

func TestIsCollectionOrMap(t *testing.T) {
	t.Parallel()
	u, tu := newTestUtils()

	cases := []struct {
		expr string
		want bool
	}{
		{"java.util.List<java.lang.String>", true},
		{"java.util.ArrayList<java.lang.String>", true},
		{"java.util.Set<java.lang.Integer>", true},
		{"java.util.Map<java.lang.String, java.lang.Integer>", true},
		{"java.util.Properties", true},
		{"java.lang.String", false},
		{"com.example.Foo", false},
		{"int", false},
	}
	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			typ := u.ParseTypeExpr(tc.expr, nil)
			require.NotNil(t, typ)
			assert.Equal(t, tc.want, tu.IsCollectionOrMap(typ))
		})
	}

	assert.False(t, tu.IsCollectionOrMap(nil))
}

func TestIsEnclosedIn(t *testing.T) {
	t.Parallel()
	u, tu := newTestUtils()
	outer, inner := nestedElements(u)

	deepest := model.NewTypeElement("com.example.Outer.Inner.Deepest", "Deepest", "class", inner)
	u.Register(deepest)
	other := u.ExternalType("com.example.Other")

	assert.True(t, tu.IsEnclosedIn(outer, outer), "a type encloses itself")
	assert.True(t, tu.IsEnclosedIn(inner, outer))
	assert.True(t, tu.IsEnclosedIn(deepest, outer), "enclosure is transitive")
	assert.False(t, tu.IsEnclosedIn(outer, inner))
	assert.False(t, tu.IsEnclosedIn(other, outer))
	assert.False(t, tu.IsEnclosedIn(nil, outer))
	assert.False(t, tu.IsEnclosedIn(inner, nil))
}

func TestJavadoc(t *testing.T) {
	t.Parallel()
	u, tu := newTestUtils()

	el := model.NewTypeElement("com.example.Doc", "Doc", "class", u.Package("com.example"))
	el.SetDoc("The server port.")
	assert.Equal(t, "The server port.", tu.Javadoc(el))

	el.SetDoc("  padded  ")
	assert.Equal(t, "padded", tu.Javadoc(el))

	// Whitespace-only comments count as absent.
	el.SetDoc("   \n\t  ")
	assert.Equal(t, "", tu.Javadoc(el))

	el.SetDoc("")
	assert.Equal(t, "", tu.Javadoc(el))

	assert.Equal(t, "", tu.Javadoc(nil))
}
