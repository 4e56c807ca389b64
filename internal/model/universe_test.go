package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitive_AllKinds(t *testing.T) {
	t.Parallel()
	u := NewUniverse()

	kinds := []Kind{
		KindBoolean, KindByte, KindChar, KindDouble,
		KindFloat, KindInt, KindLong, KindShort,
	}
	for _, k := range kinds {
		p := u.Primitive(k)
		require.NotNil(t, p, "primitive for kind %s", k)
		assert.Equal(t, k, p.Kind())
		assert.True(t, p.Kind().IsPrimitive())
	}

	assert.Nil(t, u.Primitive(KindDeclared))
	assert.Nil(t, u.Primitive(KindWildcard))
}

func TestBoxed_Bijection(t *testing.T) {
	t.Parallel()
	u := NewUniverse()

	want := map[Kind]string{
		KindBoolean: "java.lang.Boolean",
		KindByte:    "java.lang.Byte",
		KindChar:    "java.lang.Character",
		KindDouble:  "java.lang.Double",
		KindFloat:   "java.lang.Float",
		KindInt:     "java.lang.Integer",
		KindLong:    "java.lang.Long",
		KindShort:   "java.lang.Short",
	}
	seen := map[string]bool{}
	for kind, qname := range want {
		boxed := u.Boxed(u.Primitive(kind).(*PrimitiveType))
		require.NotNil(t, boxed)
		assert.Equal(t, qname, boxed.QualifiedName())
		assert.False(t, seen[boxed.QualifiedName()], "wrapper %s mapped twice", qname)
		seen[boxed.QualifiedName()] = true
	}
	assert.Len(t, seen, 8)
}

func TestExternalType_SynthesizesPlaceholder(t *testing.T) {
	t.Parallel()
	u := NewUniverse()

	el := u.ExternalType("com.acme.Widget")
	require.NotNil(t, el)
	assert.Equal(t, "com.acme.Widget", el.QualifiedName())
	assert.Equal(t, "Widget", el.SimpleName())

	pkg, ok := el.Enclosing().(*PackageElement)
	require.True(t, ok)
	assert.Equal(t, "com.acme", pkg.Name())

	// Memoized: same handle on repeat lookup.
	assert.Same(t, el, u.ExternalType("com.acme.Widget"))
	assert.Same(t, el, u.LookupType("com.acme.Widget"))
}

func TestDeclaredType_ArityMismatch(t *testing.T) {
	t.Parallel()
	u := NewUniverse()

	list := u.LookupType("java.util.List")
	require.NotNil(t, list)

	_, err := u.DeclaredType(list, u.Wildcard(), u.Wildcard())
	assert.Error(t, err)

	dt, err := u.DeclaredType(list, u.Wildcard())
	require.NoError(t, err)
	assert.Equal(t, "java.util.List<?>", dt.String())

	raw, err := u.DeclaredType(list)
	require.NoError(t, err)
	assert.Equal(t, "java.util.List", raw.String())
}

func TestIsAssignable_CollectionHierarchy(t *testing.T) {
	t.Parallel()
	u := NewUniverse()

	collectionRef, err := u.DeclaredType(u.LookupType("java.util.Collection"), u.Wildcard())
	require.NoError(t, err)
	mapRef, err := u.DeclaredType(u.LookupType("java.util.Map"), u.Wildcard(), u.Wildcard())
	require.NoError(t, err)

	strType := u.LookupType("java.lang.String").AsType()

	cases := []struct {
		name string
		src  Type
		dst  Type
		want bool
	}{
		{"ArrayList to Collection<?>", u.LookupType("java.util.ArrayList").AsType(), collectionRef, true},
		{"List<String> to Collection<?>", &DeclaredType{elem: u.LookupType("java.util.List"), args: []Type{strType}}, collectionRef, true},
		{"TreeMap to Map<?,?>", u.LookupType("java.util.TreeMap").AsType(), mapRef, true},
		{"Properties to Map<?,?>", u.LookupType("java.util.Properties").AsType(), mapRef, true},
		{"String to Collection<?>", strType, collectionRef, false},
		{"Map to Collection<?>", u.LookupType("java.util.Map").AsType(), collectionRef, false},
		{"primitive to Collection<?>", u.Primitive(KindInt), collectionRef, false},
		{"placeholder POJO to Map<?,?>", u.ExternalType("com.acme.Config").AsType(), mapRef, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, u.IsAssignable(tc.src, tc.dst))
		})
	}
}

func TestIsAssignable_RawTargetAcceptsAnySubtype(t *testing.T) {
	t.Parallel()
	u := NewUniverse()

	rawCollection := u.LookupType("java.util.Collection").AsType()
	assert.True(t, u.IsAssignable(u.LookupType("java.util.HashSet").AsType(), rawCollection))
}

func TestTypeString_Forms(t *testing.T) {
	t.Parallel()
	u := NewUniverse()

	str := u.LookupType("java.lang.String").AsType()
	list := &DeclaredType{elem: u.LookupType("java.util.List"), args: []Type{str}}

	assert.Equal(t, "int", u.Primitive(KindInt).String())
	assert.Equal(t, "java.lang.String", str.String())
	assert.Equal(t, "java.util.List<java.lang.String>", list.String())
	assert.Equal(t, "java.lang.String[]", (&ArrayType{component: str}).String())
	assert.Equal(t, "?", u.Wildcard().String())
	assert.Equal(t, "T", (&TypeVariable{name: "T"}).String())
}
