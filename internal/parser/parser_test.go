package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSrc(t *testing.T, src string) *SourceFile {
	t.Helper()
	f, err := ParseSource(context.Background(), []byte(src), "Test.java")
	require.NoError(t, err)
	return f
}

func TestParse_PackageAndImports(t *testing.T) {
	t.Parallel()
	f := parseSrc(t, `package com.example.app;

import java.util.List;
import java.util.*;
import static java.util.Collections.emptyList;

public class App {}
`)
	assert.Equal(t, "com.example.app", f.Package)
	require.Len(t, f.Imports, 3)

	assert.Equal(t, Import{Path: "java.util.List"}, f.Imports[0])
	assert.Equal(t, Import{Path: "java.util", Wildcard: true}, f.Imports[1])
	assert.Equal(t, Import{Path: "java.util.Collections.emptyList", Static: true}, f.Imports[2])

	require.Len(t, f.Types, 1)
	assert.Equal(t, "App", f.Types[0].Name)
	assert.Equal(t, "class", f.Types[0].Kind)
	assert.Contains(t, f.Types[0].Modifiers, "public")
}

func TestParse_FieldsWithTypesAndInitializers(t *testing.T) {
	t.Parallel()
	f := parseSrc(t, `public class Server {
    private int port = 8080;
    private String host = "localhost";
    private boolean enabled;
    private static final int MAX = 10;
    private java.util.List<String> aliases;
    private int x, y;
}
`)
	require.Len(t, f.Types, 1)
	fields := f.Types[0].Fields
	require.Len(t, fields, 7)

	byName := map[string]RawField{}
	for _, fd := range fields {
		byName[fd.Name] = fd
	}

	assert.Equal(t, "int", byName["port"].TypeExpr)
	assert.Equal(t, "8080", byName["port"].Init)
	assert.Equal(t, "String", byName["host"].TypeExpr)
	assert.Equal(t, `"localhost"`, byName["host"].Init)
	assert.Equal(t, "boolean", byName["enabled"].TypeExpr)
	assert.Empty(t, byName["enabled"].Init)
	assert.Contains(t, byName["MAX"].Modifiers, "static")
	assert.Contains(t, byName["MAX"].Modifiers, "final")
	assert.Equal(t, "java.util.List<String>", byName["aliases"].TypeExpr)

	// Multiple declarators share one type.
	assert.Equal(t, "int", byName["x"].TypeExpr)
	assert.Equal(t, "int", byName["y"].TypeExpr)
}

func TestParse_Annotations(t *testing.T) {
	t.Parallel()
	f := parseSrc(t, `package com.example;

@Deprecated
@ConfigurationProperties(prefix = "app.server")
@SuppressWarnings("unchecked")
public class ServerProperties {
}
`)
	require.Len(t, f.Types, 1)
	anns := f.Types[0].Annotations
	require.Len(t, anns, 3)

	assert.Equal(t, "Deprecated", anns[0].Name)
	assert.Empty(t, anns[0].Args)

	assert.Equal(t, "ConfigurationProperties", anns[1].Name)
	prefix, ok := anns[1].StringArg("prefix")
	require.True(t, ok)
	assert.Equal(t, "app.server", prefix)

	assert.Equal(t, "SuppressWarnings", anns[2].Name)
	value, ok := anns[2].StringArg("value")
	require.True(t, ok)
	assert.Equal(t, "unchecked", value)
}

func TestParse_NestedTypes(t *testing.T) {
	t.Parallel()
	f := parseSrc(t, `package com.example;

public class Outer {
    private Inner inner;

    public static class Inner {
        private String name;

        public static class Deepest {}
    }
}
`)
	require.Len(t, f.Types, 1)
	outer := f.Types[0]
	require.Len(t, outer.Nested, 1)

	inner := outer.Nested[0]
	assert.Equal(t, "Inner", inner.Name)
	require.Len(t, inner.Fields, 1)
	assert.Equal(t, "name", inner.Fields[0].Name)

	require.Len(t, inner.Nested, 1)
	assert.Equal(t, "Deepest", inner.Nested[0].Name)
}

func TestParse_Javadoc(t *testing.T) {
	t.Parallel()
	f := parseSrc(t, `package com.example;

/**
 * Server configuration.
 */
public class Config {
    /**
     * Port to listen on.
     */
    private int port;

    /* not javadoc */
    private String host;

    private boolean plain;
}
`)
	require.Len(t, f.Types, 1)
	rt := f.Types[0]
	assert.Equal(t, "Server configuration.", rt.Doc)

	byName := map[string]RawField{}
	for _, fd := range rt.Fields {
		byName[fd.Name] = fd
	}
	assert.Equal(t, "Port to listen on.", byName["port"].Doc)
	assert.Empty(t, byName["host"].Doc)
	assert.Empty(t, byName["plain"].Doc)
}

func TestParse_InterfaceEnumAndSupertypes(t *testing.T) {
	t.Parallel()
	f := parseSrc(t, `package com.example;

public class Custom extends Base implements Closeable, Runnable {}

public interface Handler extends Comparable<Handler> {}

public enum Mode {
    FAST, SLOW;

    private int weight;
}
`)
	require.Len(t, f.Types, 3)

	custom := f.Types[0]
	assert.Equal(t, "Base", custom.Superclass)
	assert.Equal(t, []string{"Closeable", "Runnable"}, custom.Interfaces)

	handler := f.Types[1]
	assert.Equal(t, "interface", handler.Kind)
	assert.Equal(t, []string{"Comparable<Handler>"}, handler.Interfaces)

	mode := f.Types[2]
	assert.Equal(t, "enum", mode.Kind)
	require.Len(t, mode.Fields, 1)
	assert.Equal(t, "weight", mode.Fields[0].Name)
}

func TestParse_TypeParameters(t *testing.T) {
	t.Parallel()
	f := parseSrc(t, `public class Box<T, U extends Number> {
    private T value;
}
`)
	require.Len(t, f.Types, 1)
	assert.Equal(t, []string{"T", "U"}, f.Types[0].TypeParams)
	require.Len(t, f.Types[0].Fields, 1)
	assert.Equal(t, "T", f.Types[0].Fields[0].TypeExpr)
}

func TestParse_File(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "App.java")
	require.NoError(t, os.WriteFile(path, []byte("package a;\npublic class App {}\n"), 0644))

	f, err := Parse(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path)
	assert.Equal(t, "a", f.Package)
	require.Len(t, f.Types, 1)
}

func TestParse_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := Parse(context.Background(), filepath.Join(t.TempDir(), "Nope.java"))
	assert.Error(t, err)
}
