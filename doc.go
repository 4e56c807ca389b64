// Package sprout extracts Spring-style configuration metadata from Java
// source trees. It parses .java files with tree-sitter, binds the
// declarations into a small semantic model of elements and types, and
// renders classes annotated with @ConfigurationProperties into the
// configuration-metadata JSON format (groups and properties with qualified
// type names, descriptions and default values).
//
// # Pipeline
//
//  1. Discover: find .java files under a root, via git ls-files when
//     available, with a filesystem walk as fallback.
//
//  2. Bind: parse every file, register the declared types (including nested
//     classes) in a [Universe], and resolve field and supertype expressions
//     against each file's imports.
//
//  3. Extract: walk annotated classes with [TypeUtils] — the renderer that
//     produces loadable $-joined qualified names, classifies collection and
//     map types, and converts between primitives and their wrappers — and
//     produce a [Metadata] document.
//
// # Usage
//
// Load a project and generate metadata directly:
//
//	proj, err := sprout.LoadDir(ctx, "path/to/project")
//	if err != nil { ... }
//	md, err := proj.Metadata()
//
// Or keep an incremental SQLite index for repeated runs and queries:
//
//	e, err := sprout.New("sprout.db")
//	if err != nil { ... }
//	defer e.Close()
//	stats, err := e.Index(ctx, "path/to/project")
//	props, err := e.Query().Properties("app.server")
package sprout
