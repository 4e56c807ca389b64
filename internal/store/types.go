package store

import "time"

// File is one indexed .java source file.
type File struct {
	ID          int64
	Path        string
	Package     string
	Hash        string
	LastIndexed time.Time
}

// TypeDecl is one extracted type declaration. BinaryName is the $-joined
// loadable name; QualifiedName the dotted source form.
type TypeDecl struct {
	ID            int64
	FileID        int64
	QualifiedName string
	BinaryName    string
	Kind          string
	ParentTypeID  *int64
}

// PropertyGroup is one derived configuration group (an annotated class or a
// nested member).
type PropertyGroup struct {
	ID         int64
	FileID     *int64
	Name       string
	Type       string
	SourceType string
}

// Property is one derived configuration property. DefaultValue holds the
// JSON encoding of the default, "" when none was declared.
type Property struct {
	ID           int64
	FileID       *int64
	GroupName    string
	Name         string
	Type         string
	Description  string
	DefaultValue string
	SourceType   string
}
