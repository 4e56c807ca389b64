package main

// CLIResult is the JSON envelope every command writes to stdout.
type CLIResult struct {
	Command string `json:"command"`
	Results any    `json:"results,omitempty"`
	Error   string `json:"error,omitempty"`
}

// CLIProperty is one configuration property as presented on the CLI.
type CLIProperty struct {
	Name         string `json:"name"`
	Type         string `json:"type,omitempty"`
	Description  string `json:"description,omitempty"`
	DefaultValue string `json:"defaultValue,omitempty"`
	SourceType   string `json:"sourceType,omitempty"`
}

// CLIGroup is one property group as presented on the CLI.
type CLIGroup struct {
	Name       string `json:"name"`
	Type       string `json:"type,omitempty"`
	SourceType string `json:"sourceType,omitempty"`
}

// CLIFile is one indexed source file as presented on the CLI.
type CLIFile struct {
	ID      int64  `json:"id"`
	Path    string `json:"path"`
	Package string `json:"package,omitempty"`
}

// CLIType is one indexed type declaration as presented on the CLI.
type CLIType struct {
	ID            int64  `json:"id"`
	QualifiedName string `json:"qualifiedName"`
	BinaryName    string `json:"binaryName"`
	Kind          string `json:"kind"`
}
