package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

// formatPropertiesText formats CLIProperty results as aligned columns.
func formatPropertiesText(w io.Writer, props []CLIProperty) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tDEFAULT\tDESCRIPTION")
	for _, p := range props {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Name, p.Type, p.DefaultValue, p.Description)
	}
	tw.Flush()
}

// formatGroupsText formats CLIGroup results as aligned columns.
func formatGroupsText(w io.Writer, groups []CLIGroup) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE")
	for _, g := range groups {
		fmt.Fprintf(tw, "%s\t%s\n", g.Name, g.Type)
	}
	tw.Flush()
}

// formatFilesText formats CLIFile results as aligned columns.
func formatFilesText(w io.Writer, files []CLIFile) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPATH\tPACKAGE")
	for _, f := range files {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", f.ID, f.Path, f.Package)
	}
	tw.Flush()
}

// formatTypeText formats a single CLIType.
func formatTypeText(w io.Writer, t CLIType) {
	fmt.Fprintf(w, "Qualified name: %s\n", t.QualifiedName)
	fmt.Fprintf(w, "Binary name: %s\n", t.BinaryName)
	fmt.Fprintf(w, "Kind: %s\n", t.Kind)
}

// outputResultText dispatches to the appropriate text formatter based on
// the result type. It writes to os.Stdout.
func outputResultText(result CLIResult) error {
	w := io.Writer(os.Stdout)

	switch v := result.Results.(type) {
	case []CLIProperty:
		formatPropertiesText(w, v)
	case []CLIGroup:
		formatGroupsText(w, v)
	case []CLIFile:
		formatFilesText(w, v)
	case CLIType:
		formatTypeText(w, v)
	case nil:
		// No output for nil results.
	default:
		return fmt.Errorf("unsupported result type for text format: %T", v)
	}
	return nil
}

// validFormats lists accepted values for --format.
var validFormats = []string{"json", "text"}

// validateFormat checks that the --format flag value is recognized.
func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be %s", format, strings.Join(validFormats, " or "))
}
