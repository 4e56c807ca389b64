package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jward/sprout"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the metadata index",
	Long:  "Run queries against an indexed source tree. Requires a prior 'sprout index' run.",
}

func init() {
	queryCmd.AddCommand(propertiesCmd)
	queryCmd.AddCommand(groupsCmd)
	queryCmd.AddCommand(filesCmd)
	queryCmd.AddCommand(typeCmd)
	queryCmd.AddCommand(documentCmd)
}

// openEngine opens the Engine from the --db flag path (or default).
func openEngine() (*sprout.Engine, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting cwd: %w", err)
	}
	repoRoot := findRepoRoot(cwd)
	dbPath := resolveDBPath(repoRoot)

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("database not found: %s (run 'sprout index' first)", dbPath)
	}
	return sprout.New(dbPath)
}

var propertiesCmd = &cobra.Command{
	Use:   "properties [prefix]",
	Short: "List indexed properties, optionally under a prefix",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := openEngine()
		if err != nil {
			return outputError("properties", err)
		}
		defer engine.Close()

		prefix := ""
		if len(args) > 0 {
			prefix = args[0]
		}
		props, err := engine.Query().Properties(prefix)
		if err != nil {
			return outputError("properties", err)
		}

		results := make([]CLIProperty, len(props))
		for i, p := range props {
			results[i] = CLIProperty{
				Name:         p.Name,
				Type:         p.Type,
				Description:  p.Description,
				DefaultValue: p.DefaultValue,
				SourceType:   p.SourceType,
			}
		}
		return outputResult(CLIResult{Command: "properties", Results: results})
	},
}

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List indexed property groups",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := openEngine()
		if err != nil {
			return outputError("groups", err)
		}
		defer engine.Close()

		groups, err := engine.Query().Groups()
		if err != nil {
			return outputError("groups", err)
		}

		results := make([]CLIGroup, len(groups))
		for i, g := range groups {
			results[i] = CLIGroup{Name: g.Name, Type: g.Type, SourceType: g.SourceType}
		}
		return outputResult(CLIResult{Command: "groups", Results: results})
	},
}

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List indexed source files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := openEngine()
		if err != nil {
			return outputError("files", err)
		}
		defer engine.Close()

		files, err := engine.Query().Files()
		if err != nil {
			return outputError("files", err)
		}

		results := make([]CLIFile, len(files))
		for i, f := range files {
			results[i] = CLIFile{ID: f.ID, Path: f.Path, Package: f.Package}
		}
		return outputResult(CLIResult{Command: "files", Results: results})
	},
}

var typeCmd = &cobra.Command{
	Use:   "type <qualified-name>",
	Short: "Look up an indexed type declaration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := openEngine()
		if err != nil {
			return outputError("type", err)
		}
		defer engine.Close()

		t, err := engine.Query().TypeByName(args[0])
		if err != nil {
			return outputError("type", err)
		}
		if t == nil {
			return outputError("type", fmt.Errorf("type not found: %s", args[0]))
		}
		result := CLIType{
			ID:            t.ID,
			QualifiedName: t.QualifiedName,
			BinaryName:    t.BinaryName,
			Kind:          t.Kind,
		}
		return outputResult(CLIResult{Command: "type", Results: result})
	},
}

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Emit the full metadata document from the index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := openEngine()
		if err != nil {
			return outputError("document", err)
		}
		defer engine.Close()

		md, err := engine.Query().Document()
		if err != nil {
			return outputError("document", err)
		}
		// The document is always JSON regardless of --format: it IS the
		// output artifact, not a result listing.
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(md)
	},
}

// outputResult marshals a CLIResult to stdout in the selected format.
func outputResult(result CLIResult) error {
	if flagFormat == "text" {
		return outputResultText(result)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// outputError writes an error in the selected format and returns it so RunE
// can propagate it to Cobra. In JSON mode the error is written to stdout as
// a CLIResult envelope. In text mode it goes to stderr.
func outputError(command string, err error) error {
	errorHandled = true
	if flagFormat == "text" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return err
	}
	result := CLIResult{
		Command: command,
		Error:   err.Error(),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(result)
	return err
}
