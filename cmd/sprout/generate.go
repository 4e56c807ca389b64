package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jward/sprout"
	"github.com/spf13/cobra"
)

var flagOut string

var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Generate configuration metadata JSON from sources",
	Long:  "Loads the source tree directly (no database) and writes the configuration-metadata document to stdout or --out.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&flagOut, "out", "", "write JSON to this file instead of stdout")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	targetDir, err := resolveTargetDir(args)
	if err != nil {
		return err
	}

	proj, err := sprout.LoadDir(context.Background(), targetDir)
	if err != nil {
		return fmt.Errorf("loading sources: %w", err)
	}
	md, err := proj.Metadata()
	if err != nil {
		return fmt.Errorf("extracting metadata: %w", err)
	}

	w := os.Stdout
	if flagOut != "" {
		f, err := os.Create(flagOut)
		if err != nil {
			return fmt.Errorf("creating %s: %w", flagOut, err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(md); err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	return nil
}
