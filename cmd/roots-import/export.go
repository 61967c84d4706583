// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/roots-import/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored records to YAML or JSON",
	Long: `Export writes every stored record (or a filtered subset) to --output,
or to standard output when no file is given. Supports the same filter flags
as query.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	if format != "yaml" && format != "json" {
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	opts := queryOptsFromFlags(cmd)

	if output == "" {
		return writeExport(s, cmd.OutOrStdout(), format, opts)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}
	if err := writeExport(s, f, format, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", output, err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", output)
	return nil
}

func writeExport(s *store.Store, w io.Writer, format string, opts store.QueryOptions) error {
	if format == "json" {
		return s.ExportJSON(context.Background(), w, opts)
	}
	return s.ExportYAML(context.Background(), w, opts)
}

func init() {
	addFilterFlags(exportCmd)
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	exportCmd.Flags().String("output", "", "output file (default: standard output)")
	exportCmd.Flags().Int("limit", 0, "maximum records to export (0 = all)")

	rootCmd.AddCommand(exportCmd)
}
