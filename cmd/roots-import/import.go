// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/roots-import/internal/config"
	"github.com/pdiddy/roots-import/internal/importer"
	"github.com/pdiddy/roots-import/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import INPUT",
	Short: "Decode a corpus file and store its word-to-root records",
	Long: `Import reads INPUT line by line (use "-" for standard input), decodes
each line with the format selected by --kind, and inserts every record into
the roots table tagged with --quality.

Records whose (word, root, index) key is already stored are logged and
skipped. Malformed lines are logged and skipped unless --strict is set, in
which case the first one aborts the import. Any other database error aborts.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadImport(viper.GetViper(), os.LookupEnv, args[0])
	if err != nil {
		return err
	}

	s, err := store.Open(cfg.StoreConfig)
	if err != nil {
		return err
	}
	defer s.Close()

	im, err := importer.New(cfg, s, logger)
	if err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	if cfg.Input != "-" {
		f, err := os.Open(cfg.Input)
		if err != nil {
			return fmt.Errorf("opening input file: %w", err)
		}
		defer f.Close()
		in = f
	}

	summary, err := im.Run(context.Background(), in)
	fmt.Fprintf(cmd.OutOrStdout(), "lines: %d, records: %d, inserted: %d, duplicates: %d, malformed: %d\n",
		summary.Lines, summary.Records, summary.Inserted, summary.Duplicates, summary.Malformed)
	return err
}

func init() {
	importCmd.Flags().String(config.KeyKind, "", "line format: morphemes or psql (env ROOTS_KIND)")
	importCmd.Flags().String(config.KeyQuality, "", "quality tag stored with every record (env ROOTS_QUALITY)")
	importCmd.Flags().Bool(config.KeyStrict, false, "abort on the first malformed line (env ROOTS_STRICT)")

	viper.BindPFlag(config.KeyKind, importCmd.Flags().Lookup(config.KeyKind))
	viper.BindPFlag(config.KeyQuality, importCmd.Flags().Lookup(config.KeyQuality))
	viper.BindPFlag(config.KeyStrict, importCmd.Flags().Lookup(config.KeyStrict))

	rootCmd.AddCommand(importCmd)
}
