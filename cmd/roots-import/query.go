// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/roots-import/internal/store"
)

// --- query subcommand ---

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "List stored records filtered by word, root, or quality",
	RunE:  runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := s.Query(context.Background(), queryOptsFromFlags(cmd))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(cmd.OutOrStdout(), records, jsonOutput)
}

func formatQueryOutput(w io.Writer, records []store.Record, jsonOutput bool) error {
	if jsonOutput {
		if records == nil {
			records = []store.Record{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "No records found.")
		return nil
	}

	fmt.Fprintf(w, "%-30s  %-20s  %5s  %s\n", "Word", "Root", "Index", "Quality")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for _, r := range records {
		fmt.Fprintf(w, "%-30s  %-20s  %5d  %s\n", r.Word, r.Root.Root, r.Index, r.Quality)
	}
	fmt.Fprintf(w, "\n%d records\n", len(records))
	return nil
}

// --- stats subcommand ---

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count stored records per quality tag",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		stats, err := s.Stats(context.Background())
		if err != nil {
			return err
		}
		formatStats(cmd.OutOrStdout(), stats)
		return nil
	},
}

func formatStats(w io.Writer, stats store.Stats) {
	qualities := make([]string, 0, len(stats.ByQuality))
	for q := range stats.ByQuality {
		qualities = append(qualities, q)
	}
	sort.Strings(qualities)

	for _, q := range qualities {
		fmt.Fprintf(w, "%-20s  %d\n", q, stats.ByQuality[q])
	}
	fmt.Fprintf(w, "%-20s  %d\n", "total", stats.Total)
}

// --- shared helpers ---

func queryOptsFromFlags(cmd *cobra.Command) store.QueryOptions {
	word, _ := cmd.Flags().GetString("word")
	root, _ := cmd.Flags().GetString("root")
	quality, _ := cmd.Flags().GetString("quality")
	limit, _ := cmd.Flags().GetInt("limit")

	return store.QueryOptions{
		Word:       word,
		Root:       root,
		Quality:    quality,
		MaxResults: limit,
	}
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("word", "", "filter by word")
	cmd.Flags().String("root", "", "filter by root")
	cmd.Flags().String("quality", "", "filter by quality tag")
}

func init() {
	addFilterFlags(queryCmd)
	queryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	queryCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(statsCmd)
}
