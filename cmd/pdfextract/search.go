// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfextract/internal/pageindex"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search pages recorded in the page index",
	Long: `Search looks up pages stored by earlier runs that used --index-db.
Matching is a case-insensitive substring match on the page text. Results
are ordered by document path and page number.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	dbPath := viper.GetString("index_db")
	if dbPath == "" {
		return fmt.Errorf("--index-db is required for search")
	}
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := pageindex.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	hits, err := store.Search(cmd.Context(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	}
	if len(hits) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}

	fmt.Fprintf(out, "%-40s  %-5s  %s\n", "Document", "Page", "Snippet")
	fmt.Fprintln(out, strings.Repeat("-", 100))
	for _, h := range hits {
		fmt.Fprintf(out, "%-40s  %-5d  %s\n", h.Path, h.Page, h.Snippet)
	}
	return nil
}

func init() {
	searchCmd.Flags().Int("limit", 20, "maximum number of pages to list")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
