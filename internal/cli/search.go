package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/linkhub/internal/domain"
)

var (
	searchCategory string
	searchHashtags int
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Filter the directory",
	Long: `Filters the directory by a case-insensitive substring of the title,
description or keywords, within a category. Matches are shown in [brackets].
Without a query, every link of the category is listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", domain.CategoryAll, "category to search in")
	searchCmd.Flags().IntVar(&searchHashtags, "hashtags", 3, "keywords shown as hashtags per link")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	var query string
	if len(args) == 1 {
		query = args[0]
	}

	dir, err := loadDirectory(cmd)
	if err != nil {
		return err
	}

	results := dir.Filter(query, searchCategory)
	out := cmd.OutOrStdout()

	if searchJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	if len(results) == 0 {
		_, err := fmt.Fprintln(out, "No links match your search.")
		return err
	}

	for _, l := range results {
		fmt.Fprintln(out, renderSegments(domain.Highlight(l.Title, query)))
		fmt.Fprintf(out, "  %s  (%s)\n", l.URL, l.Category)
		if l.Description != "" {
			fmt.Fprintf(out, "  %s\n", renderSegments(domain.Highlight(l.Description, query)))
		}
		if tags := domain.Hashtags(l.Keywords, searchHashtags); len(tags) > 0 {
			fmt.Fprintf(out, "  %s\n", strings.Join(tags, " "))
		}
		fmt.Fprintln(out)
	}
	_, err = fmt.Fprintf(out, "%d link(s) in %s\n", len(results), searchCategory)
	return err
}

// renderSegments marks matched segments with brackets.
func renderSegments(segments []domain.Segment) string {
	var b strings.Builder
	for _, s := range segments {
		if s.Matched {
			b.WriteString("[" + s.Text + "]")
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}
