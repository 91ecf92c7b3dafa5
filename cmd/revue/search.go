package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/openrevue/revue-cli/internal/filter"
	"github.com/openrevue/revue-cli/internal/urlstate"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Filter cached articles and print the matches",
	Long: `Search applies the same criteria as the interactive browser to the locally
cached articles and prints one line per match. Run 'revue browse' and press
'r' first if the cache is empty.

--from-query accepts a share link or query string produced by the browser,
e.g. 'author=mar&volume=3'. Explicit flags override its values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := startupContext()
		defer cancel()

		s, err := buildStack(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		var criteria filter.Criteria
		if raw, _ := cmd.Flags().GetString("from-query"); raw != "" {
			criteria, err = urlstate.Decode(raw)
			if err != nil {
				return err
			}
		}

		flagDims := map[filter.Dimension]string{
			filter.DimQuery:     "query",
			filter.DimAuthor:    "author",
			filter.DimDateRange: "date-range",
			filter.DimVolume:    "volume",
			filter.DimType:      "type",
			filter.DimCategory:  "category",
		}
		for dim, name := range flagDims {
			if !cmd.Flags().Changed(name) {
				continue
			}
			raw, _ := cmd.Flags().GetString(name)
			if err := criteria.Set(dim, raw); err != nil {
				return err
			}
		}

		articles, err := s.service.CachedArticles(ctx)
		if err != nil {
			return err
		}
		matches := filter.Evaluate(articles, criteria, time.Now())

		if qs := urlstate.Encode(criteria); qs != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", qs)
		}
		for _, article := range matches {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n",
				article.ID,
				article.PublicationDate.Format(time.DateOnly),
				article.Author,
				article.Title,
			)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d/%d articles\n", len(matches), len(articles))
		return nil
	},
}

func init() {
	searchCmd.Flags().String("query", "", "free-text query over title, author, keywords and abstract")
	searchCmd.Flags().String("author", "", "author name substring")
	searchCmd.Flags().String("date-range", "", "publication window: week, month or year")
	searchCmd.Flags().String("volume", "", fmt.Sprintf("volume number (1..%d)", filter.MaxVolume))
	searchCmd.Flags().String("type", "", "article type: research, review or case-study")
	searchCmd.Flags().String("category", "", "category: sciences, humanities or engineering")
	searchCmd.Flags().String("from-query", "", "seed criteria from a share link or query string")

	rootCmd.AddCommand(searchCmd)
}
