package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openrevue/revue-cli/internal/api"
)

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "List the bookmarks of the logged-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := startupContext()
		defer cancel()

		s, err := buildStack(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		if !s.session.IsLoggedIn() {
			return fmt.Errorf("not logged in, run 'revue login' first")
		}

		bookmarks, err := s.service.Bookmarks(ctx)
		if err != nil {
			if errors.Is(err, api.ErrUnauthorized) {
				return fmt.Errorf("session expired, run 'revue login' again")
			}
			return err
		}

		if len(bookmarks) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No bookmarks")
			return nil
		}
		for _, b := range bookmarks {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n",
				b.ArticleID,
				b.CreatedAt,
				b.ArticleTitle,
			)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bookmarksCmd)
}
