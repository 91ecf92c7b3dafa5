package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/openrevue/revue-cli/internal/filter"
	"github.com/openrevue/revue-cli/internal/tui"
	"github.com/openrevue/revue-cli/internal/urlstate"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the interactive article browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowse(cmd)
	},
}

func runBrowse(cmd *cobra.Command) error {
	ctx, cancel := startupContext()
	defer cancel()

	s, err := buildStack(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	articles, err := s.service.CachedArticles(ctx)
	if err != nil {
		return fmt.Errorf("load cached articles: %w", err)
	}

	criteria := filter.Criteria{}
	if raw, err := s.service.LastSearch(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load last search (%v)\n", err)
	} else if raw != "" {
		if restored, err := urlstate.Decode(raw); err == nil {
			criteria = restored
		}
	}

	model := tui.NewModel(s.service, s.session, articles, criteria, s.cfg.PageSize, shareBaseURL(s.cfg.APIBaseURL))
	model.SetSaveSearchFn(func(queryString string) error {
		saveCtx, saveCancel := startupContext()
		defer saveCancel()
		return s.service.SaveLastSearch(saveCtx, queryString)
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
