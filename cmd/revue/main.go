// Package main is the entry point for the revue CLI, a terminal client for
// the revue academic archive. Running it without a subcommand opens the
// interactive browser.
package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/openrevue/revue-cli/internal/api"
	"github.com/openrevue/revue-cli/internal/app"
	"github.com/openrevue/revue-cli/internal/config"
	"github.com/openrevue/revue-cli/internal/session"
	"github.com/openrevue/revue-cli/internal/storage"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "revue",
	Short: "Terminal client for the revue academic archive",
	Long: `revue browses an academic article archive from the terminal: filter and
search articles, read abstracts and comment threads, and manage bookmarks
with an account.

Without a subcommand it opens the interactive browser.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowse(cmd)
	},
}

// stack bundles everything a subcommand needs. Close releases the database.
type stack struct {
	cfg     config.Config
	repo    *storage.Repository
	session *session.Session
	service *app.Service
}

func (s *stack) Close() error {
	return s.repo.Close()
}

func buildStack(ctx context.Context) (*stack, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	repo, err := storage.NewRepository(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := repo.Init(ctx); err != nil {
		repo.Close()
		return nil, err
	}
	if err := repo.CheckWritable(ctx); err != nil {
		repo.Close()
		return nil, err
	}

	sess, err := session.Load(ctx, repo)
	if err != nil {
		repo.Close()
		return nil, err
	}

	client := api.NewClient(cfg.APIBaseURL, sess, &http.Client{Timeout: cfg.HTTPTimeout})
	return &stack{
		cfg:     cfg,
		repo:    repo,
		session: sess,
		service: app.NewService(client, repo),
	}, nil
}

// shareBaseURL is the public address criteria links point at, the API base
// without its /api suffix.
func shareBaseURL(apiBaseURL string) string {
	return strings.TrimSuffix(apiBaseURL, "/api")
}

func startupContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 15*time.Second)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
