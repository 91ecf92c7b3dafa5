// Package app orchestrates the API client and the local cache behind one
// service the views talk to.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/openrevue/revue-cli/internal/api"
)

// lastSearchKey stores the last applied search query string, so the TUI can
// reopen on the previous result set.
const lastSearchKey = "last_search"

type ArchiveClient interface {
	ListArticles(ctx context.Context) ([]api.Article, error)
	GetArticle(ctx context.Context, id int64) (api.Article, error)
	ListComments(ctx context.Context, articleID int64) ([]api.Comment, error)
	CreateComment(ctx context.Context, articleID int64, content string) (api.Comment, error)
	UpdateComment(ctx context.Context, commentID int64, content string) (api.Comment, error)
	DeleteComment(ctx context.Context, commentID int64) error
	BookmarkStatus(ctx context.Context, articleID int64) (bool, error)
	AddBookmark(ctx context.Context, articleID int64) error
	RemoveBookmark(ctx context.Context, articleID int64) error
	ListBookmarks(ctx context.Context) ([]api.Bookmark, error)
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, email, password string) error
}

type Repository interface {
	SaveArticles(ctx context.Context, articles []api.Article) error
	ListArticles(ctx context.Context) ([]api.Article, error)
	GetValue(ctx context.Context, key string) (string, error)
	SetValue(ctx context.Context, key, value string) error
	DeleteValue(ctx context.Context, key string) error
}

type Service struct {
	client ArchiveClient
	repo   Repository

	mu            sync.Mutex
	bookmarkList  []api.Bookmark
	bookmarkValid bool
}

func NewService(client ArchiveClient, repo Repository) *Service {
	return &Service{client: client, repo: repo}
}

// RefreshArticles fetches the collection, saves it to the cache and returns
// the cached ordering (newest publication first).
func (s *Service) RefreshArticles(ctx context.Context) ([]api.Article, error) {
	articles, err := s.client.ListArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch articles from archive: %w", err)
	}

	if err := s.repo.SaveArticles(ctx, articles); err != nil {
		return nil, fmt.Errorf("save articles to cache: %w", err)
	}

	cached, err := s.repo.ListArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load articles from cache: %w", err)
	}
	return cached, nil
}

// CachedArticles returns the locally cached collection without touching the
// network.
func (s *Service) CachedArticles(ctx context.Context) ([]api.Article, error) {
	articles, err := s.repo.ListArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load articles from cache: %w", err)
	}
	return articles, nil
}

func (s *Service) Article(ctx context.Context, id int64) (api.Article, error) {
	article, err := s.client.GetArticle(ctx, id)
	if err != nil {
		return api.Article{}, fmt.Errorf("fetch article %d: %w", id, err)
	}
	return article, nil
}

func (s *Service) Comments(ctx context.Context, articleID int64) ([]api.Comment, error) {
	comments, err := s.client.ListComments(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("fetch comments for article %d: %w", articleID, err)
	}
	return comments, nil
}

func (s *Service) PostComment(ctx context.Context, articleID int64, content string) (api.Comment, error) {
	return s.client.CreateComment(ctx, articleID, content)
}

func (s *Service) EditComment(ctx context.Context, commentID int64, content string) (api.Comment, error) {
	return s.client.UpdateComment(ctx, commentID, content)
}

func (s *Service) RemoveComment(ctx context.Context, commentID int64) error {
	return s.client.DeleteComment(ctx, commentID)
}

func (s *Service) BookmarkStatus(ctx context.Context, articleID int64) (bool, error) {
	return s.client.BookmarkStatus(ctx, articleID)
}

// ToggleBookmark issues the add or remove matching the caller's current
// state and returns the new server-side state. The optimistic flip and its
// rollback belong to the caller. A confirmed toggle invalidates the memoized
// bookmark list so the next Bookmarks call refetches.
func (s *Service) ToggleBookmark(ctx context.Context, articleID int64, bookmarked bool) (bool, error) {
	if bookmarked {
		if err := s.client.RemoveBookmark(ctx, articleID); err != nil {
			return bookmarked, err
		}
		s.invalidateBookmarks()
		return false, nil
	}
	if err := s.client.AddBookmark(ctx, articleID); err != nil {
		return bookmarked, err
	}
	s.invalidateBookmarks()
	return true, nil
}

// Bookmarks returns the user's bookmark list, memoized until a toggle or a
// login invalidates it.
func (s *Service) Bookmarks(ctx context.Context) ([]api.Bookmark, error) {
	s.mu.Lock()
	if s.bookmarkValid {
		cached := append([]api.Bookmark(nil), s.bookmarkList...)
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	bookmarks, err := s.client.ListBookmarks(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch bookmark list: %w", err)
	}

	s.mu.Lock()
	s.bookmarkList = append([]api.Bookmark(nil), bookmarks...)
	s.bookmarkValid = true
	s.mu.Unlock()
	return bookmarks, nil
}

func (s *Service) invalidateBookmarks() {
	s.mu.Lock()
	s.bookmarkList = nil
	s.bookmarkValid = false
	s.mu.Unlock()
}

func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	token, err := s.client.Login(ctx, username, password)
	if err != nil {
		return "", err
	}
	s.invalidateBookmarks()
	return token, nil
}

func (s *Service) Register(ctx context.Context, username, email, password string) error {
	return s.client.Register(ctx, username, email, password)
}

// SaveLastSearch persists the applied search as its serialized query string.
func (s *Service) SaveLastSearch(ctx context.Context, queryString string) error {
	if queryString == "" {
		return s.repo.DeleteValue(ctx, lastSearchKey)
	}
	return s.repo.SetValue(ctx, lastSearchKey, queryString)
}

func (s *Service) LastSearch(ctx context.Context) (string, error) {
	return s.repo.GetValue(ctx, lastSearchKey)
}
