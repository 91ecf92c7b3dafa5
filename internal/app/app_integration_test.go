package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/openrevue/revue-cli/internal/api"
	"github.com/openrevue/revue-cli/internal/storage"
)

// fakeArchive is an in-memory stand-in for the journal backend, enough to
// drive the service through a full refresh/bookmark/comment cycle.
type fakeArchive struct {
	mu        sync.Mutex
	articles  []api.Article
	bookmarks map[int64]bool
	comments  []api.Comment
	nextID    int64
}

func (f *fakeArchive) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /articles/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(f.articles)
	})
	mux.HandleFunc("GET /articles/{id}/bookmark/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]bool{"exists": f.bookmarks[1]})
	})
	mux.HandleFunc("POST /articles/{id}/bookmark/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.bookmarks[1] = true
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("DELETE /articles/{id}/bookmark/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.bookmarks, 1)
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /articles/{id}/comments/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(f.comments)
	})
	mux.HandleFunc("POST /articles/{id}/comments/", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Content string `json:"content"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		f.mu.Lock()
		defer f.mu.Unlock()
		f.nextID++
		comment := api.Comment{ID: f.nextID, Author: "martin", Content: payload.Content, CreatedAt: time.Now().UTC(), IsOwner: true}
		f.comments = append(f.comments, comment)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(comment)
	})
	return mux
}

func TestIntegration_RefreshBookmarkAndComment(t *testing.T) {
	archive := &fakeArchive{
		articles: []api.Article{
			{ID: 1, Title: "Sur la logique", Author: "Dupont", PublicationDate: api.Date{Time: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}},
			{ID: 2, Title: "Thermodynamique", Author: "Martin", PublicationDate: api.Date{Time: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)}},
		},
		bookmarks: make(map[int64]bool),
	}
	ts := httptest.NewServer(archive.handler())
	defer ts.Close()

	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "revue-integration.db"))
	if err != nil {
		t.Fatalf("NewRepository returned error: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := repo.Init(ctx); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}

	client := api.NewClient(ts.URL, nil, ts.Client())
	svc := NewService(client, repo)

	articles, err := svc.RefreshArticles(ctx)
	if err != nil {
		t.Fatalf("RefreshArticles returned error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[0].ID != 2 {
		t.Fatalf("expected newest publication first, got id=%d", articles[0].ID)
	}

	cached, err := svc.CachedArticles(ctx)
	if err != nil {
		t.Fatalf("CachedArticles returned error: %v", err)
	}
	if len(cached) != 2 {
		t.Fatalf("expected cache to hold 2 articles, got %d", len(cached))
	}

	bookmarked, err := svc.ToggleBookmark(ctx, 1, false)
	if err != nil {
		t.Fatalf("ToggleBookmark add returned error: %v", err)
	}
	if !bookmarked {
		t.Fatal("expected bookmarked after add")
	}
	status, err := svc.BookmarkStatus(ctx, 1)
	if err != nil {
		t.Fatalf("BookmarkStatus returned error: %v", err)
	}
	if !status {
		t.Fatal("server should report the bookmark")
	}

	bookmarked, err = svc.ToggleBookmark(ctx, 1, true)
	if err != nil {
		t.Fatalf("ToggleBookmark remove returned error: %v", err)
	}
	if bookmarked {
		t.Fatal("expected not bookmarked after remove")
	}

	posted, err := svc.PostComment(ctx, 1, "Une remarque")
	if err != nil {
		t.Fatalf("PostComment returned error: %v", err)
	}
	if posted.ID == 0 {
		t.Fatal("expected server-assigned comment id")
	}

	comments, err := svc.Comments(ctx, 1)
	if err != nil {
		t.Fatalf("Comments returned error: %v", err)
	}
	if len(comments) != 1 || comments[0].Content != "Une remarque" {
		t.Fatalf("unexpected thread: %+v", comments)
	}
}
