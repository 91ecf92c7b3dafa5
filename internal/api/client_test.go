package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestListArticles_ParsesResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/articles/" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Fatalf("article listing must be anonymous, got auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"title":"Sur la logique","author":"Dupont","abstract":"Un essai.","publication_date":"2026-08-27","volume":3,"keywords":"logique, preuve","views":120}]`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, staticToken("tok"), ts.Client())
	articles, err := c.ListArticles(context.Background())
	if err != nil {
		t.Fatalf("ListArticles returned error: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	if articles[0].Author != "Dupont" {
		t.Fatalf("unexpected author: %s", articles[0].Author)
	}
	if articles[0].Volume == nil || *articles[0].Volume != 3 {
		t.Fatalf("unexpected volume: %+v", articles[0].Volume)
	}
	if got := articles[0].PublicationDate.Format("2006-01-02"); got != "2026-08-27" {
		t.Fatalf("unexpected publication date: %s", got)
	}
}

func TestGetArticle_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not found."}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, nil, ts.Client())
	_, err := c.GetArticle(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListComments_SendsTokenHeader(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/articles/7/comments/" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Token secret" {
			t.Fatalf("unexpected auth header: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"author":"martin","content":"Bien vu.","created_at":"2026-08-01T10:00:00Z","is_owner":true}]`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, staticToken("secret"), ts.Client())
	comments, err := c.ListComments(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListComments returned error: %v", err)
	}
	if len(comments) != 1 || !comments[0].IsOwner {
		t.Fatalf("unexpected comments: %+v", comments)
	}
}

func TestCreateComment_SendsPayloadAndDecodesServerFields(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/articles/7/comments/" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"content":"Une remarque"`) {
			t.Fatalf("unexpected body: %s", string(body))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":99,"author":"martin","content":"Une remarque","created_at":"2026-08-01T10:00:00Z","is_owner":true}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, staticToken("secret"), ts.Client())
	comment, err := c.CreateComment(context.Background(), 7, "Une remarque")
	if err != nil {
		t.Fatalf("CreateComment returned error: %v", err)
	}
	if comment.ID != 99 {
		t.Fatalf("expected server-assigned id 99, got %d", comment.ID)
	}
}

func TestUpdateComment_ValidationErrorSurfacesDetail(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/comments/5/" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Content may not be blank."}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, staticToken("secret"), ts.Client())
	_, err := c.UpdateComment(context.Background(), 5, "")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Detail != "Content may not be blank." {
		t.Fatalf("unexpected detail: %q", verr.Detail)
	}
}

func TestDeleteComment_Unauthorized(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Invalid token."}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, staticToken("stale"), ts.Client())
	err := c.DeleteComment(context.Background(), 5)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestBookmarkStatus_ParsesExists(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/articles/3/bookmark/" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"exists":true}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, staticToken("secret"), ts.Client())
	bookmarked, err := c.BookmarkStatus(context.Background(), 3)
	if err != nil {
		t.Fatalf("BookmarkStatus returned error: %v", err)
	}
	if !bookmarked {
		t.Fatal("expected bookmarked = true")
	}
}

func TestAddAndRemoveBookmark(t *testing.T) {
	var requests []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests = append(requests, r.Method+" "+r.URL.Path+" "+strings.TrimSpace(string(body)))
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, staticToken("secret"), ts.Client())
	if err := c.AddBookmark(context.Background(), 3); err != nil {
		t.Fatalf("AddBookmark returned error: %v", err)
	}
	if err := c.RemoveBookmark(context.Background(), 3); err != nil {
		t.Fatalf("RemoveBookmark returned error: %v", err)
	}

	if len(requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(requests))
	}
	if !strings.HasPrefix(requests[0], "POST /articles/3/bookmark/") || !strings.Contains(requests[0], `"article_id":3`) {
		t.Fatalf("unexpected add request: %s", requests[0])
	}
	if requests[1] != "DELETE /articles/3/bookmark/ " {
		t.Fatalf("unexpected remove request: %s", requests[1])
	}
}

func TestLogin_ReturnsToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/token/login/" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Fatalf("login must not send auth header, got %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"username":"martin"`) {
			t.Fatalf("unexpected body: %s", string(body))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"auth_token":"fresh-token"}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, staticToken("stale"), ts.Client())
	token, err := c.Login(context.Background(), "martin", "s3cret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token != "fresh-token" {
		t.Fatalf("unexpected token: %s", token)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"non_field_errors":["Unable to log in with provided credentials."]}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, nil, ts.Client())
	_, err := c.Login(context.Background(), "martin", "wrong")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(verr.Detail, "Unable to log in") {
		t.Fatalf("unexpected detail: %q", verr.Detail)
	}
}

func TestRegister_SendsPayload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/users/" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"email":"m@example.com"`) {
			t.Fatalf("unexpected body: %s", string(body))
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1,"username":"martin","email":"m@example.com"}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, nil, ts.Client())
	if err := c.Register(context.Background(), "martin", "m@example.com", "s3cret"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
}
