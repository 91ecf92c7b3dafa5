// Package api implements the client for the journal archive's REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TokenSource supplies the current auth token for outgoing requests. An empty
// token means anonymous; authenticated endpoints will then come back 401 and
// surface ErrUnauthorized.
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
}

// NewClient builds a client for the given API base URL (no trailing slash).
// tokens may be nil for a purely anonymous client.
func NewClient(baseURL string, tokens TokenSource, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    httpClient,
	}
}

// ListArticles fetches the full article collection.
func (c *Client) ListArticles(ctx context.Context) ([]Article, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/articles/", nil, false)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list articles request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "list articles"); err != nil {
		return nil, err
	}

	var articles []Article
	if err := json.NewDecoder(resp.Body).Decode(&articles); err != nil {
		return nil, fmt.Errorf("decode articles response: %w", err)
	}
	return articles, nil
}

func (c *Client) GetArticle(ctx context.Context, id int64) (Article, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/articles/%d/", id), nil, false)
	if err != nil {
		return Article{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Article{}, fmt.Errorf("get article request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "get article"); err != nil {
		return Article{}, err
	}

	var article Article
	if err := json.NewDecoder(resp.Body).Decode(&article); err != nil {
		return Article{}, fmt.Errorf("decode article response: %w", err)
	}
	return article, nil
}

func (c *Client) ListComments(ctx context.Context, articleID int64) ([]Comment, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/articles/%d/comments/", articleID), nil, true)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list comments request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "list comments"); err != nil {
		return nil, err
	}

	var comments []Comment
	if err := json.NewDecoder(resp.Body).Decode(&comments); err != nil {
		return nil, fmt.Errorf("decode comments response: %w", err)
	}
	return comments, nil
}

// CreateComment posts a new comment and returns the server's representation,
// including the assigned id and timestamp. The thread is only appended to on
// confirmation; the client never fabricates those fields.
func (c *Client) CreateComment(ctx context.Context, articleID int64, content string) (Comment, error) {
	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return Comment{}, fmt.Errorf("encode comment payload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/articles/%d/comments/", articleID), bytes.NewReader(payload), true)
	if err != nil {
		return Comment{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Comment{}, fmt.Errorf("create comment request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "create comment"); err != nil {
		return Comment{}, err
	}

	var comment Comment
	if err := json.NewDecoder(resp.Body).Decode(&comment); err != nil {
		return Comment{}, fmt.Errorf("decode created comment: %w", err)
	}
	return comment, nil
}

func (c *Client) UpdateComment(ctx context.Context, commentID int64, content string) (Comment, error) {
	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return Comment{}, fmt.Errorf("encode comment payload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/comments/%d/", commentID), bytes.NewReader(payload), true)
	if err != nil {
		return Comment{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Comment{}, fmt.Errorf("update comment request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "update comment"); err != nil {
		return Comment{}, err
	}

	var comment Comment
	if err := json.NewDecoder(resp.Body).Decode(&comment); err != nil {
		return Comment{}, fmt.Errorf("decode updated comment: %w", err)
	}
	return comment, nil
}

func (c *Client) DeleteComment(ctx context.Context, commentID int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/comments/%d/", commentID), nil, true)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("delete comment request failed: %w", err)
	}
	defer resp.Body.Close()

	return checkStatus(resp, "delete comment")
}

// BookmarkStatus reports whether the current user has bookmarked the article.
func (c *Client) BookmarkStatus(ctx context.Context, articleID int64) (bool, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/articles/%d/bookmark/", articleID), nil, true)
	if err != nil {
		return false, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("bookmark status request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "bookmark status"); err != nil {
		return false, err
	}

	var status struct {
		Exists bool `json:"exists"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return false, fmt.Errorf("decode bookmark status: %w", err)
	}
	return status.Exists, nil
}

func (c *Client) AddBookmark(ctx context.Context, articleID int64) error {
	payload, err := json.Marshal(map[string]int64{"article_id": articleID})
	if err != nil {
		return fmt.Errorf("encode bookmark payload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/articles/%d/bookmark/", articleID), bytes.NewReader(payload), true)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("add bookmark request failed: %w", err)
	}
	defer resp.Body.Close()

	return checkStatus(resp, "add bookmark")
}

func (c *Client) RemoveBookmark(ctx context.Context, articleID int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/articles/%d/bookmark/", articleID), nil, true)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("remove bookmark request failed: %w", err)
	}
	defer resp.Body.Close()

	return checkStatus(resp, "remove bookmark")
}

func (c *Client) ListBookmarks(ctx context.Context) ([]Bookmark, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/user/bookmarks/", nil, true)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "list bookmarks"); err != nil {
		return nil, err
	}

	var bookmarks []Bookmark
	if err := json.NewDecoder(resp.Body).Decode(&bookmarks); err != nil {
		return nil, fmt.Errorf("decode bookmarks response: %w", err)
	}
	return bookmarks, nil
}

// Login exchanges credentials for an auth token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return "", fmt.Errorf("encode login payload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/token/login/", bytes.NewReader(payload), false)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "login"); err != nil {
		return "", err
	}

	var result struct {
		AuthToken string `json:"auth_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if result.AuthToken == "" {
		return "", fmt.Errorf("login response contained no token")
	}
	return result.AuthToken, nil
}

func (c *Client) Register(ctx context.Context, username, email, password string) error {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return fmt.Errorf("encode registration payload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/users/", bytes.NewReader(payload), false)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("registration request failed: %w", err)
	}
	defer resp.Body.Close()

	return checkStatus(resp, "registration")
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, authed bool) (*http.Request, error) {
	fullURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Token "+token)
		}
	}
	return req, nil
}
