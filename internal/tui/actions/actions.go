// Package actions builds the asynchronous commands the TUI issues and the
// typed messages they resolve to. Every command carries the view sequence
// number captured when it was issued; the model discards results whose
// stamp no longer matches the current view, so a torn-down view never
// receives a late result.
package actions

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openrevue/revue-cli/internal/api"
)

type Service interface {
	RefreshArticles(ctx context.Context) ([]api.Article, error)
	CachedArticles(ctx context.Context) ([]api.Article, error)
	Article(ctx context.Context, id int64) (api.Article, error)
	Comments(ctx context.Context, articleID int64) ([]api.Comment, error)
	PostComment(ctx context.Context, articleID int64, content string) (api.Comment, error)
	EditComment(ctx context.Context, commentID int64, content string) (api.Comment, error)
	RemoveComment(ctx context.Context, commentID int64) error
	BookmarkStatus(ctx context.Context, articleID int64) (bool, error)
	ToggleBookmark(ctx context.Context, articleID int64, bookmarked bool) (bool, error)
	Login(ctx context.Context, username, password string) (string, error)
}

type ArticlesLoadedMsg struct {
	Seq      int
	Articles []api.Article
	Source   string
	Duration time.Duration
}

type ArticlesErrorMsg struct {
	Seq    int
	Err    error
	Source string
}

type ArticleLoadedMsg struct {
	Seq     int
	Article api.Article
}

type CommentsLoadedMsg struct {
	Seq       int
	ArticleID int64
	Comments  []api.Comment
}

type DetailErrorMsg struct {
	Seq int
	Err error
}

type BookmarkStatusMsg struct {
	Seq        int
	ArticleID  int64
	Bookmarked bool
}

type BookmarkStatusErrorMsg struct {
	Seq       int
	ArticleID int64
	Err       error
}

type BookmarkToggledMsg struct {
	Seq        int
	ArticleID  int64
	Bookmarked bool
	Status     string
}

type BookmarkToggleErrorMsg struct {
	Seq       int
	ArticleID int64
	Err       error
}

type CommentPostedMsg struct {
	Seq     int
	Comment api.Comment
}

type CommentPostErrorMsg struct {
	Seq int
	Err error
}

type CommentEditedMsg struct {
	Seq     int
	Comment api.Comment
}

type CommentEditErrorMsg struct {
	Seq       int
	CommentID int64
	Err       error
}

type CommentDeletedMsg struct {
	Seq       int
	CommentID int64
}

type CommentDeleteErrorMsg struct {
	Seq       int
	CommentID int64
	Err       error
}

type LoginSuccessMsg struct {
	Seq   int
	Token string
}

type LoginErrorMsg struct {
	Seq int
	Err error
}

type OpenLinkMsg struct {
	Status string
}

type OpenLinkErrorMsg struct {
	Err error
}

func RefreshArticlesCmd(service Service, seq int, source string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		start := time.Now()

		articles, err := service.RefreshArticles(ctx)
		if err != nil {
			return ArticlesErrorMsg{Seq: seq, Err: err, Source: source}
		}
		return ArticlesLoadedMsg{Seq: seq, Articles: articles, Source: source, Duration: time.Since(start)}
	}
}

func LoadCachedArticlesCmd(service Service, seq int, source string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		start := time.Now()

		articles, err := service.CachedArticles(ctx)
		if err != nil {
			return ArticlesErrorMsg{Seq: seq, Err: err, Source: source}
		}
		return ArticlesLoadedMsg{Seq: seq, Articles: articles, Source: source, Duration: time.Since(start)}
	}
}

func LoadArticleCmd(service Service, seq int, articleID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		article, err := service.Article(ctx, articleID)
		if err != nil {
			return DetailErrorMsg{Seq: seq, Err: err}
		}
		return ArticleLoadedMsg{Seq: seq, Article: article}
	}
}

func LoadCommentsCmd(service Service, seq int, articleID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		comments, err := service.Comments(ctx, articleID)
		if err != nil {
			return DetailErrorMsg{Seq: seq, Err: err}
		}
		return CommentsLoadedMsg{Seq: seq, ArticleID: articleID, Comments: comments}
	}
}

func BookmarkStatusCmd(service Service, seq int, articleID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		bookmarked, err := service.BookmarkStatus(ctx, articleID)
		if err != nil {
			return BookmarkStatusErrorMsg{Seq: seq, ArticleID: articleID, Err: err}
		}
		return BookmarkStatusMsg{Seq: seq, ArticleID: articleID, Bookmarked: bookmarked}
	}
}

// ToggleBookmarkCmd takes the state observed before the optimistic flip,
// so the server call matches what the user saw when they pressed the key.
func ToggleBookmarkCmd(service Service, seq int, articleID int64, bookmarkedBefore bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		bookmarked, err := service.ToggleBookmark(ctx, articleID, bookmarkedBefore)
		if err != nil {
			return BookmarkToggleErrorMsg{Seq: seq, ArticleID: articleID, Err: err}
		}

		status := "Signet retiré"
		if bookmarked {
			status = "Article ajouté aux signets"
		}
		return BookmarkToggledMsg{Seq: seq, ArticleID: articleID, Bookmarked: bookmarked, Status: status}
	}
}

func PostCommentCmd(service Service, seq int, articleID int64, content string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		comment, err := service.PostComment(ctx, articleID, content)
		if err != nil {
			return CommentPostErrorMsg{Seq: seq, Err: err}
		}
		return CommentPostedMsg{Seq: seq, Comment: comment}
	}
}

func EditCommentCmd(service Service, seq int, commentID int64, content string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		comment, err := service.EditComment(ctx, commentID, content)
		if err != nil {
			return CommentEditErrorMsg{Seq: seq, CommentID: commentID, Err: err}
		}
		return CommentEditedMsg{Seq: seq, Comment: comment}
	}
}

func DeleteCommentCmd(service Service, seq int, commentID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := service.RemoveComment(ctx, commentID); err != nil {
			return CommentDeleteErrorMsg{Seq: seq, CommentID: commentID, Err: err}
		}
		return CommentDeletedMsg{Seq: seq, CommentID: commentID}
	}
}

func LoginCmd(service Service, seq int, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		token, err := service.Login(ctx, username, password)
		if err != nil {
			return LoginErrorMsg{Seq: seq, Err: err}
		}
		return LoginSuccessMsg{Seq: seq, Token: token}
	}
}

func OpenDOICmd(url string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(url); err == nil {
				return OpenLinkMsg{Status: "Lien DOI ouvert dans le navigateur"}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenLinkMsg{Status: "Navigateur indisponible, lien DOI copié"}
			}
		}
		return OpenLinkErrorMsg{Err: fmt.Errorf("could not open URL or copy to clipboard")}
	}
}

func CopyShareLinkCmd(url string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenLinkMsg{Status: "Lien de recherche copié"}
			}
		}
		return OpenLinkErrorMsg{Err: fmt.Errorf("could not copy URL to clipboard")}
	}
}
