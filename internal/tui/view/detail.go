package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/openrevue/revue-cli/internal/api"
)

type WrapFunc func(string, int) []string

func DetailMetaLines(article api.Article, bookmarked bool, width int, wrap WrapFunc) []string {
	lines := make([]string, 0, 16)
	lines = append(lines, wrap(article.Title, width)...)
	lines = append(lines, strings.Repeat("=", max(1, min(width, len(article.Title)))))
	lines = append(lines, "")

	if article.Author != "" {
		lines = append(lines, wrap("Auteur : "+article.Author, width)...)
	}
	lines = append(lines, "Date : "+article.PublicationDate.Format(time.DateOnly))
	if article.Volume != nil {
		lines = append(lines, fmt.Sprintf("Volume : %d", *article.Volume))
	}
	if article.Type != "" {
		lines = append(lines, "Type : "+article.Type)
	}
	if article.Category != "" {
		lines = append(lines, "Catégorie : "+article.Category)
	}
	if article.Pages > 0 {
		lines = append(lines, fmt.Sprintf("Pages : %d", article.Pages))
	}
	if article.DOI != "" {
		lines = append(lines, wrap("DOI : "+article.DOI, width)...)
	}
	lines = append(lines, fmt.Sprintf("Vues : %d | Téléchargements : %d | Citations : %d",
		article.Views, article.Downloads, article.Citations))
	if bookmarked {
		lines = append(lines, "Signet : oui")
	} else {
		lines = append(lines, "Signet : non")
	}
	if article.Keywords != "" {
		lines = append(lines, wrap("Mots-clés : "+article.Keywords, width)...)
	}

	return lines
}

// CommentLines renders a comment thread below the article body. The active
// comment is marked with a cursor and owned comments are tagged.
func CommentLines(comments []api.Comment, activeID int64, width int, wrap WrapFunc) []string {
	lines := make([]string, 0, len(comments)*4+2)
	lines = append(lines, fmt.Sprintf("Commentaires (%d)", len(comments)))
	lines = append(lines, strings.Repeat("-", max(1, min(width, 16))))

	for _, comment := range comments {
		marker := "  "
		if comment.ID == activeID {
			marker = "> "
		}
		header := comment.Author
		if !comment.CreatedAt.IsZero() {
			header += " — " + comment.CreatedAt.Format(time.DateOnly)
		}
		if comment.IsOwner {
			header += " (vous)"
		}
		lines = append(lines, marker+header)
		for _, line := range wrap(comment.Content, width-4) {
			lines = append(lines, "    "+line)
		}
		lines = append(lines, "")
	}
	if len(comments) == 0 {
		lines = append(lines, "  Aucun commentaire")
	}
	return lines
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
