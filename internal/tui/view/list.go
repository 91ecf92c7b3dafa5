package view

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	tuitheme "github.com/openrevue/revue-cli/internal/tui/theme"

	"github.com/openrevue/revue-cli/internal/api"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type CardLineParams struct {
	Article    api.Article
	Bookmarked bool
	Active     bool
	Width      int
}

// RenderCardLine renders one article of a carousel page: cursor marker,
// title, author and publication date, padded to the full width.
func RenderCardLine(p CardLineParams, th tuitheme.Theme) string {
	date := "[" + p.Article.PublicationDate.Format(time.DateOnly) + "]"

	cursorMarker := " "
	if p.Active {
		cursorMarker = ">"
	}
	prefix := fmt.Sprintf("  %s ", cursorMarker)

	author := strings.TrimSpace(p.Article.Author)
	right := date
	if author != "" {
		right = th.CardAuthor.Render(author) + " " + date
	}

	available := p.Width - visibleLen(prefix) - 1 - visibleLen(right)
	if available < 1 {
		available = 1
	}

	label := strings.TrimSpace(p.Article.Title)
	if label == "" {
		label = "(sans titre)"
	}
	label = truncateRunes(label, available)
	styledTitle := th.StyleCardTitle(p.Bookmarked, label)
	gap := p.Width - visibleLen(prefix) - visibleLen(label) - visibleLen(right)
	if gap < 1 {
		gap = 1
	}
	return th.RenderActiveCard(p.Active, prefix+styledTitle+strings.Repeat(" ", gap)+right)
}

// RenderSectionHeader renders a carousel header with its page indicator
// right-aligned.
func RenderSectionHeader(label string, page, pageCount, width int, th tuitheme.Theme) string {
	left := th.Section.Render("■ " + label)
	right := PageIndicator(page, pageCount, th)
	gap := width - visibleLen(left) - visibleLen(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// RenderCarousel renders the visible window of a carousel, one card line per
// article, with "(vide)" when the window is empty.
func RenderCarousel(articles []api.Article, start, end, cursor, width int, bookmarked func(int64) bool, th tuitheme.Theme) string {
	if start >= end || start < 0 {
		return th.MetaValue.Render("  (vide)") + "\n"
	}
	var b strings.Builder
	for i := start; i < end; i++ {
		isBookmarked := false
		if bookmarked != nil {
			isBookmarked = bookmarked(articles[i].ID)
		}
		b.WriteString(RenderCardLine(CardLineParams{
			Article:    articles[i],
			Bookmarked: isBookmarked,
			Active:     i == cursor,
			Width:      width,
		}, th))
		b.WriteString("\n")
	}
	return b.String()
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(stripANSIText(s))
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
