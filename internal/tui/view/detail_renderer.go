package view

import (
	"strings"

	"github.com/openrevue/revue-cli/internal/api"
	"github.com/openrevue/revue-cli/internal/render"
)

// DetailLines assembles the full detail body: metadata, the wrapped
// abstract, then the comment thread.
func DetailLines(
	article api.Article,
	bookmarked bool,
	comments []api.Comment,
	activeCommentID int64,
	contentWidth int,
	horizontalMargin int,
	wrap WrapFunc,
) []string {
	lines := DetailMetaLines(article, bookmarked, contentWidth, wrap)

	abstractLines := render.AbstractLines(article.Abstract, contentWidth)
	if len(abstractLines) > 0 {
		lines = append(lines, "")
		lines = append(lines, abstractLines...)
	}

	lines = append(lines, "")
	lines = append(lines, CommentLines(comments, activeCommentID, contentWidth, wrap)...)

	return leftPadLines(lines, horizontalMargin)
}

func DetailMaxTop(linesLen, bodyHeight int) int {
	maxTop := linesLen - bodyHeight
	if maxTop < 0 {
		return 0
	}
	return maxTop
}

func RenderDetailLines(lines []string, top, maxLines int) string {
	if len(lines) == 0 {
		return ""
	}
	if top < 0 {
		top = 0
	}
	if top > len(lines)-1 {
		top = len(lines) - 1
	}
	end := len(lines)
	if maxLines > 0 && top+maxLines < end {
		end = top + maxLines
	}
	return strings.Join(lines[top:end], "\n") + "\n"
}

func leftPadLines(lines []string, padding int) []string {
	if padding <= 0 || len(lines) == 0 {
		return lines
	}
	prefix := strings.Repeat(" ", padding)
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = prefix + line
	}
	return out
}
