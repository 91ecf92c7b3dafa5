// Package render formats article text for the terminal: abstracts (which may
// carry HTML fragments) are flattened to plain text and word-wrapped, and
// comma-delimited keyword strings become clean lists.
package render

import (
	"strings"

	nethtml "golang.org/x/net/html"
)

// AbstractLines flattens any HTML in the abstract to plain text and wraps it
// to width.
func AbstractLines(raw string, width int) []string {
	text := flattenHTML(raw)
	if text == "" {
		return nil
	}
	return WrapText(text, width)
}

// Keywords splits the archive's comma-delimited keyword string into trimmed,
// non-empty entries.
func Keywords(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if kw := strings.TrimSpace(part); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// WrapText greedily wraps text into lines of at most width runes, breaking
// on spaces. Words longer than width get a line of their own.
func WrapText(text string, width int) []string {
	if width < 1 {
		width = 1
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len([]rune(current))+1+len([]rune(word)) <= width {
			current += " " + word
			continue
		}
		lines = append(lines, current)
		current = word
	}
	lines = append(lines, current)
	return lines
}

// flattenHTML extracts the text content of an HTML fragment, collapsing
// whitespace. Plain text passes through unchanged apart from the collapse.
func flattenHTML(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.ContainsRune(raw, '<') {
		return strings.Join(strings.Fields(raw), " ")
	}

	tokenizer := nethtml.NewTokenizer(strings.NewReader(raw))
	var b strings.Builder
	for {
		tokenType := tokenizer.Next()
		switch tokenType {
		case nethtml.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case nethtml.TextToken:
			b.Write(tokenizer.Text())
			b.WriteByte(' ')
		}
	}
}
