// Package suggest derives a prefix-searchable author list from the article
// cache, for autocompleting the author filter.
package suggest

import (
	"strings"

	"github.com/openrevue/revue-cli/internal/api"
)

// maxSuggestions caps the dropdown so a short input does not flood the view.
const maxSuggestions = 5

// Index is the deduplicated author list, in first-seen order of the source
// collection. It is rebuilt whenever the article cache refreshes and is
// read-only between rebuilds.
type Index struct {
	authors []string
}

func Build(articles []api.Article) *Index {
	ix := &Index{}
	ix.Rebuild(articles)
	return ix
}

func (ix *Index) Rebuild(articles []api.Article) {
	seen := make(map[string]struct{}, len(articles))
	authors := make([]string, 0, len(articles))
	for _, article := range articles {
		author := strings.TrimSpace(article.Author)
		if author == "" {
			continue
		}
		key := strings.ToLower(author)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		authors = append(authors, author)
	}
	ix.authors = authors
}

// Suggest returns up to five authors containing the query, case-insensitive,
// in first-seen order. A blank query yields nothing rather than the whole
// list.
func (ix *Index) Suggest(query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	needle := strings.ToLower(query)
	var out []string
	for _, author := range ix.authors {
		if strings.Contains(strings.ToLower(author), needle) {
			out = append(out, author)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}

// Authors returns the full deduplicated list, first-seen order.
func (ix *Index) Authors() []string {
	return append([]string(nil), ix.authors...)
}
