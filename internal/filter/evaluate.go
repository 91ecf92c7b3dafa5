package filter

import (
	"strconv"
	"strings"
	"time"

	"github.com/openrevue/revue-cli/internal/api"
)

// Evaluate returns the articles matching every active dimension of c, in
// their original order. It is pure: the input slice is never reordered or
// mutated. now is the evaluation instant for date-range bucketing; callers
// pass time.Now() so results reflect the wall clock at each evaluation.
func Evaluate(articles []api.Article, c Criteria, now time.Time) []api.Article {
	if c.IsZero() {
		return append([]api.Article(nil), articles...)
	}

	out := make([]api.Article, 0, len(articles))
	for _, article := range articles {
		if Matches(article, c, now) {
			out = append(out, article)
		}
	}
	return out
}

// Matches reports whether a single article satisfies every active dimension.
func Matches(article api.Article, c Criteria, now time.Time) bool {
	if c.Query != "" && !matchesQuery(article, c.Query) {
		return false
	}
	if c.Author != "" && !containsFold(article.Author, c.Author) {
		return false
	}
	if c.DateRange != DateRangeNone && !inDateRange(article.PublicationDate.Time, c.DateRange, now) {
		return false
	}
	if c.Volume != 0 && !matchesVolume(article.Volume, c.Volume) {
		return false
	}
	if c.Type != "" && !strings.EqualFold(article.Type, c.Type) {
		return false
	}
	if c.Category != "" && !strings.EqualFold(article.Category, c.Category) {
		return false
	}
	return true
}

// matchesQuery checks the free-text query against title, author, keywords
// and abstract.
func matchesQuery(article api.Article, query string) bool {
	return containsFold(article.Title, query) ||
		containsFold(article.Author, query) ||
		containsFold(article.Keywords, query) ||
		containsFold(article.Abstract, query)
}

func inDateRange(published time.Time, r DateRange, now time.Time) bool {
	var window time.Duration
	switch r {
	case DateRangeWeek:
		window = 7 * 24 * time.Hour
	case DateRangeMonth:
		window = 30 * 24 * time.Hour
	case DateRangeYear:
		window = 365 * 24 * time.Hour
	default:
		return true
	}
	return now.Sub(published) <= window
}

// matchesVolume compares after normalizing both sides to string form, the
// way the archive's web client does. An article without a volume never
// matches a volume filter.
func matchesVolume(volume *int, want int) bool {
	if volume == nil {
		return false
	}
	return strconv.Itoa(*volume) == strconv.Itoa(want)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
