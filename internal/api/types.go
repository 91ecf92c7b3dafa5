package api

import (
	"fmt"
	"strings"
	"time"
)

// Date handles the backend's date-only encoding ("2006-01-02") for
// publication dates.
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return fmt.Errorf("parse publication date %q: %w", raw, err)
	}
	d.Time = parsed
	return nil
}

// Article is the subset of archive fields used by the app. The collection is
// read-only on this side: articles are fetched, cached and filtered, never
// mutated.
type Article struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Abstract        string `json:"abstract"`
	PublicationDate Date   `json:"publication_date"`
	Volume          *int   `json:"volume"`
	Keywords        string `json:"keywords"`
	Type            string `json:"type"`
	Category        string `json:"category"`
	DOI             string `json:"doi"`
	Pages           int    `json:"pages"`
	Views           int    `json:"views"`
	Downloads       int    `json:"downloads"`
	Citations       int    `json:"citations"`
}

// Comment is one entry of an article's thread, oldest first. IsOwner is set
// by the server; the client only hides edit/delete affordances based on it.
type Comment struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	IsOwner   bool      `json:"is_owner"`
}

// Bookmark is one entry of the authenticated user's bookmark list.
type Bookmark struct {
	ID           int64  `json:"id"`
	ArticleID    int64  `json:"article_id"`
	ArticleTitle string `json:"article_title"`
	CreatedAt    string `json:"created_at"`
}
