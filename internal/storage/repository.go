// Package storage is the sqlite-backed cache: the article collection plus a
// small key/value table for the session token and the last search.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/openrevue/revue-cli/internal/api"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS articles (
  id INTEGER PRIMARY KEY,
  title TEXT NOT NULL,
  author TEXT NOT NULL,
  abstract TEXT,
  publication_date TEXT NOT NULL,
  volume INTEGER,
  keywords TEXT,
  type TEXT,
  category TEXT,
  doi TEXT,
  pages INTEGER,
  views INTEGER NOT NULL DEFAULT 0,
  downloads INTEGER NOT NULL DEFAULT 0,
  citations INTEGER NOT NULL DEFAULT 0,
  fetched_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// CheckWritable verifies the database accepts writes before the app starts,
// so a read-only path fails fast instead of mid-session.
func (r *Repository) CheckWritable(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `INSERT INTO kv (key, value) VALUES ('write_check', '1')
ON CONFLICT(key) DO UPDATE SET value='1'`); err != nil {
		return fmt.Errorf("write check insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = 'write_check'`); err != nil {
		return fmt.Errorf("write check cleanup: %w", err)
	}
	return nil
}

func (r *Repository) SaveArticles(ctx context.Context, articles []api.Article) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO articles (id, title, author, abstract, publication_date, volume, keywords, type, category, doi, pages, views, downloads, citations, fetched_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  title=excluded.title,
  author=excluded.author,
  abstract=excluded.abstract,
  publication_date=excluded.publication_date,
  volume=excluded.volume,
  keywords=excluded.keywords,
  type=excluded.type,
  category=excluded.category,
  doi=excluded.doi,
  pages=excluded.pages,
  views=excluded.views,
  downloads=excluded.downloads,
  citations=excluded.citations,
  fetched_at=excluded.fetched_at
`)
	if err != nil {
		return fmt.Errorf("prepare save statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, article := range articles {
		var volume sql.NullInt64
		if article.Volume != nil {
			volume = sql.NullInt64{Int64: int64(*article.Volume), Valid: true}
		}
		_, err := stmt.ExecContext(
			ctx,
			article.ID,
			article.Title,
			article.Author,
			article.Abstract,
			article.PublicationDate.Format(time.DateOnly),
			volume,
			article.Keywords,
			article.Type,
			article.Category,
			article.DOI,
			article.Pages,
			article.Views,
			article.Downloads,
			article.Citations,
			now,
		)
		if err != nil {
			return fmt.Errorf("save article %d: %w", article.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// ListArticles returns the cached collection, newest publication first.
func (r *Repository) ListArticles(ctx context.Context) ([]api.Article, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, author, abstract, publication_date, volume, keywords, type, category, doi, pages, views, downloads, citations
FROM articles
ORDER BY publication_date DESC, id DESC
`)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var articles []api.Article
	for rows.Next() {
		var article api.Article
		var publicationDate string
		var volume sql.NullInt64
		if err := rows.Scan(
			&article.ID,
			&article.Title,
			&article.Author,
			&article.Abstract,
			&publicationDate,
			&volume,
			&article.Keywords,
			&article.Type,
			&article.Category,
			&article.DOI,
			&article.Pages,
			&article.Views,
			&article.Downloads,
			&article.Citations,
		); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}

		parsed, err := time.Parse(time.DateOnly, publicationDate)
		if err != nil {
			return nil, fmt.Errorf("parse article publication_date %q: %w", publicationDate, err)
		}
		article.PublicationDate = api.Date{Time: parsed}

		if volume.Valid {
			v := int(volume.Int64)
			article.Volume = &v
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return articles, nil
}

// GetValue reads a kv entry; a missing key yields "" without error.
func (r *Repository) GetValue(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query kv %q: %w", key, err)
	}
	return value, nil
}

func (r *Repository) SetValue(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO kv (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value
`, key, value)
	if err != nil {
		return fmt.Errorf("save kv %q: %w", key, err)
	}
	return nil
}

func (r *Repository) DeleteValue(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete kv %q: %w", key, err)
	}
	return nil
}
