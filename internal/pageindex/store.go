// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pageindex keeps the pages of extracted documents in a SQLite
// database so earlier runs can be searched. The index is written after a
// successful extraction and is never read back by the extractor.
package pageindex

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdfextract/internal/extract"
	"github.com/pdiddy/pdfextract/pkg/types"
)

const defaultLimit = 20

// Store manages the page index database.
type Store struct {
	db *sql.DB
}

// Hit is one page matching a search.
type Hit struct {
	Path    string `json:"path"`
	Page    int    `json:"page"`
	Snippet string `json:"snippet"`
}

// NewStore opens or creates the index database at dbPath and creates the
// schema if it does not exist.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating index directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			path TEXT PRIMARY KEY,
			output TEXT NOT NULL,
			backend TEXT NOT NULL,
			page_count INTEGER NOT NULL,
			extracted_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS pages (
			path TEXT NOT NULL REFERENCES documents(path) ON DELETE CASCADE,
			page INTEGER NOT NULL,
			text TEXT NOT NULL,
			PRIMARY KEY (path, page)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Put records a document and replaces its pages in one transaction.
func (s *Store) Put(ctx context.Context, rec types.Extraction, sections []extract.Section) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pages WHERE path = ?`, rec.Source); err != nil {
		return fmt.Errorf("clearing pages for %s: %w", rec.Source, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO documents (path, output, backend, page_count, extracted_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			output = excluded.output,
			backend = excluded.backend,
			page_count = excluded.page_count,
			extracted_at = excluded.extracted_at`,
		rec.Source, rec.Output, string(rec.Backend), rec.PageCount,
		rec.ExtractedAt.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("recording document %s: %w", rec.Source, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO pages (path, page, text) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing page insert: %w", err)
	}
	defer stmt.Close()

	for _, sec := range sections {
		if _, err := stmt.ExecContext(ctx, rec.Source, sec.Page, sec.Text); err != nil {
			return fmt.Errorf("inserting %s page %d: %w", rec.Source, sec.Page, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s: %w", rec.Source, err)
	}
	return nil
}

// Search returns pages whose text contains query, ignoring ASCII case,
// ordered by path and page. A limit of zero or less uses the default of 20.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT path, page, text FROM pages
		 WHERE instr(lower(text), lower(?)) > 0
		 ORDER BY path, page
		 LIMIT ?`,
		query, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("searching pages: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		var text string
		if err := rows.Scan(&h.Path, &h.Page, &text); err != nil {
			return nil, fmt.Errorf("scanning hit: %w", err)
		}
		h.Snippet = snippet(text, query, 40)
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// Document returns the recorded page count and emitted pages for path.
func (s *Store) Document(ctx context.Context, path string) (pageCount int, pages []int, err error) {
	if err := s.db.QueryRowContext(ctx,
		`SELECT page_count FROM documents WHERE path = ?`, path,
	).Scan(&pageCount); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil, fmt.Errorf("document %s not indexed", path)
		}
		return 0, nil, fmt.Errorf("reading document %s: %w", path, err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT page FROM pages WHERE path = ? ORDER BY page`, path)
	if err != nil {
		return 0, nil, fmt.Errorf("reading pages of %s: %w", path, err)
	}
	defer rows.Close()
	for rows.Next() {
		var p int
		if err := rows.Scan(&p); err != nil {
			return 0, nil, err
		}
		pages = append(pages, p)
	}
	return pageCount, pages, rows.Err()
}

// snippet returns the match in text with up to width runes of context on
// each side, on a single line.
func snippet(text, query string, width int) string {
	flat := strings.Join(strings.Fields(text), " ")
	runes := []rune(flat)
	lower := strings.ToLower(flat)
	idx := strings.Index(lower, strings.ToLower(query))
	if idx < 0 {
		if len(runes) > 2*width {
			return string(runes[:2*width]) + "..."
		}
		return flat
	}
	start := utf8.RuneCountInString(lower[:idx])
	end := start + utf8.RuneCountInString(query)
	from, to := max(0, start-width), min(len(runes), end+width)

	out := string(runes[from:to])
	if from > 0 {
		out = "..." + out
	}
	if to < len(runes) {
		out += "..."
	}
	return out
}
