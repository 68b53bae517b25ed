package database

import (
	"fmt"
	"strings"

	"github.com/crawlsight/crawlsight/app/crawl"
)

// PageRepo handles database operations for persisted page records
type PageRepo struct {
	db *DB
}

var _ PageRepository = (*PageRepo)(nil)

func NewPageRepository(db *DB) *PageRepo {
	return &PageRepo{db: db}
}

// InsertPages stores a batch of canonical pages in one multi-row INSERT.
// Positions run from startPosition in slice order, so callers chunking a
// larger set keep the original row order.
func (r *PageRepo) InsertPages(sessionID string, startPosition int, pages []crawl.Page) error {
	if len(pages) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(pages))
	args := make([]interface{}, 0, len(pages)*8)
	for i, page := range pages {
		placeholders = append(placeholders, "(?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args, sessionID, startPosition+i, page.URL, page.Title,
			page.MetaDescription, page.WordCount, page.StatusCode, page.Content)
	}

	query := fmt.Sprintf(`
		INSERT INTO pages (
			session_id, position, url, title, meta_description,
			word_count, status_code, content
		) VALUES %s
	`, strings.Join(placeholders, ", "))

	if _, err := r.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert pages: %w", err)
	}

	return nil
}

func (r *PageRepo) GetPages(sessionID string) ([]Page, error) {
	rows, err := r.db.Query(`
		SELECT id, session_id, position, url, title, meta_description,
		       word_count, status_code, content, created_at
		FROM pages
		WHERE session_id = ?
		ORDER BY position ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pages: %w", err)
	}
	defer rows.Close()

	var pages []Page
	for rows.Next() {
		var page Page
		err := rows.Scan(
			&page.ID, &page.SessionID, &page.Position, &page.URL, &page.Title,
			&page.MetaDescription, &page.WordCount, &page.StatusCode,
			&page.Content, &page.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan page row: %w", err)
		}
		pages = append(pages, page)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating page rows: %w", err)
	}

	return pages, nil
}

func (r *PageRepo) GetPageCount(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM pages WHERE session_id = ?`, sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return count, nil
}
