package database

import (
	"database/sql"
	"fmt"
)

// SessionRepo handles database operations for analysis sessions
type SessionRepo struct {
	db *DB
}

var _ SessionRepository = (*SessionRepo)(nil)

func NewSessionRepository(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) CreateSession(sessionID string, totalPages int) error {
	_, err := r.db.Exec(`
		INSERT INTO sessions (id, total_pages) VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET total_pages = excluded.total_pages
	`, sessionID, totalPages)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionRepo) GetSession(sessionID string) (*Session, error) {
	var session Session
	err := r.db.QueryRow(`
		SELECT id, total_pages, created_at FROM sessions WHERE id = ?
	`, sessionID).Scan(&session.ID, &session.TotalPages, &session.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

func (r *SessionRepo) GetSessionCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}
