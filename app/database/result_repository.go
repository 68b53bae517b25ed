package database

import (
	"database/sql"
	"fmt"
)

// ResultRepo handles database operations for stored analysis results. The
// assembled result is immutable, so it is persisted as one JSON document.
type ResultRepo struct {
	db *DB
}

var _ ResultRepository = (*ResultRepo)(nil)

func NewResultRepository(db *DB) *ResultRepo {
	return &ResultRepo{db: db}
}

func (r *ResultRepo) SaveResult(sessionID string, result []byte) error {
	_, err := r.db.Exec(`
		INSERT INTO analysis_results (session_id, result) VALUES (?, ?)
		ON CONFLICT (session_id) DO UPDATE SET result = excluded.result
	`, sessionID, string(result))
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

func (r *ResultRepo) GetResult(sessionID string) ([]byte, error) {
	var result string
	err := r.db.QueryRow(`
		SELECT result FROM analysis_results WHERE session_id = ?
	`, sessionID).Scan(&result)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	return []byte(result), nil
}
