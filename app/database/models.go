package database

import (
	"time"
)

// Session represents one uploaded crawl export and its analysis run.
type Session struct {
	ID         string
	TotalPages int
	CreatedAt  time.Time
}

// Page represents a canonical page record persisted for a session. Position
// preserves input row order for reproducibility.
type Page struct {
	ID              int64
	SessionID       string
	Position        int
	URL             string
	Title           string
	MetaDescription string
	WordCount       int
	StatusCode      int
	Content         string
	CreatedAt       time.Time
}
