package database

import (
	"github.com/crawlsight/crawlsight/app/crawl"
)

type SessionRepository interface {
	CreateSession(sessionID string, totalPages int) error
	GetSession(sessionID string) (*Session, error)
	GetSessionCount() (int, error)
}

type PageRepository interface {
	InsertPages(sessionID string, startPosition int, pages []crawl.Page) error
	GetPages(sessionID string) ([]Page, error)
	GetPageCount(sessionID string) (int, error)
}

type ResultRepository interface {
	SaveResult(sessionID string, result []byte) error
	GetResult(sessionID string) ([]byte, error)
}
