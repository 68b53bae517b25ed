package tasks

import (
	"context"
	"log/slog"

	"github.com/crawlsight/crawlsight/app/analysis"
	"github.com/crawlsight/crawlsight/app/crawl"
	"github.com/crawlsight/crawlsight/app/database"
)

// PersistSessionTask stores one completed analysis run: the session row, the
// canonical pages in order-preserving chunks, and the assembled result JSON.
// Persistence is best-effort throughout; every failure is wrapped as a
// StorageError, logged, and swallowed so the upload response is never affected.
type PersistSessionTask struct {
	Task
	Pages       []crawl.Page
	ResultJSON  []byte
	sessionRepo database.SessionRepository
	pageRepo    database.PageRepository
	resultRepo  database.ResultRepository
	chunkSize   int
}

func NewPersistSessionTask(sessionID string, pages []crawl.Page, resultJSON []byte,
	sessionRepo database.SessionRepository, pageRepo database.PageRepository,
	resultRepo database.ResultRepository, chunkSize int) *PersistSessionTask {
	if chunkSize <= 0 {
		chunkSize = 100
	}
	return &PersistSessionTask{
		Task:        NewTask(TaskTypePersistSession, sessionID),
		Pages:       pages,
		ResultJSON:  resultJSON,
		sessionRepo: sessionRepo,
		pageRepo:    pageRepo,
		resultRepo:  resultRepo,
		chunkSize:   chunkSize,
	}
}

func (t *PersistSessionTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := t.sessionRepo.CreateSession(t.SessionID, len(t.Pages)); err != nil {
		storageErr := &analysis.StorageError{Op: "create session", Err: err}
		slog.Error("Task failed", "type", "PersistSession", "session", t.SessionID, "error", storageErr)
		return nil
	}

	failedChunks := 0
	for start := 0; start < len(t.Pages); start += t.chunkSize {
		end := start + t.chunkSize
		if end > len(t.Pages) {
			end = len(t.Pages)
		}

		// Chunk failures are independent: later chunks are still attempted
		if err := t.pageRepo.InsertPages(t.SessionID, start, t.Pages[start:end]); err != nil {
			failedChunks++
			storageErr := &analysis.StorageError{Op: "insert pages", Err: err}
			slog.Error("Page chunk persistence failed",
				"session", t.SessionID,
				"chunk_start", start,
				"chunk_end", end,
				"error", storageErr)
		}
	}

	if err := t.resultRepo.SaveResult(t.SessionID, t.ResultJSON); err != nil {
		storageErr := &analysis.StorageError{Op: "save result", Err: err}
		slog.Error("Result persistence failed", "session", t.SessionID, "error", storageErr)
		return nil
	}

	slog.Info("Task completed",
		"type", "PersistSession",
		"session", t.SessionID,
		"pages", len(t.Pages),
		"failed_chunks", failedChunks,
		"duration", t.GetDuration())

	return nil
}
