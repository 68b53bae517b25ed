package tasks

import (
	"context"
	"fmt"
	"testing"

	"github.com/crawlsight/crawlsight/app/crawl"
	"github.com/crawlsight/crawlsight/app/database"
)

type fakeSessionRepo struct {
	created    map[string]int
	failCreate bool
}

func (r *fakeSessionRepo) CreateSession(sessionID string, totalPages int) error {
	if r.failCreate {
		return fmt.Errorf("disk full")
	}
	if r.created == nil {
		r.created = make(map[string]int)
	}
	r.created[sessionID] = totalPages
	return nil
}

func (r *fakeSessionRepo) GetSession(sessionID string) (*database.Session, error) {
	return nil, nil
}

func (r *fakeSessionRepo) GetSessionCount() (int, error) {
	return len(r.created), nil
}

type insertCall struct {
	startPosition int
	count         int
}

type fakePageRepo struct {
	calls      []insertCall
	failChunks map[int]bool // keyed by startPosition
}

func (r *fakePageRepo) InsertPages(sessionID string, startPosition int, pages []crawl.Page) error {
	r.calls = append(r.calls, insertCall{startPosition: startPosition, count: len(pages)})
	if r.failChunks[startPosition] {
		return fmt.Errorf("chunk rejected")
	}
	return nil
}

func (r *fakePageRepo) GetPages(sessionID string) ([]database.Page, error) {
	return nil, nil
}

func (r *fakePageRepo) GetPageCount(sessionID string) (int, error) {
	return 0, nil
}

type fakeResultRepo struct {
	saved map[string][]byte
}

func (r *fakeResultRepo) SaveResult(sessionID string, result []byte) error {
	if r.saved == nil {
		r.saved = make(map[string][]byte)
	}
	r.saved[sessionID] = result
	return nil
}

func (r *fakeResultRepo) GetResult(sessionID string) ([]byte, error) {
	return r.saved[sessionID], nil
}

func makePages(n int) []crawl.Page {
	pages := make([]crawl.Page, n)
	for i := range pages {
		pages[i] = crawl.Page{URL: fmt.Sprintf("https://example.com/%d", i)}
	}
	return pages
}

func TestPersistSessionTask_ChunksPreserveOrder(t *testing.T) {
	sessionRepo := &fakeSessionRepo{}
	pageRepo := &fakePageRepo{}
	resultRepo := &fakeResultRepo{}

	task := NewPersistSessionTask("s1", makePages(250), []byte(`{}`),
		sessionRepo, pageRepo, resultRepo, 100)

	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := []insertCall{
		{startPosition: 0, count: 100},
		{startPosition: 100, count: 100},
		{startPosition: 200, count: 50},
	}
	if len(pageRepo.calls) != len(want) {
		t.Fatalf("Expected %d chunks, got %d", len(want), len(pageRepo.calls))
	}
	for i, call := range pageRepo.calls {
		if call != want[i] {
			t.Errorf("Chunk %d: expected %+v, got %+v", i, want[i], call)
		}
	}

	if sessionRepo.created["s1"] != 250 {
		t.Errorf("Expected session row with 250 pages, got %v", sessionRepo.created)
	}
	if _, ok := resultRepo.saved["s1"]; !ok {
		t.Errorf("Expected result saved")
	}
}

func TestPersistSessionTask_ChunkFailuresIndependent(t *testing.T) {
	sessionRepo := &fakeSessionRepo{}
	pageRepo := &fakePageRepo{failChunks: map[int]bool{100: true}}
	resultRepo := &fakeResultRepo{}

	task := NewPersistSessionTask("s1", makePages(300), []byte(`{}`),
		sessionRepo, pageRepo, resultRepo, 100)

	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Storage failures must be swallowed, got %v", err)
	}

	// The failing middle chunk must not prevent the last chunk's attempt
	if len(pageRepo.calls) != 3 {
		t.Errorf("Expected all 3 chunks attempted, got %d", len(pageRepo.calls))
	}
	if _, ok := resultRepo.saved["s1"]; !ok {
		t.Errorf("Expected result still saved after chunk failure")
	}
}

func TestPersistSessionTask_SessionCreateFailureSwallowed(t *testing.T) {
	sessionRepo := &fakeSessionRepo{failCreate: true}
	pageRepo := &fakePageRepo{}
	resultRepo := &fakeResultRepo{}

	task := NewPersistSessionTask("s1", makePages(10), []byte(`{}`),
		sessionRepo, pageRepo, resultRepo, 100)

	if err := task.Execute(context.Background()); err != nil {
		t.Errorf("Expected storage failure swallowed, got %v", err)
	}
}

func TestPersistSessionTask_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	task := NewPersistSessionTask("s1", makePages(10), []byte(`{}`),
		&fakeSessionRepo{}, &fakePageRepo{}, &fakeResultRepo{}, 100)

	if err := task.Execute(ctx); err == nil {
		t.Errorf("Expected context error")
	}
}
