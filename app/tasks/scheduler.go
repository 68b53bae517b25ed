package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/crawlsight/crawlsight/app/analysis"
	"github.com/crawlsight/crawlsight/app/crawl"
	"github.com/crawlsight/crawlsight/app/database"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)
var _ analysis.Persister = (*Scheduler)(nil)

type Scheduler struct {
	sessionRepo database.SessionRepository
	pageRepo    database.PageRepository
	resultRepo  database.ResultRepository
	chunkSize   int
	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface
}

func NewScheduler(sessionRepo database.SessionRepository, pageRepo database.PageRepository,
	resultRepo database.ResultRepository, chunkSize, workerCount int) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	if workerCount <= 0 {
		workerCount = 2
	}

	return &Scheduler{
		sessionRepo: sessionRepo,
		pageRepo:    pageRepo,
		resultRepo:  resultRepo,
		chunkSize:   chunkSize,
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 100),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

// Persist implements analysis.Persister. A failure to marshal or enqueue is
// logged and swallowed: storage problems never reach the pipeline caller.
func (s *Scheduler) Persist(sessionID string, pages []crawl.Page, result *analysis.Result) {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		slog.Error("Failed to encode result for persistence", "session", sessionID, "error", err)
		return
	}

	task := NewPersistSessionTask(sessionID, pages, resultJSON,
		s.sessionRepo, s.pageRepo, s.resultRepo, s.chunkSize)
	if err := s.EnqueueTask(task); err != nil {
		slog.Error("Failed to enqueue PersistSessionTask", "session", sessionID, "error", err)
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "session", task.GetSessionID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			go func() {
				time.Sleep(retryDelay)
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				default:
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
