package tasks

// TaskSchedulerInterface defines the interface for background task scheduling.
// Used by the pipeline for fire-and-forget persistence of completed runs.
// Example usage:
//
//	scheduler := NewScheduler(sessionRepo, pageRepo, resultRepo)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewPersistSessionTask(...))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
