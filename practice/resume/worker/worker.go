package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/interview-ace/ace/pkg/logx"
	"github.com/interview-ace/ace/practice/resume"
	"github.com/interview-ace/ace/practice/resume/resumesrv"
)

// ParseWorker consumes parse jobs from the queue and drives them
// through the service.
type ParseWorker struct {
	service *resumesrv.Service
	queue   resume.JobQueue
	workers int
}

func NewParseWorker(service *resumesrv.Service, queue resume.JobQueue, workers int) *ParseWorker {
	return &ParseWorker{
		service: service,
		queue:   queue,
		workers: workers,
	}
}

func (w *ParseWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d parse workers", w.workers)

	// Start delayed job mover
	go w.moveDelayedJobs(ctx)

	// Start worker pool
	for i := 0; i < w.workers; i++ {
		go w.processJobs(ctx, i)
	}
}

func (w *ParseWorker) processJobs(ctx context.Context, workerID int) {
	logx.Infof("Worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Infof("Worker %d stopping", workerID)
			return
		default:
			// Dequeue with 5 second timeout
			data, err := w.queue.Dequeue(ctx, 5*time.Second)
			if err != nil {
				logx.Errorf("Worker %d dequeue error: %v", workerID, err)
				continue
			}

			// Queue timeout, no jobs available
			if len(data) == 0 {
				continue
			}

			var job resume.ParseJob
			if err := json.Unmarshal(data, &job); err != nil {
				logx.Errorf("Worker %d unmarshal error: %v (data: %s)", workerID, err, string(data))
				continue
			}

			logx.Infof("Worker %d processing job: %s", workerID, job.ID)
			if err := w.service.ProcessJob(ctx, &job); err != nil {
				logx.Errorf("Worker %d job failed: %v", workerID, err)
			}
		}
	}
}

func (w *ParseWorker) moveDelayedJobs(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed jobs: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed jobs to ready queue", count)
			}
		}
	}
}
