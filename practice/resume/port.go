package resume

import (
	"context"
	"time"

	"github.com/interview-ace/ace/pkg/kernel"
)

// Repository persists parse results.
type Repository interface {
	Create(ctx context.Context, result *ParseResult) error
	GetByID(ctx context.Context, id kernel.ResumeID) (*ParseResult, error)
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[ParseResult], error)
	Delete(ctx context.Context, id kernel.ResumeID) error
}

// JobRepository persists async parse jobs.
type JobRepository interface {
	Create(ctx context.Context, job *ParseJob) error
	Update(ctx context.Context, job *ParseJob) error
	GetByID(ctx context.Context, jobID kernel.JobID) (*ParseJob, error)
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[ParseJob], error)

	// Status helpers
	MarkAsProcessing(ctx context.Context, jobID kernel.JobID) error
	MarkAsCompleted(ctx context.Context, jobID kernel.JobID, resultID kernel.ResumeID) error
	MarkAsFailed(ctx context.Context, jobID kernel.JobID, errorMsg string, errorDetails map[string]any) error
	UpdateProgress(ctx context.Context, jobID kernel.JobID, step ProcessingStep, percentage int) error
}

// JobQueue is the transport for async parse jobs.
type JobQueue interface {
	// Enqueue adds a job to the queue.
	Enqueue(ctx context.Context, jobID kernel.JobID, payload any) error

	// Dequeue gets a job from the queue, blocking up to timeout. A nil
	// payload with nil error means no job was available.
	Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error)

	// EnqueueDelayed schedules a job for later processing (retries).
	EnqueueDelayed(ctx context.Context, jobID kernel.JobID, payload any, delay time.Duration) error

	// MoveDelayedToReady moves due delayed jobs to the main queue.
	MoveDelayedToReady(ctx context.Context) (int, error)

	GetQueueSize(ctx context.Context) (int64, error)
	GetDelayedQueueSize(ctx context.Context) (int64, error)
	Clear(ctx context.Context) error
}
