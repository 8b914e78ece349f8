package resume

import (
	"time"

	"github.com/interview-ace/ace/pkg/kernel"
)

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

type ProcessingStep string

const (
	StepExtracting ProcessingStep = "extracting"
	StepPredicting ProcessingStep = "predicting"
	StepSaving     ProcessingStep = "saving"
)

// ParseJob tracks one asynchronous parse request through the queue.
type ParseJob struct {
	ID       kernel.JobID     `db:"id" json:"id"`
	ResultID *kernel.ResumeID `db:"result_id" json:"result_id,omitempty"`

	Status   JobStatus `db:"status" json:"status"`
	FilePath string    `db:"file_path" json:"file_path"`
	FileName string    `db:"file_name" json:"file_name"`
	FileType string    `db:"file_type" json:"file_type"`

	AttemptCount int `db:"attempt_count" json:"attempt_count"`
	MaxAttempts  int `db:"max_attempts" json:"max_attempts"`

	ErrorMessage string         `db:"error_message" json:"error_message,omitempty"`
	ErrorDetails map[string]any `db:"error_details" json:"error_details,omitempty"`

	CurrentStep        *ProcessingStep `db:"current_step" json:"current_step,omitempty"`
	ProgressPercentage int             `db:"progress_percentage" json:"progress_percentage"`

	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	StartedAt   *time.Time `db:"started_at" json:"started_at,omitempty"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	FailedAt    *time.Time `db:"failed_at" json:"failed_at,omitempty"`
	NextRetryAt *time.Time `db:"next_retry_at" json:"next_retry_at,omitempty"`
}

// CanRetry reports whether the job has attempts left.
func (j *ParseJob) CanRetry() bool {
	return j.AttemptCount < j.MaxAttempts
}

// IsTerminal reports whether the job finished, successfully or not.
func (j *ParseJob) IsTerminal() bool {
	return j.Status == JobStatusCompleted ||
		(j.Status == JobStatusFailed && !j.CanRetry())
}
