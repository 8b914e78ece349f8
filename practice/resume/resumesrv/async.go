package resumesrv

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/interview-ace/ace/pkg/kernel"
	"github.com/interview-ace/ace/pkg/logx"
	"github.com/interview-ace/ace/practice/resume"
)

const defaultMaxAttempts = 3

// ParseResumeAsync queues a resume for background processing.
func (s *Service) ParseResumeAsync(ctx context.Context, req resume.ParseResumeRequest) (*resume.JobStatusResponse, error) {
	logx.Infof("Queueing resume for async processing: File=%s", req.FileName)

	jobID := kernel.NewJobID(uuid.NewString())
	job := &resume.ParseJob{
		ID:                 jobID,
		Status:             resume.JobStatusPending,
		FilePath:           req.FilePath,
		FileName:           req.FileName,
		FileType:           req.FileType,
		AttemptCount:       0,
		MaxAttempts:        defaultMaxAttempts,
		ProgressPercentage: 0,
		CreatedAt:          time.Now(),
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, resume.ErrJobCreationFailed().
			WithDetail("file_name", req.FileName).
			WithDetails(map[string]any{
				"error": err.Error(),
			})
	}

	if err := s.queue.Enqueue(ctx, jobID, job); err != nil {
		_ = s.jobRepo.MarkAsFailed(ctx, jobID, "failed to enqueue", map[string]any{
			"error": err.Error(),
		})
		return nil, resume.ErrQueueEnqueueFailed().
			WithDetail("job_id", jobID).
			WithDetails(map[string]any{
				"error": err.Error(),
			})
	}

	logx.Infof("Job queued: JobID=%s", jobID)
	return &resume.JobStatusResponse{
		JobID:     jobID,
		Status:    resume.JobStatusPending,
		Message:   "Resume queued for processing",
		Progress:  0,
		CreatedAt: job.CreatedAt,
	}, nil
}

// ProcessJob is the worker entry point for one dequeued job.
func (s *Service) ProcessJob(ctx context.Context, job *resume.ParseJob) error {
	logx.Infof("Processing job: JobID=%s, Attempt=%d/%d", job.ID, job.AttemptCount+1, job.MaxAttempts)

	if err := s.jobRepo.MarkAsProcessing(ctx, job.ID); err != nil {
		return resume.ErrJobUpdateFailed().
			WithDetail("job_id", job.ID).
			WithDetails(map[string]any{
				"error": err.Error(),
			})
	}

	_ = s.jobRepo.UpdateProgress(ctx, job.ID, resume.StepExtracting, 25)

	fileData, err := s.fileReader.ReadFile(ctx, job.FilePath)
	if err != nil {
		return s.handleJobError(ctx, job, "file_read_failed", err)
	}

	text, err := s.extractText(fileData, job.FileType)
	if err != nil {
		return s.handleJobError(ctx, job, "text_extraction_failed", err)
	}

	_ = s.jobRepo.UpdateProgress(ctx, job.ID, resume.StepPredicting, 50)

	fields, confidence, source, err := s.strategy.Parse(ctx, text)
	if err != nil {
		return s.handleJobError(ctx, job, "parse_failed", err)
	}

	_ = s.jobRepo.UpdateProgress(ctx, job.ID, resume.StepSaving, 75)

	result := &resume.ParseResult{
		ID:                kernel.NewResumeID(uuid.NewString()),
		FileName:          job.FileName,
		FilePath:          job.FilePath,
		FileType:          job.FileType,
		Skills:            fields.Skills,
		Score:             fields.Score,
		ExperienceSummary: fields.ExperienceSummary,
		EducationLevel:    fields.EducationLevel,
		Confidence:        confidence,
		Source:            source,
		CreatedAt:         time.Now(),
	}

	if err := s.repo.Create(ctx, result); err != nil {
		return s.handleJobError(ctx, job, "save_failed", err)
	}

	if err := s.jobRepo.MarkAsCompleted(ctx, job.ID, result.ID); err != nil {
		// Result was stored; a status update failure should not fail the job.
		logx.Errorf("Failed to mark job as completed: %v", err)
	}
	_ = s.jobRepo.UpdateProgress(ctx, job.ID, resume.StepSaving, 100)

	logx.Infof("Job completed: JobID=%s, ResultID=%s, Source=%s", job.ID, result.ID, source)
	return nil
}

// handleJobError applies the retry policy: exponential backoff through the
// delayed queue until attempts run out, then a permanent failure record.
func (s *Service) handleJobError(ctx context.Context, job *resume.ParseJob, errorType string, err error) error {
	job.AttemptCount++

	errorDetails := map[string]any{
		"error":        err.Error(),
		"error_type":   errorType,
		"attempt":      job.AttemptCount,
		"max_attempts": job.MaxAttempts,
		"file_path":    job.FilePath,
		"file_name":    job.FileName,
	}

	if job.CanRetry() {
		// Exponential backoff: 2^attempt minutes.
		retryDelay := time.Duration(1<<uint(job.AttemptCount)) * time.Minute
		nextRetry := time.Now().Add(retryDelay)
		job.NextRetryAt = &nextRetry

		logx.Warnf("Job failed, will retry: JobID=%s, Attempt=%d/%d, NextRetry=%v, Error=%s",
			job.ID, job.AttemptCount, job.MaxAttempts, nextRetry, errorType)

		if queueErr := s.queue.EnqueueDelayed(ctx, job.ID, job, retryDelay); queueErr != nil {
			logx.Errorf("Failed to enqueue for retry: %v", queueErr)
			_ = s.jobRepo.MarkAsFailed(ctx, job.ID,
				fmt.Sprintf("%s (retry enqueue failed)", errorType),
				errorDetails)
			return resume.ErrQueueEnqueueFailed().
				WithDetail("job_id", job.ID).
				WithDetails(errorDetails)
		}

		job.ErrorMessage = fmt.Sprintf("%s (will retry)", errorType)
		job.ErrorDetails = errorDetails
		job.Status = resume.JobStatusPending
		if updateErr := s.jobRepo.Update(ctx, job); updateErr != nil {
			logx.Errorf("Failed to update job for retry: %v", updateErr)
		}

		return resume.ErrJobFailed().
			WithDetail("job_id", job.ID).
			WithDetail("will_retry", true).
			WithDetail("next_retry_at", nextRetry).
			WithDetails(errorDetails)
	}

	logx.Errorf("Job permanently failed: JobID=%s, Error=%s, Attempts=%d/%d",
		job.ID, errorType, job.AttemptCount, job.MaxAttempts)
	_ = s.jobRepo.MarkAsFailed(ctx, job.ID, errorType, errorDetails)

	return resume.ErrJobMaxRetries().
		WithDetail("job_id", job.ID).
		WithDetail("final_attempt", job.AttemptCount).
		WithDetails(errorDetails)
}

// GetJobStatus retrieves the current status of a job.
func (s *Service) GetJobStatus(ctx context.Context, jobID kernel.JobID) (*resume.JobStatusResponse, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, resume.ErrJobNotFound().
			WithDetail("job_id", jobID)
	}
	return job.ToStatusResponse(), nil
}

// ListJobs retrieves parse jobs with pagination.
func (s *Service) ListJobs(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[resume.ParseJob], error) {
	jobs, err := s.jobRepo.List(ctx, pagination)
	if err != nil {
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeJobNotFound, err)
	}
	return jobs, nil
}
