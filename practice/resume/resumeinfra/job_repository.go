package resumeinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/interview-ace/ace/pkg/kernel"
	"github.com/interview-ace/ace/pkg/logx"
	"github.com/interview-ace/ace/practice/resume"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PostgresJobRepository struct {
	db *sqlx.DB
}

func NewPostgresJobRepository(db *sqlx.DB) resume.JobRepository {
	return &PostgresJobRepository{db: db}
}

// jobRow is the database model with proper JSON handling
type jobRow struct {
	ID       string  `db:"id"`
	ResultID *string `db:"result_id"`

	Status   string `db:"status"`
	FilePath string `db:"file_path"`
	FileName string `db:"file_name"`
	FileType string `db:"file_type"`

	AttemptCount int `db:"attempt_count"`
	MaxAttempts  int `db:"max_attempts"`

	ErrorMessage string         `db:"error_message"`
	ErrorDetails sql.NullString `db:"error_details"`

	CurrentStep        *string `db:"current_step"`
	ProgressPercentage int     `db:"progress_percentage"`

	CreatedAt   time.Time  `db:"created_at"`
	StartedAt   *time.Time `db:"started_at"`
	CompletedAt *time.Time `db:"completed_at"`
	FailedAt    *time.Time `db:"failed_at"`
	NextRetryAt *time.Time `db:"next_retry_at"`
}

// Create creates a new job record
func (r *PostgresJobRepository) Create(ctx context.Context, job *resume.ParseJob) error {
	query := `
		INSERT INTO parse_jobs (
			id, result_id, status, file_path, file_name, file_type,
			attempt_count, max_attempts, error_message, error_details,
			current_step, progress_percentage,
			created_at, started_at, completed_at, failed_at, next_retry_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12,
			$13, $14, $15, $16, $17
		)
	`

	row := toJobRow(job)

	_, err := r.db.ExecContext(ctx, query,
		row.ID, row.ResultID, row.Status,
		row.FilePath, row.FileName, row.FileType,
		row.AttemptCount, row.MaxAttempts, row.ErrorMessage, row.ErrorDetails,
		row.CurrentStep, row.ProgressPercentage,
		row.CreatedAt, row.StartedAt, row.CompletedAt, row.FailedAt, row.NextRetryAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("job already exists: %w", err)
		}
		return fmt.Errorf("create job: %w", err)
	}

	logx.Infof("Created parse job: %s", job.ID)
	return nil
}

// Update updates an existing job
func (r *PostgresJobRepository) Update(ctx context.Context, job *resume.ParseJob) error {
	query := `
		UPDATE parse_jobs SET
			result_id = $2,
			status = $3,
			attempt_count = $4,
			error_message = $5,
			error_details = $6,
			current_step = $7,
			progress_percentage = $8,
			started_at = $9,
			completed_at = $10,
			failed_at = $11,
			next_retry_at = $12
		WHERE id = $1
	`

	row := toJobRow(job)

	result, err := r.db.ExecContext(ctx, query,
		row.ID,
		row.ResultID,
		row.Status,
		row.AttemptCount,
		row.ErrorMessage,
		row.ErrorDetails,
		row.CurrentStep,
		row.ProgressPercentage,
		row.StartedAt,
		row.CompletedAt,
		row.FailedAt,
		row.NextRetryAt,
	)

	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("job not found: %s", job.ID)
	}

	return nil
}

// GetByID retrieves a job by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, jobID kernel.JobID) (*resume.ParseJob, error) {
	query := `
		SELECT
			id, result_id, status, file_path, file_name, file_type,
			attempt_count, max_attempts, error_message, error_details,
			current_step, progress_percentage,
			created_at, started_at, completed_at, failed_at, next_retry_at
		FROM parse_jobs
		WHERE id = $1
	`

	var row jobRow
	err := r.db.GetContext(ctx, &row, query, jobID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, resume.ErrJobNotFound().
				WithDetail("job_id", jobID)
		}
		return nil, fmt.Errorf("get job: %w", err)
	}

	return toDomainJob(&row), nil
}

// List retrieves jobs with pagination, newest first
func (r *PostgresJobRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[resume.ParseJob], error) {
	pagination = pagination.Normalize()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM parse_jobs`); err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}

	query := `
		SELECT
			id, result_id, status, file_path, file_name, file_type,
			attempt_count, max_attempts, error_message, error_details,
			current_step, progress_percentage,
			created_at, started_at, completed_at, failed_at, next_retry_at
		FROM parse_jobs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	var rows []jobRow
	if err := r.db.SelectContext(ctx, &rows, query, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	jobs := make([]resume.ParseJob, 0, len(rows))
	for i := range rows {
		jobs = append(jobs, *toDomainJob(&rows[i]))
	}

	page := kernel.NewPaginated(jobs, pagination.Page, pagination.PageSize, total)
	return &page, nil
}

// MarkAsProcessing marks a job as processing
func (r *PostgresJobRepository) MarkAsProcessing(ctx context.Context, jobID kernel.JobID) error {
	query := `
		UPDATE parse_jobs
		SET status = $2, started_at = $3
		WHERE id = $1 AND status = $4
	`

	now := time.Now()
	result, err := r.db.ExecContext(ctx, query,
		jobID.String(),
		string(resume.JobStatusProcessing),
		now,
		string(resume.JobStatusPending),
	)

	if err != nil {
		return fmt.Errorf("mark as processing: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("job not found or not in pending status: %s", jobID)
	}

	logx.Infof("Marked job as processing: %s", jobID)
	return nil
}

// MarkAsCompleted marks a job as completed
func (r *PostgresJobRepository) MarkAsCompleted(ctx context.Context, jobID kernel.JobID, resultID kernel.ResumeID) error {
	query := `
		UPDATE parse_jobs
		SET
			status = $2,
			result_id = $3,
			completed_at = $4,
			progress_percentage = 100,
			error_message = '',
			error_details = NULL,
			next_retry_at = NULL
		WHERE id = $1
	`

	now := time.Now()
	result, err := r.db.ExecContext(ctx, query,
		jobID.String(),
		string(resume.JobStatusCompleted),
		resultID.String(),
		now,
	)

	if err != nil {
		return fmt.Errorf("mark as completed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("job not found: %s", jobID)
	}

	logx.Infof("Marked job as completed: %s, ResultID: %s", jobID, resultID)
	return nil
}

// MarkAsFailed marks a job as failed
func (r *PostgresJobRepository) MarkAsFailed(
	ctx context.Context,
	jobID kernel.JobID,
	errorMsg string,
	errorDetails map[string]any,
) error {
	query := `
		UPDATE parse_jobs
		SET
			status = $2,
			failed_at = $3,
			error_message = $4,
			error_details = $5
		WHERE id = $1
	`

	now := time.Now()
	result, err := r.db.ExecContext(ctx, query,
		jobID.String(),
		string(resume.JobStatusFailed),
		now,
		errorMsg,
		marshalErrorDetails(errorDetails),
	)

	if err != nil {
		return fmt.Errorf("mark as failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("job not found: %s", jobID)
	}

	logx.Warnf("Marked job as failed: %s, Error: %s", jobID, errorMsg)
	return nil
}

// UpdateProgress updates the progress of a job
func (r *PostgresJobRepository) UpdateProgress(
	ctx context.Context,
	jobID kernel.JobID,
	step resume.ProcessingStep,
	percentage int,
) error {
	query := `
		UPDATE parse_jobs
		SET
			current_step = $2,
			progress_percentage = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		jobID.String(),
		string(step),
		percentage,
	)

	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("job not found: %s", jobID)
	}

	return nil
}

// ============================================================================
// Helper Methods
// ============================================================================

func marshalErrorDetails(details map[string]any) sql.NullString {
	if len(details) == 0 {
		return sql.NullString{}
	}
	jsonBytes, err := json.Marshal(details)
	if err != nil {
		logx.Warnf("Failed to marshal error details: %v", err)
		return sql.NullString{}
	}
	return sql.NullString{String: string(jsonBytes), Valid: true}
}

// toJobRow converts domain model to database model
func toJobRow(job *resume.ParseJob) *jobRow {
	var currentStep *string
	if job.CurrentStep != nil {
		stepStr := string(*job.CurrentStep)
		currentStep = &stepStr
	}

	var resultID *string
	if job.ResultID != nil {
		idStr := job.ResultID.String()
		resultID = &idStr
	}

	return &jobRow{
		ID:                 job.ID.String(),
		ResultID:           resultID,
		Status:             string(job.Status),
		FilePath:           job.FilePath,
		FileName:           job.FileName,
		FileType:           job.FileType,
		AttemptCount:       job.AttemptCount,
		MaxAttempts:        job.MaxAttempts,
		ErrorMessage:       job.ErrorMessage,
		ErrorDetails:       marshalErrorDetails(job.ErrorDetails),
		CurrentStep:        currentStep,
		ProgressPercentage: job.ProgressPercentage,
		CreatedAt:          job.CreatedAt,
		StartedAt:          job.StartedAt,
		CompletedAt:        job.CompletedAt,
		FailedAt:           job.FailedAt,
		NextRetryAt:        job.NextRetryAt,
	}
}

// toDomainJob converts database model to domain model
func toDomainJob(row *jobRow) *resume.ParseJob {
	var errorDetails map[string]any
	if row.ErrorDetails.Valid && row.ErrorDetails.String != "" {
		if err := json.Unmarshal([]byte(row.ErrorDetails.String), &errorDetails); err != nil {
			logx.Warnf("Failed to unmarshal error details for job %s: %v", row.ID, err)
			errorDetails = nil
		}
	}

	var currentStep *resume.ProcessingStep
	if row.CurrentStep != nil {
		step := resume.ProcessingStep(*row.CurrentStep)
		currentStep = &step
	}

	var resultID *kernel.ResumeID
	if row.ResultID != nil {
		id := kernel.ResumeID(*row.ResultID)
		resultID = &id
	}

	return &resume.ParseJob{
		ID:                 kernel.JobID(row.ID),
		ResultID:           resultID,
		Status:             resume.JobStatus(row.Status),
		FilePath:           row.FilePath,
		FileName:           row.FileName,
		FileType:           row.FileType,
		AttemptCount:       row.AttemptCount,
		MaxAttempts:        row.MaxAttempts,
		ErrorMessage:       row.ErrorMessage,
		ErrorDetails:       errorDetails,
		CurrentStep:        currentStep,
		ProgressPercentage: row.ProgressPercentage,
		CreatedAt:          row.CreatedAt,
		StartedAt:          row.StartedAt,
		CompletedAt:        row.CompletedAt,
		FailedAt:           row.FailedAt,
		NextRetryAt:        row.NextRetryAt,
	}
}
