package resume

import (
	"time"

	"github.com/interview-ace/ace/pkg/kernel"
)

// ParseResumeRequest carries one parse request through the sync or async
// path. For async jobs it is the queue payload.
type ParseResumeRequest struct {
	FilePath string `json:"file_path"`
	FileName string `json:"file_name"`
	FileType string `json:"file_type"`
}

// ParsedFields is the structured output block of a parse response.
type ParsedFields struct {
	Skills            []string `json:"skills"`
	Score             int      `json:"score"`
	ExperienceSummary string   `json:"experience_summary"`
	EducationLevel    string   `json:"education_level"`
}

// ParseResumeResponse is the sync parse response body.
type ParseResumeResponse struct {
	Success    bool         `json:"success"`
	Data       ParsedFields `json:"data"`
	Confidence float64      `json:"confidence"`
	Source     ParseSource  `json:"source"`
	ResultID   string       `json:"result_id"`
}

// JobStatusResponse reports the state of an async parse job.
type JobStatusResponse struct {
	JobID       kernel.JobID     `json:"job_id"`
	Status      JobStatus        `json:"status"`
	Message     string           `json:"message"`
	Progress    int              `json:"progress"`
	CurrentStep *ProcessingStep  `json:"current_step,omitempty"`
	ResultID    *kernel.ResumeID `json:"result_id,omitempty"`
	Error       *JobError        `json:"error,omitempty"`

	AttemptCount int        `json:"attempt_count,omitempty"`
	NextRetryAt  *time.Time `json:"next_retry_at,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	FailedAt    *time.Time `json:"failed_at,omitempty"`
}

// JobError carries failure details for a job status response.
type JobError struct {
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ToResponse maps a parse result onto the response contract.
func (r *ParseResult) ToResponse() *ParseResumeResponse {
	skills := r.Skills
	if skills == nil {
		skills = []string{}
	}
	return &ParseResumeResponse{
		Success: true,
		Data: ParsedFields{
			Skills:            skills,
			Score:             r.Score,
			ExperienceSummary: r.ExperienceSummary,
			EducationLevel:    r.EducationLevel,
		},
		Confidence: r.Confidence,
		Source:     r.Source,
		ResultID:   r.ID.String(),
	}
}

// ToStatusResponse maps a job onto the status contract.
func (j *ParseJob) ToStatusResponse() *JobStatusResponse {
	resp := &JobStatusResponse{
		JobID:        j.ID,
		Status:       j.Status,
		Message:      statusMessage(j.Status),
		Progress:     j.ProgressPercentage,
		CurrentStep:  j.CurrentStep,
		ResultID:     j.ResultID,
		AttemptCount: j.AttemptCount,
		NextRetryAt:  j.NextRetryAt,
		CreatedAt:    j.CreatedAt,
		StartedAt:    j.StartedAt,
		CompletedAt:  j.CompletedAt,
		FailedAt:     j.FailedAt,
	}
	if j.Status == JobStatusFailed && j.ErrorMessage != "" {
		resp.Error = &JobError{
			Message: j.ErrorMessage,
			Details: j.ErrorDetails,
		}
	}
	return resp
}

func statusMessage(status JobStatus) string {
	switch status {
	case JobStatusPending:
		return "Job is queued for processing"
	case JobStatusProcessing:
		return "Resume is being processed"
	case JobStatusCompleted:
		return "Resume processed successfully"
	case JobStatusFailed:
		return "Resume processing failed"
	default:
		return "Unknown status"
	}
}
