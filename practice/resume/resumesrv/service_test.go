package resumesrv

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interview-ace/ace/pkg/kernel"
	"github.com/interview-ace/ace/practice/resume"
)

type memRepo struct {
	results map[kernel.ResumeID]*resume.ParseResult
	failOn  string
}

func newMemRepo() *memRepo {
	return &memRepo{results: make(map[kernel.ResumeID]*resume.ParseResult)}
}

func (r *memRepo) Create(_ context.Context, result *resume.ParseResult) error {
	if r.failOn == "create" {
		return errors.New("create failed")
	}
	r.results[result.ID] = result
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id kernel.ResumeID) (*resume.ParseResult, error) {
	result, ok := r.results[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return result, nil
}

func (r *memRepo) List(_ context.Context, p kernel.PaginationOptions) (*kernel.Paginated[resume.ParseResult], error) {
	items := make([]resume.ParseResult, 0, len(r.results))
	for _, v := range r.results {
		items = append(items, *v)
	}
	p = p.Normalize()
	page := kernel.NewPaginated(items, p.Page, p.PageSize, len(items))
	return &page, nil
}

func (r *memRepo) Delete(_ context.Context, id kernel.ResumeID) error {
	delete(r.results, id)
	return nil
}

type memJobRepo struct {
	jobs map[kernel.JobID]*resume.ParseJob
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{jobs: make(map[kernel.JobID]*resume.ParseJob)}
}

func (r *memJobRepo) Create(_ context.Context, job *resume.ParseJob) error {
	copied := *job
	r.jobs[job.ID] = &copied
	return nil
}

func (r *memJobRepo) Update(_ context.Context, job *resume.ParseJob) error {
	copied := *job
	r.jobs[job.ID] = &copied
	return nil
}

func (r *memJobRepo) GetByID(_ context.Context, jobID kernel.JobID) (*resume.ParseJob, error) {
	job, ok := r.jobs[jobID]
	if !ok {
		return nil, errors.New("not found")
	}
	return job, nil
}

func (r *memJobRepo) List(_ context.Context, p kernel.PaginationOptions) (*kernel.Paginated[resume.ParseJob], error) {
	items := make([]resume.ParseJob, 0, len(r.jobs))
	for _, v := range r.jobs {
		items = append(items, *v)
	}
	p = p.Normalize()
	page := kernel.NewPaginated(items, p.Page, p.PageSize, len(items))
	return &page, nil
}

func (r *memJobRepo) MarkAsProcessing(_ context.Context, jobID kernel.JobID) error {
	if job, ok := r.jobs[jobID]; ok {
		job.Status = resume.JobStatusProcessing
		now := time.Now()
		job.StartedAt = &now
	}
	return nil
}

func (r *memJobRepo) MarkAsCompleted(_ context.Context, jobID kernel.JobID, resultID kernel.ResumeID) error {
	if job, ok := r.jobs[jobID]; ok {
		job.Status = resume.JobStatusCompleted
		job.ResultID = &resultID
		now := time.Now()
		job.CompletedAt = &now
	}
	return nil
}

func (r *memJobRepo) MarkAsFailed(_ context.Context, jobID kernel.JobID, msg string, details map[string]any) error {
	if job, ok := r.jobs[jobID]; ok {
		job.Status = resume.JobStatusFailed
		job.ErrorMessage = msg
		job.ErrorDetails = details
		now := time.Now()
		job.FailedAt = &now
	}
	return nil
}

func (r *memJobRepo) UpdateProgress(_ context.Context, jobID kernel.JobID, step resume.ProcessingStep, pct int) error {
	if job, ok := r.jobs[jobID]; ok {
		job.CurrentStep = &step
		job.ProgressPercentage = pct
	}
	return nil
}

type memQueue struct {
	enqueued []kernel.JobID
	delayed  []kernel.JobID
}

func (q *memQueue) Enqueue(_ context.Context, jobID kernel.JobID, _ any) error {
	q.enqueued = append(q.enqueued, jobID)
	return nil
}

func (q *memQueue) Dequeue(context.Context, time.Duration) ([]byte, error) { return nil, nil }

func (q *memQueue) EnqueueDelayed(_ context.Context, jobID kernel.JobID, _ any, _ time.Duration) error {
	q.delayed = append(q.delayed, jobID)
	return nil
}

func (q *memQueue) MoveDelayedToReady(context.Context) (int, error)    { return 0, nil }
func (q *memQueue) GetQueueSize(context.Context) (int64, error)        { return int64(len(q.enqueued)), nil }
func (q *memQueue) GetDelayedQueueSize(context.Context) (int64, error) { return int64(len(q.delayed)), nil }
func (q *memQueue) Clear(context.Context) error                        { return nil }

type memFileReader struct {
	files map[string][]byte
}

func (f *memFileReader) ReadFile(_ context.Context, path string) ([]byte, error) {
	data, ok := f.files[path]
	if !ok {
		return nil, errors.New("no such file")
	}
	return data, nil
}

const sampleResumeText = "Summary: Backend engineer with Go and Redis.\nExperience: Senior Engineer at Acme\nSkills: Go, Redis, PostgreSQL\nEducation: Master in CS"

func newTestService(repo *memRepo, jobRepo *memJobRepo, queue *memQueue) *Service {
	strategy := SelectStrategy(&stubPredictor{prediction: confidentPrediction()}, &stubFallback{data: llmData()}, 0.7)
	reader := &memFileReader{files: map[string][]byte{
		"uploads/cv.txt": []byte(sampleResumeText),
	}}
	return NewService(repo, jobRepo, strategy, reader, queue)
}

func TestParseResumeSync(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, newMemJobRepo(), &memQueue{})

	resp, err := svc.ParseResume(context.Background(), resume.ParseResumeRequest{
		FilePath: "uploads/cv.txt",
		FileName: "cv.txt",
		FileType: "txt",
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, resume.SourceModel, resp.Source)
	assert.Equal(t, []string{"Go", "Redis"}, resp.Data.Skills)
	assert.Len(t, repo.results, 1)
}

func TestParseResumeUnsupportedType(t *testing.T) {
	svc := newTestService(newMemRepo(), newMemJobRepo(), &memQueue{})

	_, err := svc.ParseResume(context.Background(), resume.ParseResumeRequest{
		FilePath: "uploads/cv.txt",
		FileName: "cv.docx",
		FileType: "docx",
	})
	assert.Error(t, err)
}

func TestParseResumeMissingFile(t *testing.T) {
	svc := newTestService(newMemRepo(), newMemJobRepo(), &memQueue{})

	_, err := svc.ParseResume(context.Background(), resume.ParseResumeRequest{
		FilePath: "uploads/absent.txt",
		FileName: "absent.txt",
		FileType: "txt",
	})
	assert.Error(t, err)
}

func TestParseResumeAsyncCreatesJobAndEnqueues(t *testing.T) {
	jobRepo := newMemJobRepo()
	queue := &memQueue{}
	svc := newTestService(newMemRepo(), jobRepo, queue)

	resp, err := svc.ParseResumeAsync(context.Background(), resume.ParseResumeRequest{
		FilePath: "uploads/cv.txt",
		FileName: "cv.txt",
		FileType: "txt",
	})
	require.NoError(t, err)

	assert.Equal(t, resume.JobStatusPending, resp.Status)
	assert.Len(t, jobRepo.jobs, 1)
	assert.Equal(t, []kernel.JobID{resp.JobID}, queue.enqueued)
}

func TestProcessJobHappyPath(t *testing.T) {
	repo := newMemRepo()
	jobRepo := newMemJobRepo()
	svc := newTestService(repo, jobRepo, &memQueue{})

	job := &resume.ParseJob{
		ID:          kernel.NewJobID("job-1"),
		Status:      resume.JobStatusPending,
		FilePath:    "uploads/cv.txt",
		FileName:    "cv.txt",
		FileType:    "txt",
		MaxAttempts: 3,
		CreatedAt:   time.Now(),
	}
	require.NoError(t, jobRepo.Create(context.Background(), job))

	require.NoError(t, svc.ProcessJob(context.Background(), job))

	stored, err := jobRepo.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, resume.JobStatusCompleted, stored.Status)
	assert.NotNil(t, stored.ResultID)
	assert.Len(t, repo.results, 1)
}

func TestProcessJobRetriesOnFailure(t *testing.T) {
	jobRepo := newMemJobRepo()
	queue := &memQueue{}
	svc := newTestService(newMemRepo(), jobRepo, queue)

	job := &resume.ParseJob{
		ID:          kernel.NewJobID("job-2"),
		Status:      resume.JobStatusPending,
		FilePath:    "uploads/missing.txt",
		FileName:    "missing.txt",
		FileType:    "txt",
		MaxAttempts: 3,
		CreatedAt:   time.Now(),
	}
	require.NoError(t, jobRepo.Create(context.Background(), job))

	err := svc.ProcessJob(context.Background(), job)
	assert.Error(t, err)

	// First failure schedules a delayed retry, job goes back to pending.
	assert.Equal(t, []kernel.JobID{job.ID}, queue.delayed)
	stored, getErr := jobRepo.GetByID(context.Background(), job.ID)
	require.NoError(t, getErr)
	assert.Equal(t, resume.JobStatusPending, stored.Status)
	assert.Equal(t, 1, stored.AttemptCount)
	assert.NotNil(t, stored.NextRetryAt)
}

func TestProcessJobPermanentFailureAfterMaxAttempts(t *testing.T) {
	jobRepo := newMemJobRepo()
	queue := &memQueue{}
	svc := newTestService(newMemRepo(), jobRepo, queue)

	job := &resume.ParseJob{
		ID:           kernel.NewJobID("job-3"),
		Status:       resume.JobStatusPending,
		FilePath:     "uploads/missing.txt",
		FileName:     "missing.txt",
		FileType:     "txt",
		AttemptCount: 2,
		MaxAttempts:  3,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, jobRepo.Create(context.Background(), job))

	err := svc.ProcessJob(context.Background(), job)
	assert.Error(t, err)

	assert.Empty(t, queue.delayed, "no retry after the final attempt")
	stored, getErr := jobRepo.GetByID(context.Background(), job.ID)
	require.NoError(t, getErr)
	assert.Equal(t, resume.JobStatusFailed, stored.Status)
}

func TestGetJobStatusFailedIncludesError(t *testing.T) {
	jobRepo := newMemJobRepo()
	svc := newTestService(newMemRepo(), jobRepo, &memQueue{})

	job := &resume.ParseJob{
		ID:           kernel.NewJobID("job-4"),
		Status:       resume.JobStatusFailed,
		ErrorMessage: "parse_failed",
		MaxAttempts:  3,
		AttemptCount: 3,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, jobRepo.Create(context.Background(), job))

	status, err := svc.GetJobStatus(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, resume.JobStatusFailed, status.Status)
	require.NotNil(t, status.Error)
	assert.Equal(t, "parse_failed", status.Error.Message)
}
