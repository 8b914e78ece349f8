package resumeapi

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/interview-ace/ace/pkg/authx"
	"github.com/interview-ace/ace/pkg/kernel"
	"github.com/interview-ace/ace/practice/resume"
	"github.com/interview-ace/ace/practice/resume/resumesrv"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resultRepoStub struct{}

func (r *resultRepoStub) Create(context.Context, *resume.ParseResult) error { return nil }
func (r *resultRepoStub) GetByID(_ context.Context, id kernel.ResumeID) (*resume.ParseResult, error) {
	return &resume.ParseResult{ID: id, CreatedAt: time.Now()}, nil
}
func (r *resultRepoStub) List(context.Context, kernel.PaginationOptions) (*kernel.Paginated[resume.ParseResult], error) {
	page := kernel.NewPaginated([]resume.ParseResult{}, 1, 20, 0)
	return &page, nil
}
func (r *resultRepoStub) Delete(context.Context, kernel.ResumeID) error { return nil }

type jobRepoStub struct{}

func (r *jobRepoStub) Create(context.Context, *resume.ParseJob) error { return nil }
func (r *jobRepoStub) Update(context.Context, *resume.ParseJob) error { return nil }
func (r *jobRepoStub) GetByID(_ context.Context, jobID kernel.JobID) (*resume.ParseJob, error) {
	return &resume.ParseJob{ID: jobID, Status: resume.JobStatusPending, CreatedAt: time.Now()}, nil
}
func (r *jobRepoStub) List(context.Context, kernel.PaginationOptions) (*kernel.Paginated[resume.ParseJob], error) {
	page := kernel.NewPaginated([]resume.ParseJob{}, 1, 20, 0)
	return &page, nil
}
func (r *jobRepoStub) MarkAsProcessing(context.Context, kernel.JobID) error { return nil }
func (r *jobRepoStub) MarkAsCompleted(context.Context, kernel.JobID, kernel.ResumeID) error {
	return nil
}
func (r *jobRepoStub) MarkAsFailed(context.Context, kernel.JobID, string, map[string]any) error {
	return nil
}
func (r *jobRepoStub) UpdateProgress(context.Context, kernel.JobID, resume.ProcessingStep, int) error {
	return nil
}

func testApp(t *testing.T) *fiber.App {
	t.Helper()

	service := resumesrv.NewService(&resultRepoStub{}, &jobRepoStub{}, nil, nil, nil)
	handlers := NewResumeHandlers(service, nil)

	app := fiber.New()
	handlers.RegisterRoutes(app, authx.NewService(authx.Config{}))
	return app
}

func TestJobRoutesNotShadowedByResultID(t *testing.T) {
	app := testApp(t)

	// /jobs must reach the job listing, not the result lookup with id="jobs".
	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/resumes/jobs", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/resumes/jobs/job-123", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestResultRoutesStillReachable(t *testing.T) {
	app := testApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/resumes/result-456", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/resumes/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
