package resumeapi

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/interview-ace/ace/pkg/authx"
	"github.com/interview-ace/ace/pkg/fsx"
	"github.com/interview-ace/ace/pkg/kernel"
	"github.com/interview-ace/ace/practice/resume"
	"github.com/interview-ace/ace/practice/resume/resumesrv"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxUploadSize = int64(10 * 1024 * 1024) // 10MB

type ResumeHandlers struct {
	service    *resumesrv.Service
	fileSystem fsx.FileSystem
}

func NewResumeHandlers(service *resumesrv.Service, fileSystem fsx.FileSystem) *ResumeHandlers {
	return &ResumeHandlers{
		service:    service,
		fileSystem: fileSystem,
	}
}

func (h *ResumeHandlers) RegisterRoutes(app *fiber.App, auth *authx.Service) {
	resumes := app.Group("/api/v1/resumes", auth.Middleware())

	// Parsing
	resumes.Post("/parse", h.ParseResume)           // Parse synchronously
	resumes.Post("/parse/async", h.ParseResumeAsync) // Queue for async processing

	// Job management. Registered before /:id so "jobs" is not swallowed as
	// a result ID.
	resumes.Get("/jobs/:job_id", h.GetJobStatus)
	resumes.Get("/jobs", h.ListJobs)

	// Results
	resumes.Get("/:id", h.GetResult)
	resumes.Get("/", h.ListResults)
	resumes.Delete("/:id", h.DeleteResult)
}

// ParseResume parses an uploaded resume synchronously
// POST /api/v1/resumes/parse
func (h *ResumeHandlers) ParseResume(c *fiber.Ctx) error {
	req, err := h.acceptUpload(c)
	if err != nil || req == nil {
		return err
	}

	response, err := h.service.ParseResume(c.Context(), *req)
	if err != nil {
		// The upload is useless without a result
		_ = h.fileSystem.Delete(c.Context(), req.FilePath)
		return err
	}

	return c.JSON(response)
}

// ParseResumeAsync queues an uploaded resume for background parsing
// POST /api/v1/resumes/parse/async
func (h *ResumeHandlers) ParseResumeAsync(c *fiber.Ctx) error {
	req, err := h.acceptUpload(c)
	if err != nil || req == nil {
		return err
	}

	jobResponse, err := h.service.ParseResumeAsync(c.Context(), *req)
	if err != nil {
		_ = h.fileSystem.Delete(c.Context(), req.FilePath)
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message":    "Resume upload successful, processing started",
		"job":        jobResponse,
		"status_url": fmt.Sprintf("/api/v1/resumes/jobs/%s", jobResponse.JobID),
	})
}

// GetResult retrieves a parse result by ID
// GET /api/v1/resumes/:id
func (h *ResumeHandlers) GetResult(c *fiber.Ctx) error {
	resultID := kernel.ResumeID(c.Params("id"))
	if resultID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid result ID",
		})
	}

	result, err := h.service.GetResult(c.Context(), resultID)
	if err != nil {
		return err
	}

	return c.JSON(result.ToResponse())
}

// ListResults lists parse results
// GET /api/v1/resumes?page=1&page_size=20
func (h *ResumeHandlers) ListResults(c *fiber.Ctx) error {
	pagination := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}

	results, err := h.service.ListResults(c.Context(), pagination)
	if err != nil {
		return err
	}

	return c.JSON(results)
}

// DeleteResult deletes a parse result and its stored file
// DELETE /api/v1/resumes/:id
func (h *ResumeHandlers) DeleteResult(c *fiber.Ctx) error {
	resultID := kernel.ResumeID(c.Params("id"))
	if resultID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid result ID",
		})
	}

	existing, err := h.service.GetResult(c.Context(), resultID)
	if err != nil {
		return err
	}

	if err := h.service.DeleteResult(c.Context(), resultID); err != nil {
		return err
	}

	if existing.FilePath != "" {
		_ = h.fileSystem.Delete(c.Context(), existing.FilePath)
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

// GetJobStatus retrieves the status of a parse job
// GET /api/v1/resumes/jobs/:job_id
func (h *ResumeHandlers) GetJobStatus(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("job_id"))
	if jobID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job ID",
		})
	}

	jobStatus, err := h.service.GetJobStatus(c.Context(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(jobStatus)
}

// ListJobs lists parse jobs
// GET /api/v1/resumes/jobs?page=1&page_size=20
func (h *ResumeHandlers) ListJobs(c *fiber.Ctx) error {
	pagination := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}

	jobs, err := h.service.ListJobs(c.Context(), pagination)
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// ============================================================================
// Helper Functions
// ============================================================================

// acceptUpload validates the multipart upload, stores the file, and builds
// the parse request. Responses for invalid uploads are written directly; the
// caller must stop when the request comes back nil.
func (h *ResumeHandlers) acceptUpload(c *fiber.Ctx) (*resume.ParseResumeRequest, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file is required",
		})
	}

	if file.Size > maxUploadSize {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":    "file too large",
			"max_size": "10MB",
			"size":     file.Size,
		})
	}

	fileType := determineFileType(file.Filename, file.Header.Get("Content-Type"))
	if fileType == "" {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":           "unsupported file type",
			"supported_types": []string{"pdf", "txt"},
			"detected_type":   file.Header.Get("Content-Type"),
			"file_extension":  filepath.Ext(file.Filename),
		})
	}

	uploadedFile, err := file.Open()
	if err != nil {
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to open uploaded file",
		})
	}
	defer uploadedFile.Close()

	// Format: resumes/{year}/{month}/{uuid}.{ext}
	now := time.Now()
	extension := filepath.Ext(file.Filename)
	if extension == "" {
		extension = "." + fileType
	}

	filePath := h.fileSystem.Join(
		"resumes",
		fmt.Sprintf("%d", now.Year()),
		fmt.Sprintf("%02d", now.Month()),
		uuid.NewString()+extension,
	)

	if err := h.fileSystem.WriteFileStream(c.Context(), filePath, uploadedFile); err != nil {
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "failed to upload file to storage",
			"details": err.Error(),
		})
	}

	return &resume.ParseResumeRequest{
		FilePath: filePath,
		FileName: file.Filename,
		FileType: fileType,
	}, nil
}

// determineFileType determines the file type from filename and content type
func determineFileType(filename, contentType string) string {
	switch contentType {
	case "application/pdf":
		return "pdf"
	case "text/plain":
		return "txt"
	}

	ext := filepath.Ext(filename)
	if ext == "" {
		return ""
	}

	switch ext[1:] {
	case "pdf":
		return "pdf"
	case "txt", "text":
		return "txt"
	default:
		return ""
	}
}
