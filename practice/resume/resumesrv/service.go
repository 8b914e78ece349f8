package resumesrv

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/interview-ace/ace/internal/pdf"
	"github.com/interview-ace/ace/pkg/fsx"
	"github.com/interview-ace/ace/pkg/kernel"
	"github.com/interview-ace/ace/pkg/logx"
	"github.com/interview-ace/ace/practice/resume"
)

// Service implements resume parsing over the confidence-gated strategy.
type Service struct {
	repo       resume.Repository
	jobRepo    resume.JobRepository
	strategy   ParseStrategy
	fileReader fsx.FileReader
	queue      resume.JobQueue
}

// NewService creates a resume service. The strategy is already selected for
// the process lifetime (model-backed or fallback-only).
func NewService(
	repo resume.Repository,
	jobRepo resume.JobRepository,
	strategy ParseStrategy,
	fileReader fsx.FileReader,
	queue resume.JobQueue,
) *Service {
	return &Service{
		repo:       repo,
		jobRepo:    jobRepo,
		strategy:   strategy,
		fileReader: fileReader,
		queue:      queue,
	}
}

// ParseResume runs the synchronous parse path: read the stored file, extract
// text, run the strategy and persist the result.
func (s *Service) ParseResume(ctx context.Context, req resume.ParseResumeRequest) (*resume.ParseResumeResponse, error) {
	logx.Infof("Parsing resume: File=%s, Type=%s", req.FileName, req.FileType)

	fileData, err := s.fileReader.ReadFile(ctx, req.FilePath)
	if err != nil {
		return nil, resume.ErrFileReadFailed().
			WithDetail("file_path", req.FilePath).
			WithDetails(map[string]any{
				"error": err.Error(),
			})
	}

	text, err := s.extractText(fileData, req.FileType)
	if err != nil {
		return nil, err
	}

	fields, confidence, source, err := s.strategy.Parse(ctx, text)
	if err != nil {
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeFallbackFailed, err).
			WithDetail("file_name", req.FileName)
	}

	result := &resume.ParseResult{
		ID:                kernel.NewResumeID(uuid.NewString()),
		FileName:          req.FileName,
		FilePath:          req.FilePath,
		FileType:          req.FileType,
		Skills:            fields.Skills,
		Score:             fields.Score,
		ExperienceSummary: fields.ExperienceSummary,
		EducationLevel:    fields.EducationLevel,
		Confidence:        confidence,
		Source:            source,
		CreatedAt:         time.Now(),
	}

	if err := s.repo.Create(ctx, result); err != nil {
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeInvalidData, err).
			WithDetail("file_name", req.FileName)
	}

	logx.Infof("Resume parsed: ID=%s, Source=%s, Confidence=%.2f, Skills=%d",
		result.ID, result.Source, result.Confidence, len(result.Skills))
	return result.ToResponse(), nil
}

// GetResult retrieves a stored parse result.
func (s *Service) GetResult(ctx context.Context, id kernel.ResumeID) (*resume.ParseResult, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, resume.ErrResultNotFound().
			WithDetail("result_id", id)
	}
	return result, nil
}

// ListResults retrieves stored parse results with pagination.
func (s *Service) ListResults(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[resume.ParseResult], error) {
	results, err := s.repo.List(ctx, pagination)
	if err != nil {
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeResultNotFound, err)
	}
	return results, nil
}

// DeleteResult removes a stored parse result.
func (s *Service) DeleteResult(ctx context.Context, id kernel.ResumeID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return resume.ErrResultNotFound().
			WithDetail("result_id", id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return resume.ErrRegistry.NewWithCause(resume.CodeInvalidData, err).
			WithDetail("result_id", id)
	}
	return nil
}

// extractText turns uploaded bytes into plain text based on the declared
// file type.
func (s *Service) extractText(data []byte, fileType string) (string, error) {
	var text string
	var err error

	switch strings.ToLower(fileType) {
	case "pdf":
		text, err = pdf.ExtractText(data)
	case "txt", "text":
		text, err = pdf.ExtractResumeText(data)
	default:
		return "", resume.ErrInvalidFileFormat().
			WithDetail("file_type", fileType).
			WithDetail("supported_formats", []string{"pdf", "txt"})
	}
	if err != nil {
		return "", resume.ErrRegistry.NewWithCause(resume.CodeParseFailed, err).
			WithDetail("file_type", fileType)
	}

	if strings.TrimSpace(text) == "" {
		return "", resume.ErrEmptyText().
			WithDetail("file_type", fileType)
	}
	return text, nil
}
