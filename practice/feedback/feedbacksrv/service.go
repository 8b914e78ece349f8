package feedbacksrv

import (
	"context"
	"time"

	"github.com/interview-ace/ace/pkg/kernel"
	"github.com/interview-ace/ace/pkg/logx"
	"github.com/interview-ace/ace/practice/feedback"
	"github.com/google/uuid"
)

type Service struct {
	repo      feedback.Repository
	evaluator feedback.Evaluator
}

// NewService wires the feedback service. evaluator may be nil, in which case
// every request gets the offline heuristic assessment.
func NewService(repo feedback.Repository, evaluator feedback.Evaluator) *Service {
	return &Service{
		repo:      repo,
		evaluator: evaluator,
	}
}

// Evaluate assesses one answer and stores the evaluation. An evaluator
// failure degrades to the offline heuristic rather than an error.
func (s *Service) Evaluate(ctx context.Context, req feedback.EvaluateRequest) (*feedback.EvaluateResponse, error) {
	if req.Question == "" {
		return nil, feedback.ErrInvalidRequest().
			WithDetail("field", "question")
	}
	if req.Answer == "" {
		return nil, feedback.ErrInvalidRequest().
			WithDetail("field", "answer")
	}
	req = req.Normalize()

	result, fromCanned := s.evaluate(ctx, req)
	normalize(result)

	evaluation := &feedback.Evaluation{
		ID:          kernel.FeedbackID(uuid.NewString()),
		Question:    req.Question,
		Answer:      req.Answer,
		JobTitle:    req.JobTitle,
		Category:    req.Category,
		Score:       result.Score,
		Feedback:    result.Feedback,
		Suggestions: result.Suggestions,
		Keywords:    result.Keywords,
		Sentiment:   result.Sentiment,
		Breakdown:   result.Breakdown,
		Categories:  result.Categories,
		FromCanned:  fromCanned,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, evaluation); err != nil {
		return nil, err
	}

	return evaluation.ToResponse(), nil
}

func (s *Service) evaluate(ctx context.Context, req feedback.EvaluateRequest) (*feedback.Result, bool) {
	if s.evaluator == nil {
		return cannedResult(req), true
	}

	result, err := s.evaluator.Evaluate(ctx, req)
	if err != nil {
		logx.Warnf("Answer evaluation failed, serving heuristic assessment: %v", err)
		return cannedResult(req), true
	}
	return result, false
}

// normalize clamps every numeric field to 0-100 and coerces unknown
// sentiment labels to neutral.
func normalize(result *feedback.Result) {
	result.Score = feedback.ClampScore(result.Score)
	result.Breakdown.Accuracy = feedback.ClampScore(result.Breakdown.Accuracy)
	result.Breakdown.Completeness = feedback.ClampScore(result.Breakdown.Completeness)
	result.Breakdown.Clarity = feedback.ClampScore(result.Breakdown.Clarity)
	result.Breakdown.Relevance = feedback.ClampScore(result.Breakdown.Relevance)
	result.Categories.Technical = feedback.ClampScore(result.Categories.Technical)
	result.Categories.Communication = feedback.ClampScore(result.Categories.Communication)
	result.Categories.ProblemSolving = feedback.ClampScore(result.Categories.ProblemSolving)
	result.Categories.Confidence = feedback.ClampScore(result.Categories.Confidence)
	if !feedback.ValidSentiment(result.Sentiment) {
		result.Sentiment = feedback.SentimentNeutral
	}
}

// GetEvaluation retrieves a stored evaluation.
func (s *Service) GetEvaluation(ctx context.Context, id kernel.FeedbackID) (*feedback.Evaluation, error) {
	if id.IsEmpty() {
		return nil, feedback.ErrInvalidRequest().
			WithDetail("field", "evaluation_id")
	}
	return s.repo.GetByID(ctx, id)
}

// ListEvaluations lists stored evaluations.
func (s *Service) ListEvaluations(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[feedback.Evaluation], error) {
	return s.repo.List(ctx, pagination)
}
