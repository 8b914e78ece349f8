package questionsrv

import (
	"context"
	"encoding/json"
	"time"

	"github.com/interview-ace/ace/pkg/cachex"
	"github.com/interview-ace/ace/pkg/kernel"
	"github.com/interview-ace/ace/pkg/logx"
	"github.com/interview-ace/ace/practice/question"
	"github.com/google/uuid"
)

// DefaultCacheTTL is how long an identical generation request is served from
// cache instead of hitting the generator again.
const DefaultCacheTTL = 1 * time.Hour

type Service struct {
	repo      question.Repository
	generator question.Generator
	cache     cachex.Cache
	cacheTTL  time.Duration
}

// NewService wires the question service. generator may be nil, in which case
// every request is served from the canned bank.
func NewService(
	repo question.Repository,
	generator question.Generator,
	cache cachex.Cache,
	cacheTTL time.Duration,
) *Service {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &Service{
		repo:      repo,
		generator: generator,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

// Generate produces a question batch for the request. Identical requests
// within the TTL window are served from cache. A generator failure degrades
// to the canned bank rather than an error.
func (s *Service) Generate(ctx context.Context, req question.GenerateRequest) (*question.GenerateResponse, error) {
	req = req.Normalize()
	cacheKey := req.CacheKey()

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		var response question.GenerateResponse
		if err := json.Unmarshal(cached, &response); err == nil {
			logx.Infof("Question cache hit for %s/%s", req.JobTitle, req.Difficulty)
			return &response, nil
		}
		_ = s.cache.Delete(ctx, cacheKey)
	}

	questions, fromCanned := s.generate(ctx, req)

	set := &question.Set{
		ID:         kernel.QuestionSetID(uuid.NewString()),
		JobTitle:   req.JobTitle,
		Difficulty: req.Difficulty,
		Questions:  questions,
		FromCanned: fromCanned,
		CreatedAt:  time.Now(),
	}

	if err := s.repo.Create(ctx, set); err != nil {
		return nil, err
	}

	response := set.ToResponse()

	if data, err := json.Marshal(response); err == nil {
		if err := s.cache.Set(ctx, cacheKey, data, s.cacheTTL); err != nil {
			logx.Warnf("Failed to cache question set %s: %v", set.ID, err)
		}
	}

	return response, nil
}

func (s *Service) generate(ctx context.Context, req question.GenerateRequest) ([]question.Question, bool) {
	if s.generator == nil {
		return cannedQuestions(req), true
	}

	questions, err := s.generator.GenerateQuestions(ctx, req)
	if err != nil {
		logx.Warnf("Question generation failed, serving canned bank: %v", err)
		return cannedQuestions(req), true
	}

	// Normalize generator output: IDs must be present, difficulty and
	// category kept within the known vocabulary.
	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = uuid.NewString()
		}
		if !question.ValidDifficulty(questions[i].Difficulty) {
			questions[i].Difficulty = req.Difficulty
		}
		switch questions[i].Category {
		case question.CategoryTechnical, question.CategoryBehavioral, question.CategoryProblemSolving:
		default:
			questions[i].Category = question.CategoryTechnical
		}
	}

	if len(questions) > req.NumQuestions {
		questions = questions[:req.NumQuestions]
	}

	return questions, false
}

// GetSet retrieves a stored question set.
func (s *Service) GetSet(ctx context.Context, id kernel.QuestionSetID) (*question.Set, error) {
	if id.IsEmpty() {
		return nil, question.ErrInvalidRequest().
			WithDetail("field", "set_id")
	}
	return s.repo.GetByID(ctx, id)
}

// ListSets lists stored question sets.
func (s *Service) ListSets(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[question.Set], error) {
	return s.repo.List(ctx, pagination)
}
